package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"registry-service/internal/models"
	"registry-service/internal/query"
	"registry-service/internal/repository"
)

const (
	defaultRowsPerPage = 10
	minFullNameLen     = 3
	maxFullNameLen     = 50
)

// DesignerPage is one page of a filtered designer listing.
type DesignerPage struct {
	Items       []models.Designer
	Total       int
	Page        int
	RowsPerPage int
}

// DesignerService drives the designer directory: browse, search, paginate and
// mutate designers through the configured store.
type DesignerService struct {
	store  repository.DesignerStore
	cache  *query.Cache
	logger *zap.Logger
}

// NewDesignerService creates a designer service over the given store and
// cache.
func NewDesignerService(store repository.DesignerStore, cache *query.Cache, logger *zap.Logger) *DesignerService {
	return &DesignerService{store: store, cache: cache, logger: logger}
}

// List returns one page of designers whose full name contains filter
// (case-insensitive). Counts on the returned designers are live, computed by
// the store's GetAll.
func (s *DesignerService) List(ctx context.Context, filter string, page, rowsPerPage int) (*DesignerPage, error) {
	if page < 1 {
		page = 1
	}
	if rowsPerPage < 1 {
		rowsPerPage = defaultRowsPerPage
	}
	designers, err := s.cache.Designers(ctx)
	if err != nil {
		return nil, err
	}
	if filter != "" {
		needle := strings.ToLower(filter)
		filtered := designers[:0]
		for _, d := range designers {
			if strings.Contains(strings.ToLower(d.FullName), needle) {
				filtered = append(filtered, d)
			}
		}
		designers = filtered
	}
	total := len(designers)
	start := (page - 1) * rowsPerPage
	if start > total {
		start = total
	}
	end := start + rowsPerPage
	if end > total {
		end = total
	}
	return &DesignerPage{
		Items:       designers[start:end],
		Total:       total,
		Page:        page,
		RowsPerPage: rowsPerPage,
	}, nil
}

func validateFullName(name string) error {
	if len(name) < minFullNameLen {
		return &models.ValidationError{Field: "fullName", Message: "Full name must be at least 3 characters"}
	}
	if len(name) > maxFullNameLen {
		return &models.ValidationError{Field: "fullName", Message: "Full name must be at most 50 characters"}
	}
	return nil
}

// Create validates the form rules and stores a new designer.
func (s *DesignerService) Create(ctx context.Context, draft models.DesignerDraft) (*models.Designer, error) {
	if err := validateFullName(draft.FullName); err != nil {
		return nil, err
	}
	if draft.Status == "" {
		draft.Status = models.StatusActive
	}
	d, err := s.store.Create(ctx, draft)
	s.cache.DesignersChanged()
	if err != nil {
		s.logger.Error("designer create failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("designer created", zap.String("id", d.ID))
	return d, nil
}

// Update validates any patched form fields and applies the partial update.
func (s *DesignerService) Update(ctx context.Context, id string, patch models.DesignerPatch) (*models.Designer, error) {
	if patch.FullName != nil {
		if err := validateFullName(*patch.FullName); err != nil {
			return nil, err
		}
	}
	d, err := s.store.Update(ctx, id, patch)
	s.cache.DesignersChanged()
	if err != nil {
		s.logger.Error("designer update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

// Delete removes the designer. Objects attached to it are neither deleted nor
// reassigned; their references dangle until edited.
func (s *DesignerService) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	s.cache.DesignersChanged()
	if err != nil {
		s.logger.Error("designer delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("designer deleted", zap.String("id", id))
	return nil
}
