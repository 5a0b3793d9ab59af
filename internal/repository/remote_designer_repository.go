package repository

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"registry-service/internal/models"
	"registry-service/internal/storage"
)

// RemoteDesignerRepository implements DesignerStore against the hosted
// document database.
type RemoteDesignerRepository struct {
	client          *storage.DocumentClient
	designersCol    string
	objectsCol      string
	objectPageLimit int
	logger          *zap.Logger
}

// NewRemoteDesignerRepository creates a remote designer store. objectPageLimit
// bounds the objects read used for the count aggregation.
func NewRemoteDesignerRepository(client *storage.DocumentClient, designersCol, objectsCol string, objectPageLimit int, logger *zap.Logger) *RemoteDesignerRepository {
	return &RemoteDesignerRepository{
		client:          client,
		designersCol:    designersCol,
		objectsCol:      objectsCol,
		objectPageLimit: objectPageLimit,
		logger:          logger,
	}
}

// GetAll fetches the designer collection (newest first) and the object
// collection concurrently, then overwrites every designer's attached-object
// count with one computed from the object list. The backend's own relation
// expansion is not trusted: it may be missing or stale, so the live
// aggregation always wins.
func (r *RemoteDesignerRepository) GetAll(ctx context.Context) ([]models.Designer, error) {
	var (
		designerDocs *storage.DocumentList
		objectDocs   *storage.DocumentList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := r.client.ListDocuments(gctx, r.designersCol, storage.OrderDesc("$createdAt"))
		if err != nil {
			return err
		}
		designerDocs = list
		return nil
	})
	g.Go(func() error {
		list, err := r.client.ListDocuments(gctx, r.objectsCol, storage.Limit(r.objectPageLimit))
		if err != nil {
			return err
		}
		objectDocs = list
		return nil
	})
	if err := g.Wait(); err != nil {
		r.logger.Error("failed to fetch designers", zap.Error(err))
		return nil, err
	}

	counts, err := countAttachedObjects(objectDocs.Documents)
	if err != nil {
		return nil, err
	}

	designers := make([]models.Designer, 0, len(designerDocs.Documents))
	for _, raw := range designerDocs.Documents {
		d, err := decodeDesignerDocument(raw)
		if err != nil {
			return nil, err
		}
		d.AttachedObjectsCount = counts[d.ID]
		designers = append(designers, d)
	}
	return designers, nil
}

// GetByID returns (nil, nil) when the designer does not exist; any other
// failure propagates.
func (r *RemoteDesignerRepository) GetByID(ctx context.Context, id string) (*models.Designer, error) {
	raw, err := r.client.GetDocument(ctx, r.designersCol, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	d, err := decodeDesignerDocument(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create validates the draft and stores a new designer document. The backend
// assigns the id.
func (r *RemoteDesignerRepository) Create(ctx context.Context, draft models.DesignerDraft) (*models.Designer, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	status := draft.Status
	if status == "" {
		status = models.StatusActive
	}
	data := map[string]any{
		"fullName":     draft.FullName,
		"workingHours": draft.WorkingHours,
		"status":       string(status),
	}
	raw, err := r.client.CreateDocument(ctx, r.designersCol, data)
	if err != nil {
		r.logger.Error("failed to create designer", zap.Error(err))
		return nil, err
	}
	d, err := decodeDesignerDocument(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Update forwards only the fields present and non-empty in the patch; empty
// values leave the stored attribute untouched, so a field cannot be cleared
// through update.
func (r *RemoteDesignerRepository) Update(ctx context.Context, id string, patch models.DesignerPatch) (*models.Designer, error) {
	data := map[string]any{}
	if patch.FullName != nil && *patch.FullName != "" {
		data["fullName"] = *patch.FullName
	}
	if patch.WorkingHours != nil && *patch.WorkingHours != "" {
		if !models.ValidWorkingHours(*patch.WorkingHours) {
			return nil, &models.ValidationError{Field: "workingHours", Message: "Working hours must be in format HH:mm-HH:mm"}
		}
		data["workingHours"] = *patch.WorkingHours
	}
	if patch.Status != nil && *patch.Status != "" {
		data["status"] = string(*patch.Status)
	}
	raw, err := r.client.UpdateDocument(ctx, r.designersCol, id, data)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, &NotFoundError{Entity: "designer", ID: id}
		}
		r.logger.Error("failed to update designer", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	d, err := decodeDesignerDocument(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes the designer document. Objects referencing it are left in
// place with a dangling reference; there is no cascade and no reassignment.
func (r *RemoteDesignerRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteDocument(ctx, r.designersCol, id); err != nil {
		if storage.IsNotFound(err) {
			return &NotFoundError{Entity: "designer", ID: id}
		}
		r.logger.Error("failed to delete designer", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
