package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"registry-service/internal/models"
	"registry-service/internal/storage"
)

// Fixed namespace keys, one serialized collection per entity type.
const (
	designersKey = "sb3d_designers"
	objectsKey   = "sb3d_objects"
)

// LocalDesignerRepository implements DesignerStore over durable key-value
// storage. The whole designer collection lives under one key and is rewritten
// on every mutation.
type LocalDesignerRepository struct {
	kv *storage.KVStore
}

// NewLocalDesignerRepository creates a local designer store.
func NewLocalDesignerRepository(kv *storage.KVStore) *LocalDesignerRepository {
	return &LocalDesignerRepository{kv: kv}
}

func loadDesigners(ctx context.Context, kv *storage.KVStore) ([]models.Designer, error) {
	raw, err := kv.Get(ctx, designersKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Designer{}, nil
	}
	var designers []models.Designer
	if err := json.Unmarshal(raw, &designers); err != nil {
		return nil, errors.Wrap(err, "could not decode designer collection")
	}
	return designers, nil
}

func (r *LocalDesignerRepository) save(ctx context.Context, designers []models.Designer) error {
	raw, err := json.Marshal(designers)
	if err != nil {
		return errors.Wrap(err, "could not encode designer collection")
	}
	return r.kv.Put(ctx, designersKey, raw)
}

// GetAll returns all designers with their attached-object counts recomputed
// from the objects collection, so the count invariant holds here exactly as
// it does on the remote backend.
func (r *LocalDesignerRepository) GetAll(ctx context.Context) ([]models.Designer, error) {
	designers, err := loadDesigners(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	objects, err := loadObjects(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	counts := CountByDesigner(objects)
	for i := range designers {
		designers[i].AttachedObjectsCount = counts[designers[i].ID]
	}
	return designers, nil
}

// GetByID returns (nil, nil) when the designer does not exist.
func (r *LocalDesignerRepository) GetByID(ctx context.Context, id string) (*models.Designer, error) {
	designers, err := loadDesigners(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	for i := range designers {
		if designers[i].ID == id {
			return &designers[i], nil
		}
	}
	return nil, nil
}

// Create generates a fresh id, validates the draft through the designer
// factory, appends and persists the whole collection.
func (r *LocalDesignerRepository) Create(ctx context.Context, draft models.DesignerDraft) (*models.Designer, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	designers, err := loadDesigners(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	d, err := models.NewDesigner(uuid.NewString(), draft.FullName, draft.WorkingHours)
	if err != nil {
		return nil, err
	}
	if draft.Status != "" {
		d.Status = draft.Status
	}
	designers = append(designers, *d)
	if err := r.save(ctx, designers); err != nil {
		return nil, err
	}
	return d, nil
}

// Update performs a shallow field merge and persists. A missing id is a hard
// failure.
func (r *LocalDesignerRepository) Update(ctx context.Context, id string, patch models.DesignerPatch) (*models.Designer, error) {
	designers, err := loadDesigners(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range designers {
		if designers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Entity: "designer", ID: id}
	}
	if patch.FullName != nil {
		designers[idx].FullName = *patch.FullName
	}
	if patch.WorkingHours != nil {
		if !models.ValidWorkingHours(*patch.WorkingHours) {
			return nil, &models.ValidationError{Field: "workingHours", Message: "Working hours must be in format HH:mm-HH:mm"}
		}
		designers[idx].WorkingHours = *patch.WorkingHours
	}
	if patch.Status != nil {
		designers[idx].Status = *patch.Status
	}
	if err := r.save(ctx, designers); err != nil {
		return nil, err
	}
	return &designers[idx], nil
}

// Delete filters the id out and persists. Objects referencing the designer
// keep their now-dangling reference.
func (r *LocalDesignerRepository) Delete(ctx context.Context, id string) error {
	designers, err := loadDesigners(ctx, r.kv)
	if err != nil {
		return err
	}
	filtered := designers[:0]
	for _, d := range designers {
		if d.ID != id {
			filtered = append(filtered, d)
		}
	}
	return r.save(ctx, filtered)
}
