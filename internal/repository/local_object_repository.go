package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"registry-service/internal/models"
	"registry-service/internal/storage"
)

// LocalObjectRepository implements ObjectStore over durable key-value storage,
// whole collection under one key.
type LocalObjectRepository struct {
	kv *storage.KVStore
}

// NewLocalObjectRepository creates a local object store.
func NewLocalObjectRepository(kv *storage.KVStore) *LocalObjectRepository {
	return &LocalObjectRepository{kv: kv}
}

func loadObjects(ctx context.Context, kv *storage.KVStore) ([]models.Object3D, error) {
	raw, err := kv.Get(ctx, objectsKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Object3D{}, nil
	}
	var objects []models.Object3D
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, errors.Wrap(err, "could not decode object collection")
	}
	return objects, nil
}

func (r *LocalObjectRepository) save(ctx context.Context, objects []models.Object3D) error {
	raw, err := json.Marshal(objects)
	if err != nil {
		return errors.Wrap(err, "could not encode object collection")
	}
	return r.kv.Put(ctx, objectsKey, raw)
}

// GetAll returns all stored objects.
func (r *LocalObjectRepository) GetAll(ctx context.Context) ([]models.Object3D, error) {
	return loadObjects(ctx, r.kv)
}

// GetByID returns (nil, nil) when the object does not exist.
func (r *LocalObjectRepository) GetByID(ctx context.Context, id string) (*models.Object3D, error) {
	objects, err := loadObjects(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	for i := range objects {
		if objects[i].ID == id {
			return &objects[i], nil
		}
	}
	return nil, nil
}

// Create generates a fresh id, appends and persists the whole collection.
func (r *LocalObjectRepository) Create(ctx context.Context, draft models.ObjectDraft) (*models.Object3D, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	objects, err := loadObjects(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	shape := draft.Shape
	if shape == "" {
		shape = models.ShapeBox
	}
	obj := models.Object3D{
		ID:                 uuid.NewString(),
		Name:               draft.Name,
		AttachedDesignerID: draft.AttachedDesignerID,
		Color:              draft.Color,
		Position:           draft.Position,
		Size:               draft.Size,
		Shape:              shape,
	}
	objects = append(objects, obj)
	if err := r.save(ctx, objects); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Update performs a shallow field merge and persists. A missing id is a hard
// failure.
func (r *LocalObjectRepository) Update(ctx context.Context, id string, patch models.Object3DPatch) (*models.Object3D, error) {
	objects, err := loadObjects(ctx, r.kv)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range objects {
		if objects[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Entity: "object", ID: id}
	}
	if patch.Name != nil {
		objects[idx].Name = *patch.Name
	}
	if patch.AttachedDesignerID != nil {
		objects[idx].AttachedDesignerID = *patch.AttachedDesignerID
	}
	if patch.Color != nil {
		objects[idx].Color = *patch.Color
	}
	if patch.Position != nil {
		objects[idx].Position = *patch.Position
	}
	if patch.Size != nil {
		objects[idx].Size = *patch.Size
	}
	if patch.Shape != nil {
		objects[idx].Shape = *patch.Shape
	}
	if err := r.save(ctx, objects); err != nil {
		return nil, err
	}
	return &objects[idx], nil
}

// Delete filters the id out and persists.
func (r *LocalObjectRepository) Delete(ctx context.Context, id string) error {
	objects, err := loadObjects(ctx, r.kv)
	if err != nil {
		return err
	}
	filtered := objects[:0]
	for _, o := range objects {
		if o.ID != id {
			filtered = append(filtered, o)
		}
	}
	return r.save(ctx, filtered)
}
