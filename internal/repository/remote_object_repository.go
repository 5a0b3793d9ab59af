package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"registry-service/internal/models"
	"registry-service/internal/storage"
)

// RemoteObjectRepository implements ObjectStore against the hosted document
// database. Positions are flattened to three scalar attributes on write and
// reassembled on read; the designer relation is written as a bare id.
type RemoteObjectRepository struct {
	client     *storage.DocumentClient
	collection string
	logger     *zap.Logger
}

// NewRemoteObjectRepository creates a remote object store.
func NewRemoteObjectRepository(client *storage.DocumentClient, collection string, logger *zap.Logger) *RemoteObjectRepository {
	return &RemoteObjectRepository{client: client, collection: collection, logger: logger}
}

// GetAll fetches all objects, newest first.
func (r *RemoteObjectRepository) GetAll(ctx context.Context) ([]models.Object3D, error) {
	list, err := r.client.ListDocuments(ctx, r.collection, storage.OrderDesc("$createdAt"))
	if err != nil {
		r.logger.Error("failed to fetch objects", zap.Error(err))
		return nil, err
	}
	objects := make([]models.Object3D, 0, len(list.Documents))
	for _, raw := range list.Documents {
		o, err := decodeObjectDocument(raw)
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, nil
}

// GetByID returns (nil, nil) when the object does not exist; any other
// failure propagates.
func (r *RemoteObjectRepository) GetByID(ctx context.Context, id string) (*models.Object3D, error) {
	raw, err := r.client.GetDocument(ctx, r.collection, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	o, err := decodeObjectDocument(raw)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// writeWithShapeFallback issues the write and, if the backend rejects it
// because its schema does not know the shape attribute, strips shape and
// retries exactly once. The object still lands, just without shape, instead
// of the whole operation failing. Any other error propagates unmodified.
func (r *RemoteObjectRepository) writeWithShapeFallback(data map[string]any, write func(map[string]any) (json.RawMessage, error)) (json.RawMessage, error) {
	raw, err := write(data)
	if err == nil {
		return raw, nil
	}
	if _, hasShape := data["shape"]; hasShape && storage.IsShapeSchemaRejection(err) {
		r.logger.Warn("backend schema rejected shape attribute, retrying without it")
		delete(data, "shape")
		return write(data)
	}
	return nil, err
}

// Create validates the draft and stores a new object document. The shape
// attribute is only sent when set; see writeWithShapeFallback for schema
// drift handling.
func (r *RemoteObjectRepository) Create(ctx context.Context, draft models.ObjectDraft) (*models.Object3D, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	data := map[string]any{
		"name":      draft.Name,
		"color":     draft.Color,
		"size":      string(draft.Size),
		"positionX": draft.Position.X,
		"positionY": draft.Position.Y,
		"positionZ": draft.Position.Z,
		"designers": draft.AttachedDesignerID,
	}
	if draft.Shape != "" {
		data["shape"] = string(draft.Shape)
	}
	raw, err := r.writeWithShapeFallback(data, func(d map[string]any) (json.RawMessage, error) {
		return r.client.CreateDocument(ctx, r.collection, d)
	})
	if err != nil {
		r.logger.Error("failed to create object", zap.Error(err))
		return nil, err
	}
	o, err := decodeObjectDocument(raw)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update forwards only the fields present and non-empty in the patch. A
// position patch is flattened into its three scalar attributes.
func (r *RemoteObjectRepository) Update(ctx context.Context, id string, patch models.Object3DPatch) (*models.Object3D, error) {
	data := map[string]any{}
	if patch.Name != nil && *patch.Name != "" {
		data["name"] = *patch.Name
	}
	if patch.Color != nil && *patch.Color != "" {
		data["color"] = *patch.Color
	}
	if patch.Size != nil && *patch.Size != "" {
		data["size"] = string(*patch.Size)
	}
	if patch.Shape != nil && *patch.Shape != "" {
		data["shape"] = string(*patch.Shape)
	}
	if patch.Position != nil {
		data["positionX"] = patch.Position.X
		data["positionY"] = patch.Position.Y
		data["positionZ"] = patch.Position.Z
	}
	if patch.AttachedDesignerID != nil && *patch.AttachedDesignerID != "" {
		data["designers"] = *patch.AttachedDesignerID
	}
	raw, err := r.writeWithShapeFallback(data, func(d map[string]any) (json.RawMessage, error) {
		return r.client.UpdateDocument(ctx, r.collection, id, d)
	})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, &NotFoundError{Entity: "object", ID: id}
		}
		r.logger.Error("failed to update object", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	o, err := decodeObjectDocument(raw)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Delete removes the object document. The owning designer is untouched.
func (r *RemoteObjectRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteDocument(ctx, r.collection, id); err != nil {
		if storage.IsNotFound(err) {
			return &NotFoundError{Entity: "object", ID: id}
		}
		r.logger.Error("failed to delete object", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
