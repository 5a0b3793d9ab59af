package repository

import (
	"context"
	"fmt"

	"registry-service/internal/models"
)

// DesignerStore is the persistence surface for designers. Remote and local
// implementations are interchangeable behind it; callers select one at
// composition time and never type-switch on the backend.
//
// GetByID returns (nil, nil) when the record does not exist. Update and
// Delete against a missing id fail with *NotFoundError.
type DesignerStore interface {
	GetAll(ctx context.Context) ([]models.Designer, error)
	GetByID(ctx context.Context, id string) (*models.Designer, error)
	Create(ctx context.Context, draft models.DesignerDraft) (*models.Designer, error)
	Update(ctx context.Context, id string, patch models.DesignerPatch) (*models.Designer, error)
	Delete(ctx context.Context, id string) error
}

// ObjectStore is the persistence surface for placed 3D objects, with the same
// substitutability contract as DesignerStore. The object id is always
// store-assigned; Create and Update never let the caller set it.
type ObjectStore interface {
	GetAll(ctx context.Context) ([]models.Object3D, error)
	GetByID(ctx context.Context, id string) (*models.Object3D, error)
	Create(ctx context.Context, draft models.ObjectDraft) (*models.Object3D, error)
	Update(ctx context.Context, id string, patch models.Object3DPatch) (*models.Object3D, error)
	Delete(ctx context.Context, id string) error
}

// NotFoundError reports an update or delete against an id absent from the
// store.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
