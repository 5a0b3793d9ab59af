package repository

import (
	"context"
	"time"

	"registry-service/internal/metrics"
	"registry-service/internal/models"
)

// InstrumentedDesignerStore wraps a DesignerStore with metrics collection.
type InstrumentedDesignerStore struct {
	next    DesignerStore
	metrics *metrics.StoreMetrics
	backend string
}

// NewInstrumentedDesignerStore creates a new instrumented designer store.
func NewInstrumentedDesignerStore(next DesignerStore, m *metrics.StoreMetrics, backend string) *InstrumentedDesignerStore {
	return &InstrumentedDesignerStore{next: next, metrics: m, backend: backend}
}

func (s *InstrumentedDesignerStore) GetAll(ctx context.Context) ([]models.Designer, error) {
	start := time.Now()
	out, err := s.next.GetAll(ctx)
	s.metrics.Observe(s.backend, "designers", "get_all", time.Since(start), err)
	return out, err
}

func (s *InstrumentedDesignerStore) GetByID(ctx context.Context, id string) (*models.Designer, error) {
	start := time.Now()
	out, err := s.next.GetByID(ctx, id)
	s.metrics.Observe(s.backend, "designers", "get_by_id", time.Since(start), err)
	return out, err
}

func (s *InstrumentedDesignerStore) Create(ctx context.Context, draft models.DesignerDraft) (*models.Designer, error) {
	start := time.Now()
	out, err := s.next.Create(ctx, draft)
	s.metrics.Observe(s.backend, "designers", "create", time.Since(start), err)
	return out, err
}

func (s *InstrumentedDesignerStore) Update(ctx context.Context, id string, patch models.DesignerPatch) (*models.Designer, error) {
	start := time.Now()
	out, err := s.next.Update(ctx, id, patch)
	s.metrics.Observe(s.backend, "designers", "update", time.Since(start), err)
	return out, err
}

func (s *InstrumentedDesignerStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.metrics.Observe(s.backend, "designers", "delete", time.Since(start), err)
	return err
}

// InstrumentedObjectStore wraps an ObjectStore with metrics collection.
type InstrumentedObjectStore struct {
	next    ObjectStore
	metrics *metrics.StoreMetrics
	backend string
}

// NewInstrumentedObjectStore creates a new instrumented object store.
func NewInstrumentedObjectStore(next ObjectStore, m *metrics.StoreMetrics, backend string) *InstrumentedObjectStore {
	return &InstrumentedObjectStore{next: next, metrics: m, backend: backend}
}

func (s *InstrumentedObjectStore) GetAll(ctx context.Context) ([]models.Object3D, error) {
	start := time.Now()
	out, err := s.next.GetAll(ctx)
	s.metrics.Observe(s.backend, "objects", "get_all", time.Since(start), err)
	return out, err
}

func (s *InstrumentedObjectStore) GetByID(ctx context.Context, id string) (*models.Object3D, error) {
	start := time.Now()
	out, err := s.next.GetByID(ctx, id)
	s.metrics.Observe(s.backend, "objects", "get_by_id", time.Since(start), err)
	return out, err
}

func (s *InstrumentedObjectStore) Create(ctx context.Context, draft models.ObjectDraft) (*models.Object3D, error) {
	start := time.Now()
	out, err := s.next.Create(ctx, draft)
	s.metrics.Observe(s.backend, "objects", "create", time.Since(start), err)
	return out, err
}

func (s *InstrumentedObjectStore) Update(ctx context.Context, id string, patch models.Object3DPatch) (*models.Object3D, error) {
	start := time.Now()
	out, err := s.next.Update(ctx, id, patch)
	s.metrics.Observe(s.backend, "objects", "update", time.Since(start), err)
	return out, err
}

func (s *InstrumentedObjectStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.metrics.Observe(s.backend, "objects", "delete", time.Since(start), err)
	return err
}
