package query

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"registry-service/internal/metrics"
	"registry-service/internal/models"
	"registry-service/internal/repository"
)

// Cache memoizes the two entity collections between store reads. Mutation
// paths notify it through DesignersChanged/ObjectsChanged; because the
// attached-objects count aggregation spans both collections, a change to
// either entity invalidates both cached reads.
type Cache struct {
	designers repository.DesignerStore
	objects   repository.ObjectStore
	logger    *zap.Logger
	metrics   *metrics.CacheMetrics

	mu              sync.Mutex
	cachedDesigners []models.Designer
	designersValid  bool
	cachedObjects   []models.Object3D
	objectsValid    bool
}

// NewCache creates an entity cache over the given stores. metrics may be nil.
func NewCache(designers repository.DesignerStore, objects repository.ObjectStore, m *metrics.CacheMetrics, logger *zap.Logger) *Cache {
	return &Cache{
		designers: designers,
		objects:   objects,
		metrics:   m,
		logger:    logger,
	}
}

// Designers returns the designer collection, fetching from the store only
// when the cached copy has been invalidated.
func (c *Cache) Designers(ctx context.Context) ([]models.Designer, error) {
	c.mu.Lock()
	if c.designersValid {
		out := make([]models.Designer, len(c.cachedDesigners))
		copy(out, c.cachedDesigners)
		c.mu.Unlock()
		c.metrics.Hit("designers")
		return out, nil
	}
	c.mu.Unlock()
	c.metrics.Miss("designers")

	designers, err := c.designers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.cachedDesigners = designers
	c.designersValid = true
	out := make([]models.Designer, len(designers))
	copy(out, designers)
	c.mu.Unlock()
	return out, nil
}

// Objects returns the object collection, fetching from the store only when
// the cached copy has been invalidated.
func (c *Cache) Objects(ctx context.Context) ([]models.Object3D, error) {
	c.mu.Lock()
	if c.objectsValid {
		out := make([]models.Object3D, len(c.cachedObjects))
		copy(out, c.cachedObjects)
		c.mu.Unlock()
		c.metrics.Hit("objects")
		return out, nil
	}
	c.mu.Unlock()
	c.metrics.Miss("objects")

	objects, err := c.objects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.cachedObjects = objects
	c.objectsValid = true
	out := make([]models.Object3D, len(objects))
	copy(out, objects)
	c.mu.Unlock()
	return out, nil
}

// Object returns one cached object by id, or nil when it is not present.
func (c *Cache) Object(ctx context.Context, id string) (*models.Object3D, error) {
	objects, err := c.Objects(ctx)
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

// ObjectsChanged invalidates both collections after an object mutation
// settles, success or failure.
func (c *Cache) ObjectsChanged() {
	c.invalidate()
}

// DesignersChanged invalidates both collections after a designer mutation
// settles, success or failure.
func (c *Cache) DesignersChanged() {
	c.invalidate()
}

func (c *Cache) invalidate() {
	c.mu.Lock()
	c.designersValid = false
	c.objectsValid = false
	c.cachedDesigners = nil
	c.cachedObjects = nil
	c.mu.Unlock()
}
