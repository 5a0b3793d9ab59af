package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"registry-service/internal/models"
)

type stubDesignerStore struct {
	getAllCalls int
	designers   []models.Designer
}

func (s *stubDesignerStore) GetAll(context.Context) ([]models.Designer, error) {
	s.getAllCalls++
	return s.designers, nil
}

func (s *stubDesignerStore) GetByID(context.Context, string) (*models.Designer, error) {
	return nil, nil
}

func (s *stubDesignerStore) Create(context.Context, models.DesignerDraft) (*models.Designer, error) {
	return nil, nil
}

func (s *stubDesignerStore) Update(context.Context, string, models.DesignerPatch) (*models.Designer, error) {
	return nil, nil
}

func (s *stubDesignerStore) Delete(context.Context, string) error { return nil }

type stubObjectStore struct {
	getAllCalls int
	objects     []models.Object3D
}

func (s *stubObjectStore) GetAll(context.Context) ([]models.Object3D, error) {
	s.getAllCalls++
	return s.objects, nil
}

func (s *stubObjectStore) GetByID(context.Context, string) (*models.Object3D, error) {
	return nil, nil
}

func (s *stubObjectStore) Create(context.Context, models.ObjectDraft) (*models.Object3D, error) {
	return nil, nil
}

func (s *stubObjectStore) Update(context.Context, string, models.Object3DPatch) (*models.Object3D, error) {
	return nil, nil
}

func (s *stubObjectStore) Delete(context.Context, string) error { return nil }

func newTestCache() (*Cache, *stubDesignerStore, *stubObjectStore) {
	designers := &stubDesignerStore{designers: []models.Designer{{ID: "d-1", FullName: "Ada Lovelace"}}}
	objects := &stubObjectStore{objects: []models.Object3D{{ID: "o-1", Name: "Crate"}}}
	return NewCache(designers, objects, nil, zap.NewNop()), designers, objects
}

func TestCacheMemoizesReads(t *testing.T) {
	cache, designers, objects := newTestCache()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cache.Designers(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
	assert.Equal(t, 1, designers.getAllCalls)

	for i := 0; i < 3; i++ {
		got, err := cache.Objects(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
	assert.Equal(t, 1, objects.getAllCalls)
}

func TestCacheObjectLookup(t *testing.T) {
	cache, _, _ := newTestCache()
	ctx := context.Background()

	obj, err := cache.Object(ctx, "o-1")
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, "Crate", obj.Name)

	absent, err := cache.Object(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestObjectChangeInvalidatesBothCollections(t *testing.T) {
	cache, designers, objects := newTestCache()
	ctx := context.Background()

	_, err := cache.Designers(ctx)
	require.NoError(t, err)
	_, err = cache.Objects(ctx)
	require.NoError(t, err)

	// The designer count aggregation depends on the objects collection, so
	// an object mutation must refresh designers too.
	cache.ObjectsChanged()

	_, err = cache.Designers(ctx)
	require.NoError(t, err)
	_, err = cache.Objects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, designers.getAllCalls)
	assert.Equal(t, 2, objects.getAllCalls)
}

func TestDesignerChangeInvalidatesBothCollections(t *testing.T) {
	cache, designers, objects := newTestCache()
	ctx := context.Background()

	_, err := cache.Designers(ctx)
	require.NoError(t, err)
	_, err = cache.Objects(ctx)
	require.NoError(t, err)

	cache.DesignersChanged()

	_, err = cache.Designers(ctx)
	require.NoError(t, err)
	_, err = cache.Objects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, designers.getAllCalls)
	assert.Equal(t, 2, objects.getAllCalls)
}
