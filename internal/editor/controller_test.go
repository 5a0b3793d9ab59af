package editor

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"registry-service/internal/models"
	"registry-service/internal/query"
)

type recordedUpdate struct {
	id    string
	patch models.Object3DPatch
}

// fakeObjectStore records every mutation and echoes patches back as the
// updated object.
type fakeObjectStore struct {
	mu        sync.Mutex
	creates   []models.ObjectDraft
	updates   []recordedUpdate
	deletes   []string
	createErr error
	updateErr error
	deleteErr error
}

func (s *fakeObjectStore) GetAll(context.Context) ([]models.Object3D, error) { return nil, nil }

func (s *fakeObjectStore) GetByID(context.Context, string) (*models.Object3D, error) {
	return nil, nil
}

func (s *fakeObjectStore) Create(_ context.Context, draft models.ObjectDraft) (*models.Object3D, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.creates = append(s.creates, draft)
	shape := draft.Shape
	if shape == "" {
		shape = models.ShapeBox
	}
	return &models.Object3D{
		ID:                 "o-new",
		Name:               draft.Name,
		AttachedDesignerID: draft.AttachedDesignerID,
		Color:              draft.Color,
		Position:           draft.Position,
		Size:               draft.Size,
		Shape:              shape,
	}, nil
}

func (s *fakeObjectStore) Update(_ context.Context, id string, patch models.Object3DPatch) (*models.Object3D, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updates = append(s.updates, recordedUpdate{id: id, patch: patch})
	obj := models.Object3D{ID: id}
	if patch.Name != nil {
		obj.Name = *patch.Name
	}
	if patch.AttachedDesignerID != nil {
		obj.AttachedDesignerID = *patch.AttachedDesignerID
	}
	if patch.Color != nil {
		obj.Color = *patch.Color
	}
	if patch.Position != nil {
		obj.Position = *patch.Position
	}
	if patch.Size != nil {
		obj.Size = *patch.Size
	}
	if patch.Shape != nil {
		obj.Shape = *patch.Shape
	}
	return &obj, nil
}

func (s *fakeObjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletes = append(s.deletes, id)
	return nil
}

func (s *fakeObjectStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

func (s *fakeObjectStore) lastUpdate() recordedUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates[len(s.updates)-1]
}

func newTestController(store *fakeObjectStore) *SceneController {
	cache := query.NewCache(nil, store, nil, zap.NewNop())
	return NewSceneController(NewState(), store, cache, nil, zap.NewNop())
}

func TestSpawnPoint(t *testing.T) {
	assert.Equal(t, models.NewPosition(0, 0.5, 0), SpawnPoint(nil))

	ground := &Intersection{Ground: true, Point: models.NewPosition(2, 0, 4)}
	assert.Equal(t, models.NewPosition(2, 0.5, 4), SpawnPoint(ground))

	miss := &Intersection{}
	assert.Equal(t, models.NewPosition(0, 0.5, 0), SpawnPoint(miss))
}

func TestHandleClickSelectsAndConsumes(t *testing.T) {
	c := newTestController(&fakeObjectStore{})

	consumed := c.HandleClick(&Intersection{ObjectID: "o-1"})
	assert.True(t, consumed)
	assert.Equal(t, "o-1", c.State().SelectedObject())

	consumed = c.HandleClick(nil)
	assert.False(t, consumed)
	assert.Equal(t, "o-1", c.State().SelectedObject(), "a background click does not clear the selection")
}

func TestHandlePointerOutOnlyClearsMatchingHover(t *testing.T) {
	c := newTestController(&fakeObjectStore{})

	c.HandlePointerOver("o-1")
	c.HandlePointerOver("o-2")
	c.HandlePointerOut("o-1")
	assert.Equal(t, "o-2", c.State().HoveredObject(), "a stale pointer-out is ignored")

	c.HandlePointerOut("o-2")
	assert.Empty(t, c.State().HoveredObject())
}

func TestDoubleClickOpensPlacement(t *testing.T) {
	c := newTestController(&fakeObjectStore{})

	opened := c.HandleDoubleClick(&Intersection{ObjectID: "o-1"})
	assert.False(t, opened, "double-clicking an object never opens placement")
	assert.False(t, c.State().Snapshot().IsAddingObject)

	opened = c.HandleDoubleClick(&Intersection{Ground: true, Point: models.NewPosition(2, 0, 4)})
	assert.True(t, opened)
	assert.True(t, c.State().Snapshot().IsAddingObject)
	assert.Equal(t, models.NewPosition(2, 0.5, 4), c.PendingSpawn())
}

func TestSubmitPlacement(t *testing.T) {
	store := &fakeObjectStore{}
	c := newTestController(store)

	require.True(t, c.HandleDoubleClick(&Intersection{Ground: true, Point: models.NewPosition(2, 0, 4)}))

	form := models.ObjectDraft{
		Name:               "Crate",
		AttachedDesignerID: "d-1",
		Color:              "#ff8800",
		Size:               models.SizeNormal,
		// Position deliberately zero: the captured spawn point must win.
	}
	obj, err := c.SubmitPlacement(context.Background(), form)
	require.NoError(t, err)

	require.Len(t, store.creates, 1)
	assert.Equal(t, models.NewPosition(2, 0.5, 4), store.creates[0].Position)

	snap := c.State().Snapshot()
	assert.Equal(t, obj.ID, snap.SelectedObjectID, "the new object becomes the selection")
	assert.False(t, snap.IsAddingObject)
}

func TestSubmitPlacementFailureKeepsFlowOpen(t *testing.T) {
	store := &fakeObjectStore{createErr: errors.New("backend unavailable")}
	c := newTestController(store)

	c.BeginPlacement()
	c.State().SetSelectedObject("o-old")

	_, err := c.SubmitPlacement(context.Background(), models.ObjectDraft{Name: "Crate"})
	require.Error(t, err)

	snap := c.State().Snapshot()
	assert.True(t, snap.IsAddingObject, "the flow stays open for another attempt")
	assert.Equal(t, "o-old", snap.SelectedObjectID)
}

func TestCancelPlacement(t *testing.T) {
	c := newTestController(&fakeObjectStore{})
	c.BeginPlacement()
	c.CancelPlacement()
	assert.False(t, c.State().Snapshot().IsAddingObject)
}

func TestHandleTransformEndGating(t *testing.T) {
	store := &fakeObjectStore{}
	c := newTestController(store)
	ctx := context.Background()
	pos := models.NewPosition(3, 0.5, -2)

	require.NoError(t, c.HandleTransformEnd(ctx, "o-1", pos))
	assert.Equal(t, 0, store.updateCount(), "no selection means no persist")

	c.State().SetSelectedObject("o-1")
	c.State().SetTransformMode(TransformNone)
	require.NoError(t, c.HandleTransformEnd(ctx, "o-1", pos))
	assert.Equal(t, 0, store.updateCount(), "no active mode means no persist")

	c.State().SetTransformMode(TransformTranslate)
	require.NoError(t, c.HandleTransformEnd(ctx, "o-2", pos))
	assert.Equal(t, 0, store.updateCount(), "a stale event for another object is dropped")

	require.NoError(t, c.HandleTransformEnd(ctx, "o-1", pos))
	require.Equal(t, 1, store.updateCount())

	upd := store.lastUpdate()
	assert.Equal(t, "o-1", upd.id)
	require.NotNil(t, upd.patch.Position)
	assert.Equal(t, pos, *upd.patch.Position)
	assert.Nil(t, upd.patch.Name, "only the position is patched")
}

func TestDeleteObjectClearsSelectionOnSuccess(t *testing.T) {
	store := &fakeObjectStore{}
	c := newTestController(store)
	ctx := context.Background()

	c.State().SetSelectedObject("o-1")
	require.NoError(t, c.DeleteObject(ctx, "o-2"))
	assert.Equal(t, "o-1", c.State().SelectedObject(), "deleting another object keeps the selection")

	require.NoError(t, c.DeleteObject(ctx, "o-1"))
	assert.Empty(t, c.State().SelectedObject())

	store.deleteErr = errors.New("backend unavailable")
	c.State().SetSelectedObject("o-3")
	require.Error(t, c.DeleteObject(ctx, "o-3"))
	assert.Equal(t, "o-3", c.State().SelectedObject(), "a failed delete keeps the selection")
}

func TestRenderStates(t *testing.T) {
	c := newTestController(&fakeObjectStore{})
	c.State().SetSelectedObject("o-1")
	c.State().SetHoveredObject("o-2")

	objects := []models.Object3D{
		{ID: "o-1", Size: models.SizeLarge},
		{ID: "o-2", Size: models.SizeSmall},
	}
	states := c.RenderStates(objects)
	require.Len(t, states, 2)

	assert.True(t, states[0].Selected)
	assert.True(t, states[0].ShowHandles)
	assert.Equal(t, 2.0, states[0].Scale)

	assert.True(t, states[1].Hovered)
	assert.False(t, states[1].ShowHandles)
	assert.Equal(t, 0.5, states[1].Scale)

	c.State().SetTransformMode(TransformNone)
	states = c.RenderStates(objects)
	assert.False(t, states[0].ShowHandles, "no handles without an active mode")
}
