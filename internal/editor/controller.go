package editor

import (
	"context"

	"go.uber.org/zap"

	"registry-service/internal/metrics"
	"registry-service/internal/models"
	"registry-service/internal/query"
	"registry-service/internal/repository"
)

// spawnHeight is the fixed height above the ground plane for newly placed
// objects.
const spawnHeight = 0.5

// Intersection describes what a viewport gesture hit. The rendering
// collaborator reports it; the controller never sees raw three-dimensional
// picking data.
type Intersection struct {
	// ObjectID is non-empty when the gesture hit a rendered object.
	ObjectID string
	// Ground is true when the gesture intersected the ground plane.
	Ground bool
	// Point is the world-space hit point; only meaningful for ground hits.
	Point models.Position
}

// RenderState is the per-object output contract to the rendering
// collaborator.
type RenderState struct {
	Object   models.Object3D
	Scale    float64
	Selected bool
	Hovered  bool
	// ShowHandles gates the transform gizmo: it renders only for the
	// selected object while a transform mode is active.
	ShowHandles bool
}

// SpawnPoint derives the position for a new object from a double-click
// gesture. A ground hit spawns at the clicked x/z raised to the fixed height;
// a gesture that hit nothing spawns above the origin.
func SpawnPoint(hit *Intersection) models.Position {
	if hit != nil && hit.Ground {
		return models.NewPosition(hit.Point.X, spawnHeight, hit.Point.Z)
	}
	return models.NewPosition(0, spawnHeight, 0)
}

// SceneController maps viewport gestures and panel actions to domain intents.
// It never retries failed repository calls; errors surface to the caller for
// presentation and the editor state stays exactly as it was.
type SceneController struct {
	state   *State
	objects repository.ObjectStore
	cache   *query.Cache
	logger  *zap.Logger
	metrics *metrics.EditorMetrics

	spawn models.Position
}

// NewSceneController creates a controller over the given state, object store
// and cache. metrics may be nil.
func NewSceneController(state *State, objects repository.ObjectStore, cache *query.Cache, m *metrics.EditorMetrics, logger *zap.Logger) *SceneController {
	return &SceneController{
		state:   state,
		objects: objects,
		cache:   cache,
		logger:  logger,
		metrics: m,
		spawn:   models.NewPosition(0, spawnHeight, 0),
	}
}

// State exposes the shared editor state container.
func (c *SceneController) State() *State {
	return c.state
}

// HandlePointerOver marks an object hovered.
func (c *SceneController) HandlePointerOver(objectID string) {
	c.state.SetHoveredObject(objectID)
}

// HandlePointerOut clears the hover, but only if it still belongs to the
// object the pointer left.
func (c *SceneController) HandlePointerOut(objectID string) {
	if c.state.HoveredObject() == objectID {
		c.state.SetHoveredObject("")
	}
}

// HandleClick selects the hit object and reports whether the gesture was
// consumed. A consumed click must not fall through to any background or spawn
// action in the same gesture.
func (c *SceneController) HandleClick(hit *Intersection) bool {
	if hit == nil || hit.ObjectID == "" {
		return false
	}
	c.state.SetSelectedObject(hit.ObjectID)
	return true
}

// HandleDoubleClick opens the placement flow for a double-click on empty
// viewport space, capturing the spawn point from the gesture. Double-clicks
// that land on an object are ignored. Returns true when the flow opened.
func (c *SceneController) HandleDoubleClick(hit *Intersection) bool {
	if hit != nil && hit.ObjectID != "" {
		return false
	}
	c.spawn = SpawnPoint(hit)
	c.state.SetAddingObject(true)
	c.metrics.SpawnOpened()
	return true
}

// BeginPlacement opens the placement flow from the toolbar, spawning above
// the origin.
func (c *SceneController) BeginPlacement() {
	c.spawn = models.NewPosition(0, spawnHeight, 0)
	c.state.SetAddingObject(true)
	c.metrics.SpawnOpened()
}

// CancelPlacement closes the placement flow without creating anything.
func (c *SceneController) CancelPlacement() {
	c.state.SetAddingObject(false)
}

// PendingSpawn returns the spawn point captured for the open placement flow.
func (c *SceneController) PendingSpawn() models.Position {
	return c.spawn
}

// SubmitPlacement combines the captured spawn point with the form fields into
// one create call. On success the new object becomes the selection and the
// flow closes; on failure the flow stays open and state is untouched.
func (c *SceneController) SubmitPlacement(ctx context.Context, form models.ObjectDraft) (*models.Object3D, error) {
	form.Position = c.spawn
	obj, err := c.objects.Create(ctx, form)
	c.cache.ObjectsChanged()
	if err != nil {
		c.logger.Error("object create failed", zap.Error(err))
		return nil, err
	}
	c.state.SetSelectedObject(obj.ID)
	c.state.SetAddingObject(false)
	c.logger.Info("object created", zap.String("id", obj.ID), zap.String("shape", string(obj.Shape)))
	return obj, nil
}

// HandleTransformEnd persists the final world position when a transform
// handle drag releases. Intermediate drag positions are never persisted.
// Drags are only live for the selected object while a mode is active; stale
// events are dropped.
func (c *SceneController) HandleTransformEnd(ctx context.Context, objectID string, pos models.Position) error {
	snap := c.state.Snapshot()
	if snap.TransformMode == TransformNone || snap.SelectedObjectID != objectID {
		return nil
	}
	p := pos
	_, err := c.objects.Update(ctx, objectID, models.Object3DPatch{Position: &p})
	c.cache.ObjectsChanged()
	if err != nil {
		c.logger.Error("position update failed", zap.String("id", objectID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteObject removes an object. The selection is cleared only when the
// deleted object was selected and the delete succeeded.
func (c *SceneController) DeleteObject(ctx context.Context, id string) error {
	err := c.objects.Delete(ctx, id)
	c.cache.ObjectsChanged()
	if err != nil {
		c.logger.Error("object delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if c.state.SelectedObject() == id {
		c.state.SetSelectedObject("")
	}
	return nil
}

// RenderStates computes the per-object render contract for the current
// editor state.
func (c *SceneController) RenderStates(objects []models.Object3D) []RenderState {
	snap := c.state.Snapshot()
	out := make([]RenderState, 0, len(objects))
	for _, obj := range objects {
		selected := snap.SelectedObjectID == obj.ID
		out = append(out, RenderState{
			Object:      obj,
			Scale:       obj.Size.Scale(),
			Selected:    selected,
			Hovered:     snap.HoveredObjectID == obj.ID,
			ShowHandles: selected && snap.TransformMode != TransformNone,
		})
	}
	return out
}
