package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"registry-service/internal/metrics"
	"registry-service/internal/models"
	"registry-service/internal/query"
	"registry-service/internal/repository"
)

// AutoSaver debounces property-panel edits into a single partial update per
// quiet window. Every further edit restarts the delay; only the last draft in
// the window persists. There is no explicit save action.
//
// Cancellation is a hard guarantee: after Cancel or Track the pending save
// will not fire, enforced by a generation counter checked under the mutex
// rather than by hoping a stale timer is harmless.
type AutoSaver struct {
	objects repository.ObjectStore
	cache   *query.Cache
	logger  *zap.Logger
	metrics *metrics.EditorMetrics
	delay   time.Duration

	// OnSaved, OnError and OnReset are optional UI hooks. OnReset reports a
	// field whose edit was dropped and reset to the last known good value.
	OnSaved func(models.Object3D)
	OnError func(error)
	OnReset func(field string)

	mu       sync.Mutex
	gen      uint64
	timer    *time.Timer
	objectID string
	known    models.Object3D
	draft    models.ObjectDraft
	tracking bool
}

// NewAutoSaver creates an autosaver with the given debounce delay.
func NewAutoSaver(objects repository.ObjectStore, cache *query.Cache, delay time.Duration, m *metrics.EditorMetrics, logger *zap.Logger) *AutoSaver {
	return &AutoSaver{
		objects: objects,
		cache:   cache,
		logger:  logger,
		metrics: m,
		delay:   delay,
	}
}

// Track points the autosaver at the selected object, seeding the last known
// good values. Any pending save for a previous object is canceled.
func (a *AutoSaver) Track(obj models.Object3D) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
	a.objectID = obj.ID
	a.known = obj
	a.draft = models.ObjectDraft{
		Name:               obj.Name,
		AttachedDesignerID: obj.AttachedDesignerID,
		Color:              obj.Color,
		Size:               obj.Size,
		Shape:              obj.Shape,
	}
	a.tracking = true
}

// Edit records a form edit and (re)starts the debounce window.
func (a *AutoSaver) Edit(draft models.ObjectDraft) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.tracking {
		return
	}
	a.draft = draft
	a.cancelLocked()
	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() {
		a.fire(gen)
	})
}

// Cancel drops any pending save. Called on deselection and when the panel
// closes.
func (a *AutoSaver) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
	a.tracking = false
}

// cancelLocked stops the timer and bumps the generation so an already-fired
// callback becomes a no-op. Callers hold a.mu.
func (a *AutoSaver) cancelLocked() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *AutoSaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || !a.tracking {
		a.mu.Unlock()
		return
	}
	id := a.objectID
	draft := a.draft
	known := a.known
	a.mu.Unlock()

	// A save only fires with a usable name and designer; the offending field
	// is reset to the last known good value and nothing is sent.
	if strings.TrimSpace(draft.Name) == "" {
		a.resetField("name", func() { a.draft.Name = known.Name })
		return
	}
	if strings.TrimSpace(draft.AttachedDesignerID) == "" {
		a.resetField("attachedDesignerId", func() { a.draft.AttachedDesignerID = known.AttachedDesignerID })
		return
	}

	patch := models.Object3DPatch{
		Name:               &draft.Name,
		AttachedDesignerID: &draft.AttachedDesignerID,
		Color:              &draft.Color,
		Size:               &draft.Size,
		Shape:              &draft.Shape,
	}
	obj, err := a.objects.Update(context.Background(), id, patch)
	a.cache.ObjectsChanged()
	if err != nil {
		a.logger.Error("autosave failed", zap.String("id", id), zap.Error(err))
		if a.OnError != nil {
			a.OnError(err)
		}
		return
	}
	a.metrics.AutosaveFlushed()
	a.mu.Lock()
	if a.tracking && a.objectID == obj.ID {
		a.known = *obj
	}
	a.mu.Unlock()
	if a.OnSaved != nil {
		a.OnSaved(*obj)
	}
}

func (a *AutoSaver) resetField(field string, reset func()) {
	a.metrics.AutosaveRejected()
	a.mu.Lock()
	reset()
	a.mu.Unlock()
	if a.OnReset != nil {
		a.OnReset(field)
	}
}
