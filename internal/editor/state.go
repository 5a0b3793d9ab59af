package editor

import "sync"

// TransformMode is the active manipulation tool for the selected object.
type TransformMode string

const (
	TransformTranslate TransformMode = "translate"
	TransformRotate    TransformMode = "rotate"
	TransformScale     TransformMode = "scale"
	TransformNone      TransformMode = "none"
)

// State is the shared mutable editor state, alive for the lifetime of the
// editor view. All fields are independently settable; there is no transition
// table. Reads and writes are atomic from the caller's perspective, so a
// reentrant handler never observes a half-applied mutation.
//
// An empty object id means no selection (or no hover).
type State struct {
	mu               sync.Mutex
	selectedObjectID string
	hoveredObjectID  string
	isAddingObject   bool
	outlinerOpen     bool
	inspectorOpen    bool
	transformMode    TransformMode
}

// StateSnapshot is a consistent copy of all state fields.
type StateSnapshot struct {
	SelectedObjectID string
	HoveredObjectID  string
	IsAddingObject   bool
	OutlinerOpen     bool
	InspectorOpen    bool
	TransformMode    TransformMode
}

// NewState creates editor state with both panels open and translate active.
func NewState() *State {
	return &State{
		outlinerOpen:  true,
		inspectorOpen: true,
		transformMode: TransformTranslate,
	}
}

// SetSelectedObject selects an object; empty clears the selection.
func (s *State) SetSelectedObject(id string) {
	s.mu.Lock()
	s.selectedObjectID = id
	s.mu.Unlock()
}

// SelectedObject returns the selected object id, empty for none.
func (s *State) SelectedObject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedObjectID
}

// SetHoveredObject marks an object hovered; empty clears the hover. Hover is
// independent of selection.
func (s *State) SetHoveredObject(id string) {
	s.mu.Lock()
	s.hoveredObjectID = id
	s.mu.Unlock()
}

// HoveredObject returns the hovered object id, empty for none.
func (s *State) HoveredObject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoveredObjectID
}

// SetAddingObject toggles the object-creation flow flag.
func (s *State) SetAddingObject(adding bool) {
	s.mu.Lock()
	s.isAddingObject = adding
	s.mu.Unlock()
}

// SetOutlinerOpen toggles the object list panel.
func (s *State) SetOutlinerOpen(open bool) {
	s.mu.Lock()
	s.outlinerOpen = open
	s.mu.Unlock()
}

// SetInspectorOpen toggles the property inspector panel.
func (s *State) SetInspectorOpen(open bool) {
	s.mu.Lock()
	s.inspectorOpen = open
	s.mu.Unlock()
}

// SetTransformMode switches the active manipulation tool.
func (s *State) SetTransformMode(mode TransformMode) {
	s.mu.Lock()
	s.transformMode = mode
	s.mu.Unlock()
}

// Mode returns the active manipulation tool.
func (s *State) Mode() TransformMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transformMode
}

// Snapshot returns a consistent copy of every field.
func (s *State) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateSnapshot{
		SelectedObjectID: s.selectedObjectID,
		HoveredObjectID:  s.hoveredObjectID,
		IsAddingObject:   s.isAddingObject,
		OutlinerOpen:     s.outlinerOpen,
		InspectorOpen:    s.inspectorOpen,
		TransformMode:    s.transformMode,
	}
}
