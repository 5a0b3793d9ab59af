package models

import "regexp"

// ObjectSize is the nominal size class of a placed object.
type ObjectSize string

const (
	SizeSmall  ObjectSize = "small"
	SizeNormal ObjectSize = "normal"
	SizeLarge  ObjectSize = "large"
)

// Scale maps a size class to the mesh scale the viewport renders with.
func (s ObjectSize) Scale() float64 {
	switch s {
	case SizeSmall:
		return 0.5
	case SizeLarge:
		return 2
	default:
		return 1
	}
}

// ObjectShape selects the geometry of a placed object.
type ObjectShape string

const (
	ShapeBox      ObjectShape = "box"
	ShapeSphere   ObjectShape = "sphere"
	ShapeCylinder ObjectShape = "cylinder"
	ShapeTorus    ObjectShape = "torus"
	ShapeHeart    ObjectShape = "heart"
)

var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidColor reports whether s is a #RRGGBB or #RGB hex color.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Object3D is a named 3D asset placed in the shared scene. Every object
// belongs to exactly one designer; the reference may dangle after that
// designer is deleted, which reads tolerate.
type Object3D struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	AttachedDesignerID string      `json:"attachedDesignerId"`
	Color              string      `json:"color"`
	Position           Position    `json:"position"`
	Size               ObjectSize  `json:"size"`
	Shape              ObjectShape `json:"shape"`
}

// ObjectDraft carries the caller-settable fields for creating an object. The
// position comes from the viewport gesture that opened the creation flow, not
// from the form.
type ObjectDraft struct {
	Name               string
	AttachedDesignerID string
	Color              string
	Position           Position
	Size               ObjectSize
	Shape              ObjectShape
}

func validSize(s ObjectSize) bool {
	return s == SizeSmall || s == SizeNormal || s == SizeLarge
}

func validShape(s ObjectShape) bool {
	switch s {
	case ShapeBox, ShapeSphere, ShapeCylinder, ShapeTorus, ShapeHeart:
		return true
	}
	return false
}

// Validate checks the draft. A missing shape is allowed and defaults to box.
func (d ObjectDraft) Validate() error {
	if d.Name == "" {
		return newValidationError("name", "Name is required")
	}
	if d.AttachedDesignerID == "" {
		return newValidationError("attachedDesignerId", "Designer selection is required")
	}
	if !ValidColor(d.Color) {
		return newValidationError("color", "Invalid color hex")
	}
	if !validSize(d.Size) {
		return newValidationError("size", "Size must be small, normal or large")
	}
	if d.Shape != "" && !validShape(d.Shape) {
		return newValidationError("shape", "Unknown shape")
	}
	return nil
}

// Object3DPatch is a partial update. A nil field leaves the stored value
// untouched; the id is not patchable.
type Object3DPatch struct {
	Name               *string
	AttachedDesignerID *string
	Color              *string
	Position           *Position
	Size               *ObjectSize
	Shape              *ObjectShape
}
