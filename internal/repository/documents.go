package repository

import (
	"encoding/json"

	"github.com/pkg/errors"

	"registry-service/internal/models"
)

// Wire shapes of the hosted backend's two collections. The backend prefixes
// its system fields with $ and stores the object position flattened into three
// scalar attributes.

type designerDocument struct {
	ID           string `json:"$id"`
	FullName     string `json:"fullName"`
	WorkingHours string `json:"workingHours"`
	Status       string `json:"status"`
}

type objectDocument struct {
	ID        string      `json:"$id"`
	Name      string      `json:"name"`
	Color     string      `json:"color"`
	Size      string      `json:"size"`
	Shape     string      `json:"shape"`
	PositionX float64     `json:"positionX"`
	PositionY float64     `json:"positionY"`
	PositionZ float64     `json:"positionZ"`
	Designers designerRef `json:"designers"`
}

// designerRef is the backend's relation field. Depending on whether the
// backend expanded the relation it arrives either as a bare id string or as a
// full designer document; both normalize to a plain id here and the raw form
// never leaves the repository. Anything unreadable defaults to an empty id
// rather than failing the read.
type designerRef struct {
	ID string
}

func (r *designerRef) UnmarshalJSON(b []byte) error {
	r.ID = ""
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		return nil
	}
	var expanded struct {
		ID string `json:"$id"`
	}
	if err := json.Unmarshal(b, &expanded); err == nil {
		r.ID = expanded.ID
	}
	return nil
}

func (d designerDocument) toDomain() models.Designer {
	status := models.DesignerStatus(d.Status)
	if status == "" {
		// Older documents predate the status attribute.
		status = models.StatusActive
	}
	return models.Designer{
		ID:           d.ID,
		FullName:     d.FullName,
		WorkingHours: d.WorkingHours,
		Status:       status,
		AvatarURL:    models.AvatarURL(d.ID),
	}
}

func (d objectDocument) toDomain() models.Object3D {
	shape := models.ObjectShape(d.Shape)
	if shape == "" {
		shape = models.ShapeBox
	}
	return models.Object3D{
		ID:                 d.ID,
		Name:               d.Name,
		AttachedDesignerID: d.Designers.ID,
		Color:              d.Color,
		Position:           models.NewPosition(d.PositionX, d.PositionY, d.PositionZ),
		Size:               models.ObjectSize(d.Size),
		Shape:              shape,
	}
}

func decodeDesignerDocument(raw json.RawMessage) (models.Designer, error) {
	var doc designerDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Designer{}, errors.Wrap(err, "could not decode designer document")
	}
	return doc.toDomain(), nil
}

func decodeObjectDocument(raw json.RawMessage) (models.Object3D, error) {
	var doc objectDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Object3D{}, errors.Wrap(err, "could not decode object document")
	}
	return doc.toDomain(), nil
}

// countAttachedObjects builds the designer-id to object-count mapping from raw
// object documents, normalizing each designer reference first. Objects with an
// unresolvable reference count toward no designer.
func countAttachedObjects(docs []json.RawMessage) (map[string]int, error) {
	counts := make(map[string]int)
	for _, raw := range docs {
		var doc objectDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "could not decode object document")
		}
		if doc.Designers.ID != "" {
			counts[doc.Designers.ID]++
		}
	}
	return counts, nil
}

// CountByDesigner derives the attached-object count per designer id from a
// set of domain objects. Both backends use it so the count invariant holds for
// every GetAll read regardless of backend.
func CountByDesigner(objects []models.Object3D) map[string]int {
	counts := make(map[string]int)
	for _, o := range objects {
		if o.AttachedDesignerID != "" {
			counts[o.AttachedDesignerID]++
		}
	}
	return counts
}
