package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registry-service/internal/models"
)

func TestDesignerRefUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare id", `"d-1"`, "d-1"},
		{"expanded document", `{"$id":"d-2","fullName":"Ada Lovelace"}`, "d-2"},
		{"null", `null`, ""},
		{"unreadable", `42`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ref designerRef
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &ref))
			assert.Equal(t, tc.want, ref.ID)
		})
	}
}

func TestDecodeObjectDocument(t *testing.T) {
	raw := json.RawMessage(`{
		"$id": "o-1",
		"name": "Crate",
		"color": "#ff8800",
		"size": "large",
		"positionX": 1.5,
		"positionY": 0.5,
		"positionZ": -3.25,
		"designers": {"$id": "d-1"}
	}`)
	obj, err := decodeObjectDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, "o-1", obj.ID)
	assert.Equal(t, "d-1", obj.AttachedDesignerID)
	assert.Equal(t, models.NewPosition(1.5, 0.5, -3.25), obj.Position)
	assert.Equal(t, models.SizeLarge, obj.Size)
	assert.Equal(t, models.ShapeBox, obj.Shape, "missing shape defaults to box")
}

func TestDecodeDesignerDocumentDefaultsStatus(t *testing.T) {
	raw := json.RawMessage(`{"$id":"d-1","fullName":"Ada Lovelace","workingHours":"09:00-18:00"}`)
	d, err := decodeDesignerDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, d.Status)
	assert.Contains(t, d.AvatarURL, "d-1")
}

func TestCountAttachedObjects(t *testing.T) {
	docs := []json.RawMessage{
		json.RawMessage(`{"$id":"o-1","designers":"d-1"}`),
		json.RawMessage(`{"$id":"o-2","designers":{"$id":"d-1"}}`),
		json.RawMessage(`{"$id":"o-3","designers":"d-2"}`),
		json.RawMessage(`{"$id":"o-4","designers":null}`),
	}
	counts, err := countAttachedObjects(docs)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"d-1": 2, "d-2": 1}, counts)
}

func TestCountByDesigner(t *testing.T) {
	objects := []models.Object3D{
		{ID: "o-1", AttachedDesignerID: "d-1"},
		{ID: "o-2", AttachedDesignerID: "d-1"},
		{ID: "o-3", AttachedDesignerID: ""},
	}
	assert.Equal(t, map[string]int{"d-1": 2}, CountByDesigner(objects))
}
