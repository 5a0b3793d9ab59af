package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidWorkingHours(t *testing.T) {
	valid := []string{
		"09:00-18:00",
		"00:00-24:00",
		"10:30-10:45",
		"23:59-24:00",
	}
	for _, s := range valid {
		assert.True(t, ValidWorkingHours(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"25:00-08:00",
		"09:00-18:60",
		"9:00-18:00",
		"09:00",
		"09:00-18:00-20:00",
		"invalid",
		"",
	}
	for _, s := range invalid {
		assert.False(t, ValidWorkingHours(s), "expected %q to be invalid", s)
	}
}

func TestNewDesigner(t *testing.T) {
	d, err := NewDesigner("d-1", "Ada Lovelace", "09:00-18:00")
	require.NoError(t, err)

	assert.Equal(t, "d-1", d.ID)
	assert.Equal(t, "Ada Lovelace", d.FullName)
	assert.Equal(t, 0, d.AttachedObjectsCount)
	assert.Equal(t, StatusActive, d.Status)
	assert.Contains(t, d.AvatarURL, "d-1")
}

func TestNewDesignerRejectsBadHours(t *testing.T) {
	_, err := NewDesigner("d-1", "Ada Lovelace", "25:00-08:00")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "workingHours", verr.Field)
	assert.Equal(t, "Working hours must be in format HH:mm-HH:mm", verr.Message)
}

func TestDesignerDraftValidate(t *testing.T) {
	draft := DesignerDraft{FullName: "Ada Lovelace", WorkingHours: "09:00-18:00"}
	require.NoError(t, draft.Validate())

	draft.Status = StatusInactive
	require.NoError(t, draft.Validate())

	draft.Status = "on-holiday"
	assert.Error(t, draft.Validate())

	assert.Error(t, DesignerDraft{WorkingHours: "09:00-18:00"}.Validate())
	assert.Error(t, DesignerDraft{FullName: "Ada", WorkingHours: "nine to five"}.Validate())
}
