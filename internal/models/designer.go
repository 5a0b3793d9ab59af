package models

import (
	"fmt"
	"regexp"
)

// DesignerStatus is the activity state of a designer.
type DesignerStatus string

const (
	StatusActive   DesignerStatus = "active"
	StatusInactive DesignerStatus = "inactive"
)

// workingHoursPattern accepts HH:mm-HH:mm with hours 00-24 and minutes 00-59.
var workingHoursPattern = regexp.MustCompile(`^([01]\d|2[0-4]):([0-5]\d)-([01]\d|2[0-4]):([0-5]\d)$`)

// Designer is a team member with a working-hours window.
//
// AttachedObjectsCount is derived from the objects collection on every read.
// The stored designer record never holds the authoritative count; whatever the
// backend keeps there is treated as stale and overwritten by the aggregation.
type Designer struct {
	ID                   string         `json:"id"`
	FullName             string         `json:"fullName"`
	WorkingHours         string         `json:"workingHours"`
	AttachedObjectsCount int            `json:"attachedObjectsCount"`
	Status               DesignerStatus `json:"status"`
	AvatarURL            string         `json:"avatarUrl"`
}

// NewDesigner validates the working hours and builds a designer with zero
// attached objects, active status and an avatar derived from the id. It has no
// side effects; storage is the caller's concern.
func NewDesigner(id, fullName, workingHours string) (*Designer, error) {
	if !ValidWorkingHours(workingHours) {
		return nil, newValidationError("workingHours", "Working hours must be in format HH:mm-HH:mm")
	}
	return &Designer{
		ID:           id,
		FullName:     fullName,
		WorkingHours: workingHours,
		Status:       StatusActive,
		AvatarURL:    AvatarURL(id),
	}, nil
}

// ValidWorkingHours reports whether s matches the HH:mm-HH:mm window format.
func ValidWorkingHours(s string) bool {
	return workingHoursPattern.MatchString(s)
}

// AvatarURL derives the default avatar for a designer id.
func AvatarURL(id string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id)
}

// DesignerDraft carries the caller-settable fields for creating a designer.
// The id and the attached-objects count are store-assigned and derived,
// respectively, and can never be supplied.
type DesignerDraft struct {
	FullName     string
	WorkingHours string
	Status       DesignerStatus
}

// Validate checks the draft. Status defaults to active when left empty.
func (d DesignerDraft) Validate() error {
	if d.FullName == "" {
		return newValidationError("fullName", "Full name is required")
	}
	if !ValidWorkingHours(d.WorkingHours) {
		return newValidationError("workingHours", "Working hours must be in format HH:mm-HH:mm")
	}
	if d.Status != "" && d.Status != StatusActive && d.Status != StatusInactive {
		return newValidationError("status", "Status must be active or inactive")
	}
	return nil
}

// DesignerPatch is a partial update. A nil field leaves the stored value
// untouched; the id and count are not patchable.
type DesignerPatch struct {
	FullName     *string
	WorkingHours *string
	Status       *DesignerStatus
}
