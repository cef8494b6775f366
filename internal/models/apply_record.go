package models

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ApplyTrigger identifies what caused a theme switch.
type ApplyTrigger string

const (
	// TriggerManual is a user-initiated apply (CLI or UI).
	TriggerManual ApplyTrigger = "manual"
	// TriggerScheduled is an apply initiated by the auto-switch scheduler.
	TriggerScheduled ApplyTrigger = "scheduled"
	// TriggerAPI is an apply initiated through the control API.
	TriggerAPI ApplyTrigger = "api"
)

// ApplyRecord is one row of the theme application history.
type ApplyRecord struct {
	// ID is a ULID, sortable by creation time.
	ID string `json:"id" gorm:"primaryKey;size:26"`

	// ThemeID is the store id of the applied theme.
	ThemeID string `json:"theme_id" gorm:"index;not null"`

	// ThemeName is the display name at the time of the apply.
	ThemeName string `json:"theme_name" gorm:"not null"`

	// Trigger records what initiated the switch.
	Trigger ApplyTrigger `json:"trigger" gorm:"size:16;not null"`

	// AppliedAt is when the switch committed.
	AppliedAt time.Time `json:"applied_at" gorm:"index;not null"`
}

// TableName implements the gorm table naming convention.
func (ApplyRecord) TableName() string {
	return "apply_records"
}

// BeforeCreate assigns a ULID id when none is set.
func (r *ApplyRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	}
	return nil
}
