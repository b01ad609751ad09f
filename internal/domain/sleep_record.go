package domain

import (
	"regexp"
	"time"
)

// DateLayout is the calendar date format used for SleepRecord.Date.
const DateLayout = "2006-01-02"

// DatePattern is the accepted shape of SleepRecord.Date.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	MinHours = 0.0
	MaxHours = 24.0
	// MaxNoteLength is counted in characters, not bytes.
	MaxNoteLength = 500
)

// SleepRecord is a single night's sleep entry.
// @Description Sleep record with date, duration and optional note.
type SleepRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id" example:"1"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_sleep_records_date,sort:desc" json:"date" example:"2024-01-15"`
	Hours     float64   `gorm:"not null" json:"hours" example:"7.5"`
	Note      *string   `gorm:"type:text" json:"note" example:"잘 잤음"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-16T07:05:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-16T07:05:00Z"`
}

func (SleepRecord) TableName() string {
	return "sleep_records"
}

// Weekday returns the calendar weekday of the record's date.
func (r *SleepRecord) Weekday() (time.Weekday, bool) {
	d, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return 0, false
	}
	return d.Weekday(), true
}

// CreateSleepRecordRequest is the request body for creating a sleep record.
// @Description Request payload for recording a night of sleep.
type CreateSleepRecordRequest struct {
	// Calendar date in YYYY-MM-DD format
	Date string `json:"date" validate:"required,datefmt" example:"2024-01-15"`
	// Hours slept, between 0 and 24
	Hours *float64 `json:"hours" validate:"required,min=0,max=24" example:"7.5" minimum:"0" maximum:"24"`
	// Optional free-text note (max 500 chars)
	Note *string `json:"note,omitempty" validate:"omitempty,max=500" example:"잘 잤음"`
}

// UpdateSleepRecordRequest is the request body for a partial update.
// Fields left out of the body keep their stored value.
// @Description Partial update payload; every field is optional.
type UpdateSleepRecordRequest struct {
	// A present but empty date is validated; only an absent one is skipped.
	Date  *string  `json:"date,omitempty" validate:"omitnil,datefmt" example:"2024-01-15"`
	Hours *float64 `json:"hours,omitempty" validate:"omitempty,min=0,max=24" example:"8" minimum:"0" maximum:"24"`
	Note  *string  `json:"note,omitempty" validate:"omitempty,max=500" example:"늦게 잠"`
}
