package models

import (
	"strings"
	"time"
)

type ReminderType string

const (
	ReminderByDate    ReminderType = "date"
	ReminderByMileage ReminderType = "mileage"
)

type Reminder struct {
	ID          string       `json:"id"`
	VehicleID   string       `json:"vehicleId"`
	Title       string       `json:"title"`
	Type        ReminderType `json:"type"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	DueMileage  *int         `json:"dueMileage,omitempty"`
	IsCompleted bool         `json:"isCompleted"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// MissingDueField names the companion field the reminder's type requires
// but lacks, or returns "" when the reminder is consistent.
func (r *Reminder) MissingDueField() string {
	switch r.Type {
	case ReminderByDate:
		if r.DueDate == nil {
			return "dueDate"
		}
	case ReminderByMileage:
		if r.DueMileage == nil {
			return "dueMileage"
		}
	}
	return ""
}

// Complete marks the reminder done at now.
func (r *Reminder) Complete(now time.Time) {
	r.IsCompleted = true
	r.CompletedAt = &now
}

// Reopen clears the completion state.
func (r *Reminder) Reopen() {
	r.IsCompleted = false
	r.CompletedAt = nil
}

type ReminderPatch struct {
	Title       *string
	Type        *ReminderType
	DueDate     *time.Time
	DueMileage  *int
	IsCompleted *bool
	Notes       *string
}

// Apply merges the patch. Completing through a patch keeps an existing
// completedAt; reopening clears it.
func (p ReminderPatch) Apply(r *Reminder, now time.Time) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.DueDate != nil {
		r.DueDate = p.DueDate
	}
	if p.DueMileage != nil {
		r.DueMileage = p.DueMileage
	}
	if p.Notes != nil {
		r.Notes = p.Notes
	}
	if p.IsCompleted != nil {
		switch {
		case *p.IsCompleted && r.CompletedAt == nil:
			r.Complete(now)
		case *p.IsCompleted:
			r.IsCompleted = true
		default:
			r.Reopen()
		}
	}
}

type ReminderFilter string

const (
	ReminderFilterActive    ReminderFilter = "active"
	ReminderFilterCompleted ReminderFilter = "completed"
	ReminderFilterAll       ReminderFilter = "all"
)

// ParseReminderFilter maps a query value to a filter; anything unknown
// means all.
func ParseReminderFilter(s string) ReminderFilter {
	switch ReminderFilter(strings.ToLower(strings.TrimSpace(s))) {
	case ReminderFilterActive:
		return ReminderFilterActive
	case ReminderFilterCompleted:
		return ReminderFilterCompleted
	default:
		return ReminderFilterAll
	}
}
