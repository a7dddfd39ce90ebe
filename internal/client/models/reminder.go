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

// ReminderFilter is the value of the reminders listing's filter query.
type ReminderFilter string

const (
	ReminderFilterActive    ReminderFilter = "active"
	ReminderFilterCompleted ReminderFilter = "completed"
	ReminderFilterAll       ReminderFilter = "all"
)

// ParseReminderFilter reads a filter typed at the prompt. Unknown input
// lists everything, as the server does.
func ParseReminderFilter(s string) ReminderFilter {
	switch f := ReminderFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case ReminderFilterActive, ReminderFilterCompleted:
		return f
	default:
		return ReminderFilterAll
	}
}
