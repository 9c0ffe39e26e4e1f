package appointment

import (
	"agenda/datetime"
	"agenda/errs"
	"strings"
)

var (
	ErrEmptyTitle      = errs.Errorf(errs.EINVALID, "appointment: title is required")
	ErrInvalidDate     = errs.Errorf(errs.EINVALID, "appointment: date must be a valid dd/mm/yyyy date")
	ErrInvalidTime     = errs.Errorf(errs.EINVALID, "appointment: time must be a valid hh:mm time")
	ErrInvalidPriority = errs.Errorf(errs.EINVALID, "appointment: priority must be one of high, medium, low")
	ErrNotFound        = errs.Errorf(errs.ENOTFOUND, "appointment: not found")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is assigned to appointments created without a priority.
const DefaultPriority = PriorityLow

// ParsePriority accepts any casing; an empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPriority, nil
	}
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Appointment is a dated entry in the agenda. Duration is in minutes and is
// not range checked.
type Appointment struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	Duration    int32    `json:"duration"`
}

// Normalize fills in defaults for unset optional fields.
func (a Appointment) Normalize() Appointment {
	if a.Priority == "" {
		a.Priority = DefaultPriority
	}
	return a
}

func (a Appointment) Validate() error {
	if a.Title == "" {
		return ErrEmptyTitle
	}

	if !datetime.ValidDate(a.Date) {
		return ErrInvalidDate
	}

	if !datetime.ValidTime(a.Time) {
		return ErrInvalidTime
	}

	if !a.Priority.Valid() {
		return ErrInvalidPriority
	}

	return nil
}
