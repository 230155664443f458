package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TimeUnit is the unit of a notification's reminder offset.
type TimeUnit string

// Possible time unit values.
const (
	TimeUnitMinute TimeUnit = "MINUTE"
	TimeUnitHour   TimeUnit = "HOUR"
)

// Common validation errors for Notification.
var (
	ErrEmptyNotificationID       = errors.New("notification ID cannot be empty")
	ErrNonPositiveTimeValue      = errors.New("notification time value must be positive")
	ErrZeroScheduledTime         = errors.New("notification scheduled time cannot be zero")
)

// Notification describes a reminder for a task: fire TimeValue TimeUnits
// before the task's start date. It is owned by its Task and has no
// independent lifecycle; it is created, replaced, and deleted only as part
// of a task update.
//
// ScheduledTime is computed once, at creation or replacement time, and is
// always UTC. Sent transitions false to true at most once; the scheduler
// relies on ScheduledTime and Sent alone.
type Notification struct {
	ID            uuid.UUID `json:"id"`
	TimeUnit      TimeUnit  `json:"time_unit"`
	TimeValue     int       `json:"time_value"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Sent          bool      `json:"sent"`
}

// NewNotification creates a Notification whose scheduled time is the
// task start date minus the given offset. Returns an error if the unit
// is unknown or the value is not positive.
func NewNotification(unit TimeUnit, value int, startDate time.Time) (*Notification, error) {
	offset, err := Offset(unit, value)
	if err != nil {
		return nil, err
	}

	return &Notification{
		ID:            uuid.New(),
		TimeUnit:      unit,
		TimeValue:     value,
		ScheduledTime: startDate.UTC().Add(-offset),
		Sent:          false,
	}, nil
}

// Offset converts a unit/value pair into a duration.
func Offset(unit TimeUnit, value int) (time.Duration, error) {
	if value <= 0 {
		return 0, ErrNonPositiveTimeValue
	}

	switch unit {
	case TimeUnitMinute:
		return time.Duration(value) * time.Minute, nil
	case TimeUnitHour:
		return time.Duration(value) * time.Hour, nil
	default:
		return 0, ErrInvalidTimeUnit
	}
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}

	if _, err := Offset(n.TimeUnit, n.TimeValue); err != nil {
		return err
	}

	if n.ScheduledTime.IsZero() {
		return ErrZeroScheduledTime
	}

	return nil
}
