package model

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type SpaceType string

const (
	SpaceTypeSportsField SpaceType = "sports-field"
	SpaceTypeWorkspace   SpaceType = "workspace"
)

// TimeSlot is a recurring window on a space, independent of any calendar date.
// Whether it is booked on a given day is derived from reservations, never stored here.
type TimeSlot struct {
	ID        string `json:"id" bson:"id" yaml:"id" validate:"required,min=1,max=64"`
	StartTime string `json:"start_time" bson:"start_time" yaml:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" bson:"end_time" yaml:"end_time" validate:"required,clock_time"`
}

type Space struct {
	ID         string     `json:"id" bson:"_id" yaml:"id" validate:"required,min=1,max=64"`
	Name       string     `json:"name" bson:"name" yaml:"name" validate:"required,min=2,max=100"`
	Type       SpaceType  `json:"type" bson:"type" yaml:"type" validate:"required,oneof=sports-field workspace"`
	Category   string     `json:"category" bson:"category" yaml:"category" validate:"required,min=2,max=50"`
	Capacity   int        `json:"capacity" bson:"capacity" yaml:"capacity" validate:"required,min=1,max=10000"`
	HourlyRate float64    `json:"hourly_rate" bson:"hourly_rate" yaml:"hourly_rate" validate:"gte=0"`
	Slots      []TimeSlot `json:"slots" bson:"slots" yaml:"slots" validate:"required,min=1,max=96,dive"`
}

func (s *Space) Slot(slotID string) (TimeSlot, bool) {
	for _, slot := range s.Slots {
		if slot.ID == slotID {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// Bounds returns the absolute start and end of the slot on the given day.
func (t TimeSlot) Bounds(day time.Time) (time.Time, time.Time, error) {
	start, err := clockOn(day, t.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := clockOn(day, t.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func clockOn(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// ParseDate parses a YYYY-MM-DD calendar day at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, date, loc)
}
