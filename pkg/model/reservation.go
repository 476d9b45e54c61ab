package model

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	StatusUpcoming  ReservationStatus = "upcoming"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID            string            `json:"id" bson:"_id"`
	UserID        string            `json:"user_id" bson:"user_id"`
	SpaceID       string            `json:"space_id" bson:"space_id"`
	SpaceName     string            `json:"space_name" bson:"space_name"`
	SpaceCategory string            `json:"space_category" bson:"space_category"`
	Date          string            `json:"date" bson:"date"`
	SlotID        string            `json:"slot_id" bson:"slot_id"`
	StartTime     string            `json:"start_time" bson:"start_time"`
	EndTime       string            `json:"end_time" bson:"end_time"`
	Status        ReservationStatus `json:"status" bson:"status"`
	BookedAt      time.Time         `json:"booked_at" bson:"booked_at"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// SlotKey identifies one slot template on one calendar day of one space.
type SlotKey struct {
	SpaceID string
	Date    string
	SlotID  string
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.SpaceID, k.Date, k.SlotID)
}

func (r *Reservation) Key() SlotKey {
	return SlotKey{SpaceID: r.SpaceID, Date: r.Date, SlotID: r.SlotID}
}

// EffectiveStatus reports completed for an upcoming reservation whose end has passed.
// The stored status is left untouched.
func (r *Reservation) EffectiveStatus(now time.Time, loc *time.Location) ReservationStatus {
	if r.Status != StatusUpcoming {
		return r.Status
	}
	day, err := ParseDate(r.Date, loc)
	if err != nil {
		return r.Status
	}
	_, end, err := TimeSlot{StartTime: r.StartTime, EndTime: r.EndTime}.Bounds(day)
	if err != nil {
		return r.Status
	}
	if end.Before(now) {
		return StatusCompleted
	}
	return r.Status
}

// BookRequest is one attempt to reserve a slot on a date. Space and slot ids carry no
// shape rules: whatever the catalog does not know is SpaceNotFound or SlotNotFound.
type BookRequest struct {
	SpaceID   string `json:"space_id"`
	Date      string `json:"date" validate:"required,calendar_date"`
	SlotID    string `json:"slot_id"`
	Requester string `json:"-" validate:"required,max=128"`
}
