package model

import (
	"testing"
	"time"
)

func TestReservation_EffectiveStatus(t *testing.T) {
	loc := time.UTC
	r := Reservation{Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00", Status: StatusUpcoming}

	tests := []struct {
		name string
		now  time.Time
		want ReservationStatus
	}{
		{name: "before start", now: time.Date(2025, 6, 1, 8, 0, 0, 0, loc), want: StatusUpcoming},
		{name: "during slot", now: time.Date(2025, 6, 1, 9, 30, 0, 0, loc), want: StatusUpcoming},
		{name: "exactly at end", now: time.Date(2025, 6, 1, 10, 0, 0, 0, loc), want: StatusUpcoming},
		{name: "after end", now: time.Date(2025, 6, 1, 10, 1, 0, 0, loc), want: StatusCompleted},
		{name: "next day", now: time.Date(2025, 6, 2, 0, 0, 0, 0, loc), want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.EffectiveStatus(tt.now, loc); got != tt.want {
				t.Errorf("EffectiveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReservation_EffectiveStatus_UnreadableSlotStaysUpcoming(t *testing.T) {
	r := Reservation{Date: "2025-06-01", StartTime: "9am", EndTime: "10:00", Status: StatusUpcoming}
	later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if got := r.EffectiveStatus(later, time.UTC); got != StatusUpcoming {
		t.Errorf("EffectiveStatus() = %s, want upcoming for an unreadable slot", got)
	}
}

func TestReservation_EffectiveStatus_CancelledStays(t *testing.T) {
	r := Reservation{Date: "2020-01-01", EndTime: "10:00", Status: StatusCancelled}
	if got := r.EffectiveStatus(time.Now(), time.UTC); got != StatusCancelled {
		t.Errorf("EffectiveStatus() = %s, want cancelled", got)
	}
}

func TestSpace_Slot(t *testing.T) {
	s := Space{ID: "S1", Slots: []TimeSlot{
		{ID: "morning", StartTime: "09:00", EndTime: "10:00"},
		{ID: "evening", StartTime: "18:00", EndTime: "19:00"},
	}}

	slot, ok := s.Slot("evening")
	if !ok || slot.StartTime != "18:00" {
		t.Errorf("Slot(evening) = %+v, %v", slot, ok)
	}
	if _, ok := s.Slot("night"); ok {
		t.Error("Slot(night) should not resolve")
	}
}

func TestTimeSlot_Bounds(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day, err := ParseDate("2025-06-01", loc)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}

	start, end, err := TimeSlot{StartTime: "18:00", EndTime: "19:30"}.Bounds(day)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if start.Hour() != 18 || end.Hour() != 19 || end.Minute() != 30 {
		t.Errorf("Bounds() = %v - %v", start, end)
	}
	if start.Location() != loc {
		t.Errorf("Bounds() location = %v, want %v", start.Location(), loc)
	}

	if _, _, err := (TimeSlot{StartTime: "25:00", EndTime: "26:00"}).Bounds(day); err == nil {
		t.Error("Bounds() should reject an invalid clock time")
	}
}

func TestSlotKey_String(t *testing.T) {
	r := Reservation{SpaceID: "S1", Date: "2025-06-01", SlotID: "morning"}
	if got := r.Key().String(); got != "S1/2025-06-01/morning" {
		t.Errorf("Key().String() = %q", got)
	}
}
