package validator

import (
	"errors"
	"strings"
	"testing"

	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

func validSpace() *model.Space {
	return &model.Space{
		ID:         "S1",
		Name:       "Riverside Football Field",
		Type:       model.SpaceTypeSportsField,
		Category:   "football",
		Capacity:   22,
		HourlyRate: 40,
		Slots: []model.TimeSlot{
			{ID: "morning", StartTime: "09:00", EndTime: "10:00"},
			{ID: "evening", StartTime: "18:00", EndTime: "19:00"},
		},
	}
}

func TestSpaceValidator_Validate(t *testing.T) {
	v := NewSpaceValidator(logger.Discard())

	tests := []struct {
		name    string
		mutate  func(s *model.Space)
		wantErr string
	}{
		{name: "valid", mutate: func(s *model.Space) {}},
		{name: "missing id", mutate: func(s *model.Space) { s.ID = "" }, wantErr: "ID is required"},
		{name: "unknown type", mutate: func(s *model.Space) { s.Type = "pool" }, wantErr: "must be one of"},
		{name: "zero capacity", mutate: func(s *model.Space) { s.Capacity = 0 }, wantErr: "Capacity is required"},
		{name: "negative rate", mutate: func(s *model.Space) { s.HourlyRate = -1 }, wantErr: "greater than or equal"},
		{name: "no slots", mutate: func(s *model.Space) { s.Slots = nil }, wantErr: "Slots is required"},
		{
			name:    "bad clock",
			mutate:  func(s *model.Space) { s.Slots[0].StartTime = "9am" },
			wantErr: "HH:MM",
		},
		{
			name:    "end before start",
			mutate:  func(s *model.Space) { s.Slots[1].EndTime = "17:00" },
			wantErr: "end_time must be after start_time",
		},
		{
			name:    "zero length slot",
			mutate:  func(s *model.Space) { s.Slots[0].EndTime = "09:00" },
			wantErr: "end_time must be after start_time",
		},
		{
			name:    "duplicate slot id",
			mutate:  func(s *model.Space) { s.Slots[1].ID = "morning" },
			wantErr: "duplicate slot id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := validSpace()
			tt.mutate(space)

			err := v.Validate(space)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
