package catalog

import (
	"errors"
	"testing"

	catalogerrors "spacebook/internal/catalog/errors"
	"spacebook/internal/catalog/validator"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

func testSpaces() []model.Space {
	return []model.Space{
		{
			ID:       "S2",
			Name:     "  Hot   Desk Area ",
			Type:     model.SpaceTypeWorkspace,
			Category: " Coworking ",
			Capacity: 20,
			Slots: []model.TimeSlot{
				{ID: "am", StartTime: "08:00", EndTime: "12:00"},
			},
		},
		{
			ID:         "S1",
			Name:       "Central Court",
			Type:       model.SpaceTypeSportsField,
			Category:   "tennis",
			Capacity:   4,
			HourlyRate: 25,
			Slots: []model.TimeSlot{
				{ID: "morning", StartTime: "09:00", EndTime: "10:00"},
				{ID: "evening", StartTime: "18:00", EndTime: "19:00"},
			},
		},
	}
}

func newTestCatalog(t *testing.T) Catalog {
	t.Helper()
	c, err := New(testSpaces(), validator.NewSpaceValidator(logger.Discard()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestCatalog_GetSpace(t *testing.T) {
	c := newTestCatalog(t)

	space, err := c.GetSpace("S2")
	if err != nil {
		t.Fatalf("GetSpace() error = %v", err)
	}
	if space.Name != "Hot Desk Area" {
		t.Errorf("Name = %q, want normalized name", space.Name)
	}
	if space.Category != "coworking" {
		t.Errorf("Category = %q, want coworking", space.Category)
	}

	if _, err := c.GetSpace("S9"); !errors.Is(err, catalogerrors.ErrSpaceNotFound) {
		t.Errorf("GetSpace(S9) error = %v, want ErrSpaceNotFound", err)
	}
}

func TestCatalog_GetSpaceReturnsCopy(t *testing.T) {
	c := newTestCatalog(t)

	space, _ := c.GetSpace("S1")
	space.Slots[0].ID = "mutated"

	again, _ := c.GetSpace("S1")
	if again.Slots[0].ID != "morning" {
		t.Errorf("catalog was mutated through a returned space: %+v", again.Slots)
	}
}

func TestCatalog_GetSlot(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name    string
		spaceID string
		slotID  string
		wantErr error
		want    string
	}{
		{name: "known slot", spaceID: "S1", slotID: "evening", want: "18:00"},
		{name: "unknown slot", spaceID: "S1", slotID: "night", wantErr: catalogerrors.ErrSlotNotFound},
		{name: "unknown space", spaceID: "S9", slotID: "morning", wantErr: catalogerrors.ErrSpaceNotFound},
		{name: "slot of another space", spaceID: "S2", slotID: "morning", wantErr: catalogerrors.ErrSlotNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := c.GetSlot(tt.spaceID, tt.slotID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetSlot() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetSlot() error = %v", err)
			}
			if slot.StartTime != tt.want {
				t.Errorf("StartTime = %s, want %s", slot.StartTime, tt.want)
			}
		})
	}
}

func TestCatalog_ListSpacesSortedByID(t *testing.T) {
	c := newTestCatalog(t)

	spaces := c.ListSpaces()
	if len(spaces) != 2 {
		t.Fatalf("ListSpaces() returned %d spaces, want 2", len(spaces))
	}
	if spaces[0].ID != "S1" || spaces[1].ID != "S2" {
		t.Errorf("ListSpaces() order = %s, %s", spaces[0].ID, spaces[1].ID)
	}
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	v := validator.NewSpaceValidator(logger.Discard())

	dup := testSpaces()
	dup[0].ID = "S1"
	if _, err := New(dup, v); !errors.Is(err, catalogerrors.ErrInvalidCatalog) {
		t.Errorf("New() with duplicate ids error = %v, want ErrInvalidCatalog", err)
	}

	noSlots := testSpaces()
	noSlots[1].Slots = nil
	if _, err := New(noSlots, v); !errors.Is(err, catalogerrors.ErrInvalidCatalog) {
		t.Errorf("New() with slotless space error = %v, want ErrInvalidCatalog", err)
	}
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
spaces:
  - id: S1
    name: Central Court
    type: sports-field
    category: tennis
    capacity: 4
    hourly_rate: 25
    slots:
      - id: morning
        start_time: "09:00"
        end_time: "10:00"
      - id: evening
        start_time: "18:00"
        end_time: "19:00"
`)

	spaces, err := ParseYAML(doc)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(spaces) != 1 || len(spaces[0].Slots) != 2 {
		t.Fatalf("ParseYAML() = %+v", spaces)
	}
	if spaces[0].Type != model.SpaceTypeSportsField || spaces[0].Slots[1].EndTime != "19:00" {
		t.Errorf("ParseYAML() decoded %+v", spaces[0])
	}

	if _, err := ParseYAML([]byte("spaces: [")); err == nil {
		t.Error("ParseYAML() should fail on malformed yaml")
	}
}
