package model

type SlotAvailability struct {
	TimeSlot
	Booked bool `json:"booked"`
}

type SpaceAvailability struct {
	SpaceID   string             `json:"space_id"`
	SpaceName string             `json:"space_name"`
	Date      string             `json:"date"`
	Slots     []SlotAvailability `json:"slots"`
}

func (a *SpaceAvailability) IsBooked(slotID string) bool {
	for _, s := range a.Slots {
		if s.ID == slotID {
			return s.Booked
		}
	}
	return false
}
