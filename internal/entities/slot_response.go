package entities

import "parkhive/internal/db"

// SlotResponse mirrors a parking slot for rendering. The booking metadata
// fields are omitted when the slot is available.
type SlotResponse struct {
	ID            string `json:"id"`
	Section       string `json:"section"`
	Status        string `json:"status"`
	BookedBy      string `json:"booked_by,omitempty"`
	BookedAt      string `json:"booked_at,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

// NewSlotResponse copies a stored slot into its rendering shape.
func NewSlotResponse(slot db.ParkingSlot) SlotResponse {
	return SlotResponse{
		ID:            slot.ID,
		Section:       string(slot.Section),
		Status:        string(slot.Status),
		BookedBy:      slot.BookedBy,
		BookedAt:      slot.BookedAt,
		VehicleNumber: slot.VehicleNumber,
	}
}

// Booked reports whether the rendered slot holds a booking.
func (r SlotResponse) Booked() bool {
	return r.Status == string(db.StatusBooked)
}

// SectionStats is the aggregate count card for one section (or the whole
// inventory, with Section left empty). Available + Booked always equals Total.
type SectionStats struct {
	Section   string `json:"section,omitempty"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
}
