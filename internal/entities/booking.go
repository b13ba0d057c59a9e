package entities

import "time"

// BookOutcome classifies the result of a book operation. The store itself
// never mutates on an invalid transition; the outcome lets callers tell a
// confirmed booking apart from a silently ignored one.
type BookOutcome string

const (
	BookOK            BookOutcome = "ok"
	BookNotFound      BookOutcome = "not_found"
	BookAlreadyBooked BookOutcome = "already_booked"
)

// CancelOutcome classifies the result of a cancel operation.
type CancelOutcome string

const (
	CancelOK               CancelOutcome = "ok"
	CancelNotFound         CancelOutcome = "not_found"
	CancelAlreadyAvailable CancelOutcome = "already_available"
)

// BookRequest carries the fields of a booking attempt.
type BookRequest struct {
	SlotID        string    `json:"slot_id"`
	UserID        string    `json:"user_id"`
	BookedAt      time.Time `json:"booked_at"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
}

// BookingReceipt is returned for a confirmed booking.
type BookingReceipt struct {
	Code          string `json:"code"`
	SlotID        string `json:"slot_id"`
	UserID        string `json:"user_id"`
	BookedAt      string `json:"booked_at"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

// BookResult is the discriminated result of ReservationService.Book.
// Receipt is non-nil only when Outcome is BookOK.
type BookResult struct {
	Outcome BookOutcome     `json:"outcome"`
	Receipt *BookingReceipt `json:"receipt,omitempty"`
}

// CancelResult is the discriminated result of ReservationService.Cancel.
type CancelResult struct {
	Outcome CancelOutcome `json:"outcome"`
	SlotID  string        `json:"slot_id"`
}
