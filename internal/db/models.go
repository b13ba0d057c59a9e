package db

import "time"

// Section is one of the fixed parking sections of the garage.
type Section string

const (
	SectionUpper    Section = "US"
	SectionLower    Section = "LS"
	SectionBasement Section = "B3"
)

// SlotStatus is the booking state of a single slot.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
)

// ParkingSlot is a single addressable parking space. BookedBy, BookedAt and
// VehicleNumber are empty strings whenever Status is StatusAvailable;
// BookedBy and BookedAt are always set together when Status is StatusBooked.
// BookedAt is an RFC 3339 timestamp string.
type ParkingSlot struct {
	ID            string
	Section       Section
	Status        SlotStatus
	BookedBy      string
	BookedAt      string
	VehicleNumber string
}

// IsBooked reports whether the slot currently holds a reservation.
func (s *ParkingSlot) IsBooked() bool {
	return s.Status == StatusBooked
}

// Account is a locally registered employee credential. PasswordHash is a
// bcrypt hash; nothing is ever verified against an external service.
type Account struct {
	EmployeeID   string
	PasswordHash string
	CreatedAt    time.Time
}

// UserProfile holds the profile fields of the signed-in employee.
// All fields except CustomerID start empty and are filled via profile update.
type UserProfile struct {
	CustomerID string
	Name       string
	Email      string
	Phone      string
}

// Session is an issued sign-in session.
type Session struct {
	ID         string
	CustomerID string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}
