package repository

import (
	"sync"
	"time"

	"parkhive/internal/db"
	"parkhive/internal/entities"
)

// SlotRepository is the in-memory reservation store. It owns the fixed slot
// inventory, the local user's active-booking pointer and the advisory
// inactivity-warning timestamp. Invalid transitions never mutate state; the
// returned outcome tells the caller what happened.
//
// The store performs no timing logic of its own: the inactivity timestamp is
// written by the cancel-flow controller and swept by the janitor, which is
// also why the mutex is here even though the original flow is one user deep.
type SlotRepository struct {
	mu    sync.RWMutex
	slots []db.ParkingSlot
	index map[string]int

	activeBookingID     string
	inactivityWarningAt time.Time
}

// NewSlotRepository creates a store over the given inventory. The inventory
// is copied; slot ids are assumed unique (SeedInventory guarantees it).
func NewSlotRepository(inventory []db.ParkingSlot) *SlotRepository {
	r := &SlotRepository{}
	r.load(inventory)
	return r
}

func (r *SlotRepository) load(inventory []db.ParkingSlot) {
	r.slots = make([]db.ParkingSlot, len(inventory))
	copy(r.slots, inventory)
	r.index = make(map[string]int, len(inventory))
	for i := range r.slots {
		r.index[r.slots[i].ID] = i
	}
	r.activeBookingID = ""
	r.inactivityWarningAt = time.Time{}
}

// Reset reinitializes the store over a fresh inventory, clearing the active
// booking and any pending warning. Used on logout.
func (r *SlotRepository) Reset(inventory []db.ParkingSlot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.load(inventory)
}

// Book transitions an available slot to booked and points the active booking
// at it. Booking a missing or already-booked slot leaves the store untouched.
func (r *SlotRepository) Book(slotID, userID string, bookedAt time.Time, vehicleNumber string) entities.BookOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[slotID]
	if !ok {
		return entities.BookNotFound
	}
	slot := &r.slots[i]
	if slot.IsBooked() {
		return entities.BookAlreadyBooked
	}

	slot.Status = db.StatusBooked
	slot.BookedBy = userID
	slot.BookedAt = bookedAt.UTC().Format(time.RFC3339)
	if vehicleNumber != "" {
		slot.VehicleNumber = vehicleNumber
	}
	r.activeBookingID = slot.ID
	return entities.BookOK
}

// Cancel transitions a booked slot back to available, clearing its booking
// metadata, the active-booking pointer (when it references this slot) and
// any pending inactivity warning. Cancelling a missing or already-available
// slot leaves the store untouched, so a second cancel is a no-op.
func (r *SlotRepository) Cancel(slotID string) entities.CancelOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[slotID]
	if !ok {
		return entities.CancelNotFound
	}
	slot := &r.slots[i]
	if slot.Status == db.StatusAvailable {
		return entities.CancelAlreadyAvailable
	}

	slot.Status = db.StatusAvailable
	slot.BookedBy = ""
	slot.BookedAt = ""
	slot.VehicleNumber = ""
	if r.activeBookingID == slot.ID {
		r.activeBookingID = ""
	}
	r.inactivityWarningAt = time.Time{}
	return entities.CancelOK
}

// Get returns a copy of the slot with the given id.
func (r *SlotRepository) Get(slotID string) (db.ParkingSlot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[slotID]
	if !ok {
		return db.ParkingSlot{}, false
	}
	return r.slots[i], true
}

// Slots returns a copy of the full inventory in generation order.
func (r *SlotRepository) Slots() []db.ParkingSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]db.ParkingSlot, len(r.slots))
	copy(out, r.slots)
	return out
}

// BySection returns the slots of one section in generation order.
func (r *SlotRepository) BySection(section db.Section) []db.ParkingSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db.ParkingSlot
	for i := range r.slots {
		if r.slots[i].Section == section {
			out = append(out, r.slots[i])
		}
	}
	return out
}

// ByStatus returns the slots currently in the given status.
func (r *SlotRepository) ByStatus(status db.SlotStatus) []db.ParkingSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db.ParkingSlot
	for i := range r.slots {
		if r.slots[i].Status == status {
			out = append(out, r.slots[i])
		}
	}
	return out
}

// BookedBy returns all slots booked by the given user id.
func (r *SlotRepository) BookedBy(userID string) []db.ParkingSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db.ParkingSlot
	for i := range r.slots {
		if r.slots[i].IsBooked() && r.slots[i].BookedBy == userID {
			out = append(out, r.slots[i])
		}
	}
	return out
}

// SectionStats returns the aggregate counts for one section.
func (r *SlotRepository) SectionStats(section db.Section) entities.SectionStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := entities.SectionStats{Section: string(section)}
	for i := range r.slots {
		if r.slots[i].Section != section {
			continue
		}
		stats.Total++
		if r.slots[i].Status == db.StatusAvailable {
			stats.Available++
		} else {
			stats.Booked++
		}
	}
	return stats
}

// OverallStats returns the aggregate counts for the whole inventory.
func (r *SlotRepository) OverallStats() entities.SectionStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := entities.SectionStats{Total: len(r.slots)}
	for i := range r.slots {
		if r.slots[i].Status == db.StatusAvailable {
			stats.Available++
		} else {
			stats.Booked++
		}
	}
	return stats
}

// Sections returns the distinct section codes in generation order.
func (r *SlotRepository) Sections() []db.Section {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db.Section
	seen := make(map[db.Section]bool)
	for i := range r.slots {
		if !seen[r.slots[i].Section] {
			seen[r.slots[i].Section] = true
			out = append(out, r.slots[i].Section)
		}
	}
	return out
}

// ActiveBookingID returns the id of the slot the local user currently holds,
// if any.
func (r *SlotRepository) ActiveBookingID() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeBookingID, r.activeBookingID != ""
}

// SetInactivityWarning records that the cancel flow has gone idle. It never
// touches the slots or the active booking.
func (r *SlotRepository) SetInactivityWarning(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inactivityWarningAt = at
}

// ClearInactivityWarning removes a pending warning, if any.
func (r *SlotRepository) ClearInactivityWarning() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inactivityWarningAt = time.Time{}
}

// InactivityWarning returns the pending warning timestamp, if one is set.
func (r *SlotRepository) InactivityWarning() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inactivityWarningAt, !r.inactivityWarningAt.IsZero()
}
