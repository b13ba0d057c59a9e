package repository

import (
	"fmt"
	"time"

	"parkhive/internal/config"
	"parkhive/internal/db"
)

// Booked-by marker for the demo bookings that pad out the seed inventory.
// The simulated local user never owns these.
const seedBookedBy = "occupied"

// SeedInventory generates the fixed slot inventory: sections in configured
// order, ids numbered per section ("US-01", "US-02", ...), the first
// SeedAvailable slots in generation order available and the rest booked as
// demo occupancy. The inventory never grows or shrinks afterwards.
func SeedInventory(cfg config.InventoryConfig, seededAt time.Time) []db.ParkingSlot {
	slots := make([]db.ParkingSlot, 0, cfg.TotalSlots())
	count := 0

	for _, section := range cfg.Sections {
		for i := 1; i <= section.Slots; i++ {
			count++
			slot := db.ParkingSlot{
				ID:      fmt.Sprintf("%s-%02d", section.Code, i),
				Section: db.Section(section.Code),
				Status:  db.StatusAvailable,
			}
			if count > cfg.SeedAvailable {
				slot.Status = db.StatusBooked
				slot.BookedBy = seedBookedBy
				slot.BookedAt = seededAt.UTC().Format(time.RFC3339)
			}
			slots = append(slots, slot)
		}
	}

	return slots
}
