package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"parkhive/internal/db"
	"parkhive/internal/entities"
	apperrors "parkhive/internal/errors"
	"parkhive/internal/repository"
	"parkhive/internal/utils"
)

// ReservationService orchestrates booking and cancellation on top of the
// slot store: it normalizes input, classifies outcomes, issues receipts and
// publishes toast notifications.
type ReservationService struct {
	Repo     *repository.SlotRepository
	notifier Notifier
	log      *logrus.Logger
}

func NewReservationService(repo *repository.SlotRepository, notifier Notifier, log *logrus.Logger) *ReservationService {
	return &ReservationService{
		Repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Book attempts to reserve the requested slot. The store is only mutated on
// BookOK; the other outcomes report why nothing happened. An invalid vehicle
// number rejects the request before the store is consulted.
func (s *ReservationService) Book(req entities.BookRequest) (*entities.BookResult, error) {
	vehicleNumber := ""
	if req.VehicleNumber != "" {
		normalized, err := utils.NormalizeVehicleNumber(req.VehicleNumber)
		if err != nil {
			return nil, apperrors.NewOpError("invalid_vehicle_number", err.Error())
		}
		vehicleNumber = normalized
	}

	outcome := s.Repo.Book(req.SlotID, req.UserID, req.BookedAt, vehicleNumber)
	result := &entities.BookResult{Outcome: outcome}

	if outcome != entities.BookOK {
		s.log.WithFields(logrus.Fields{
			"slot_id": req.SlotID,
			"user_id": req.UserID,
			"outcome": outcome,
		}).Warn("Booking ignored")
		return result, nil
	}

	slot, _ := s.Repo.Get(req.SlotID)
	result.Receipt = &entities.BookingReceipt{
		Code:          uuid.New().String(),
		SlotID:        slot.ID,
		UserID:        slot.BookedBy,
		BookedAt:      slot.BookedAt,
		VehicleNumber: slot.VehicleNumber,
	}

	s.log.WithFields(logrus.Fields{
		"slot_id": slot.ID,
		"user_id": slot.BookedBy,
		"code":    result.Receipt.Code,
	}).Info("Booking confirmed")

	s.notifier.Notify(entities.Notification{
		Kind:    entities.NotifySuccess,
		Title:   "Booking Confirmed!",
		Message: fmt.Sprintf("Slot %s has been booked successfully", slot.ID),
		SlotID:  slot.ID,
	})
	return result, nil
}

// Cancel attempts to release the given slot. Cancelling twice is a no-op;
// the second call reports CancelAlreadyAvailable and changes nothing.
func (s *ReservationService) Cancel(slotID string) *entities.CancelResult {
	outcome := s.Repo.Cancel(slotID)
	result := &entities.CancelResult{Outcome: outcome, SlotID: slotID}

	if outcome != entities.CancelOK {
		s.log.WithFields(logrus.Fields{
			"slot_id": slotID,
			"outcome": outcome,
		}).Warn("Cancellation ignored")
		return result
	}

	s.log.WithField("slot_id", slotID).Info("Booking cancelled")
	s.notifier.Notify(entities.Notification{
		Kind:    entities.NotifySuccess,
		Title:   "Booking Cancelled",
		Message: fmt.Sprintf("Slot %s is now available", slotID),
		SlotID:  slotID,
	})
	return result
}

// ListSlots returns the full inventory.
func (s *ReservationService) ListSlots() []db.ParkingSlot {
	return s.Repo.Slots()
}

// SlotsBySection returns one section's slots rendered for display, or an
// unknown_section OpError for a code that is not part of the inventory.
func (s *ReservationService) SlotsBySection(section db.Section) ([]entities.SlotResponse, error) {
	for _, known := range s.Repo.Sections() {
		if known == section {
			slots := s.Repo.BySection(section)
			out := make([]entities.SlotResponse, 0, len(slots))
			for _, slot := range slots {
				out = append(out, entities.NewSlotResponse(slot))
			}
			return out, nil
		}
	}
	return nil, apperrors.NewOpError("unknown_section", fmt.Sprintf("unknown section %q", section))
}

// BookedSlots returns the slots currently held by the given user, rendered
// for display.
func (s *ReservationService) BookedSlots(userID string) []entities.SlotResponse {
	slots := s.Repo.BookedBy(userID)
	out := make([]entities.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, entities.NewSlotResponse(slot))
	}
	return out
}

// ActiveBooking returns the slot the local user currently holds, if any.
func (s *ReservationService) ActiveBooking() (db.ParkingSlot, bool) {
	id, ok := s.Repo.ActiveBookingID()
	if !ok {
		return db.ParkingSlot{}, false
	}
	return s.Repo.Get(id)
}

// Stats returns per-section counts followed by the overall total.
func (s *ReservationService) Stats() []entities.SectionStats {
	sections := s.Repo.Sections()
	out := make([]entities.SectionStats, 0, len(sections)+1)
	for _, section := range sections {
		out = append(out, s.Repo.SectionStats(section))
	}
	out = append(out, s.Repo.OverallStats())
	return out
}
