package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parkhive/internal/config"
	"parkhive/internal/db"
	"parkhive/internal/entities"
	apperrors "parkhive/internal/errors"
	"parkhive/internal/repository"
)

var testBookedAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

// MockNotifier mocks the notifier sink.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(n entities.Notification) {
	m.Called(n)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSeed(at time.Time) []db.ParkingSlot {
	return repository.SeedInventory(config.Default().Inventory, at)
}

func newTestReservationService(notifier Notifier) *ReservationService {
	repo := repository.NewSlotRepository(testSeed(testBookedAt))
	return NewReservationService(repo, notifier, testLogger())
}

func TestBookPublishesConfirmation(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.MatchedBy(func(n entities.Notification) bool {
		return n.Kind == entities.NotifySuccess &&
			n.Title == "Booking Confirmed!" &&
			n.SlotID == "US-01"
	})).Once()

	svc := newTestReservationService(notifier)
	result, err := svc.Book(entities.BookRequest{
		SlotID:   "US-01",
		UserID:   "employee-1",
		BookedAt: testBookedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BookOK, result.Outcome)

	require.NotNil(t, result.Receipt)
	assert.NotEmpty(t, result.Receipt.Code)
	assert.Equal(t, "US-01", result.Receipt.SlotID)
	assert.Equal(t, "employee-1", result.Receipt.UserID)
	assert.Equal(t, "2024-01-01T10:00:00Z", result.Receipt.BookedAt)

	notifier.AssertExpectations(t)
}

func TestBookNormalizesVehicleNumber(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything)

	svc := newTestReservationService(notifier)
	result, err := svc.Book(entities.BookRequest{
		SlotID:        "US-01",
		UserID:        "employee-1",
		BookedAt:      testBookedAt,
		VehicleNumber: "ka 01 ab 1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "KA01AB1234", result.Receipt.VehicleNumber)

	slot, _ := svc.Repo.Get("US-01")
	assert.Equal(t, "KA01AB1234", slot.VehicleNumber)
}

func TestBookRejectsBadVehicleNumber(t *testing.T) {
	notifier := new(MockNotifier)
	svc := newTestReservationService(notifier)

	_, err := svc.Book(entities.BookRequest{
		SlotID:        "US-01",
		UserID:        "employee-1",
		BookedAt:      testBookedAt,
		VehicleNumber: "not-a-plate",
	})
	require.Error(t, err)

	var opErr *apperrors.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "invalid_vehicle_number", opErr.Code)

	slot, _ := svc.Repo.Get("US-01")
	assert.Equal(t, db.StatusAvailable, slot.Status, "rejected request must not touch the store")
	notifier.AssertNotCalled(t, "Notify", mock.Anything)
}

func TestBookTakenSlotReportsOutcomeWithoutToast(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything).Once() // only the first booking

	svc := newTestReservationService(notifier)
	_, err := svc.Book(entities.BookRequest{SlotID: "US-01", UserID: "employee-1", BookedAt: testBookedAt})
	require.NoError(t, err)

	result, err := svc.Book(entities.BookRequest{SlotID: "US-01", UserID: "employee-2", BookedAt: testBookedAt})
	require.NoError(t, err)
	assert.Equal(t, entities.BookAlreadyBooked, result.Outcome)
	assert.Nil(t, result.Receipt)

	slot, _ := svc.Repo.Get("US-01")
	assert.Equal(t, "employee-1", slot.BookedBy)
	notifier.AssertExpectations(t)
}

func TestBookUnknownSlot(t *testing.T) {
	notifier := new(MockNotifier)
	svc := newTestReservationService(notifier)

	result, err := svc.Book(entities.BookRequest{SlotID: "ZZ-99", UserID: "employee-1", BookedAt: testBookedAt})
	require.NoError(t, err)
	assert.Equal(t, entities.BookNotFound, result.Outcome)
	notifier.AssertNotCalled(t, "Notify", mock.Anything)
}

func TestCancelPublishesToast(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything).Once() // booking confirmation
	notifier.On("Notify", mock.MatchedBy(func(n entities.Notification) bool {
		return n.Title == "Booking Cancelled" &&
			n.Message == "Slot US-01 is now available"
	})).Once()

	svc := newTestReservationService(notifier)
	_, err := svc.Book(entities.BookRequest{SlotID: "US-01", UserID: "employee-1", BookedAt: testBookedAt})
	require.NoError(t, err)

	result := svc.Cancel("US-01")
	assert.Equal(t, entities.CancelOK, result.Outcome)
	notifier.AssertExpectations(t)
}

func TestCancelAvailableSlotIsSilent(t *testing.T) {
	notifier := new(MockNotifier)
	svc := newTestReservationService(notifier)

	result := svc.Cancel("US-01")
	assert.Equal(t, entities.CancelAlreadyAvailable, result.Outcome)
	notifier.AssertNotCalled(t, "Notify", mock.Anything)
}

func TestSlotsBySection(t *testing.T) {
	svc := newTestReservationService(NewFeedNotifier(nil))

	slots, err := svc.SlotsBySection(db.SectionLower)
	require.NoError(t, err)
	assert.Len(t, slots, 33)
	assert.Equal(t, "LS-01", slots[0].ID)
	assert.Equal(t, string(db.SectionLower), slots[0].Section)

	_, err = svc.SlotsBySection(db.Section("XX"))
	require.Error(t, err)
	var opErr *apperrors.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "unknown_section", opErr.Code)
}

func TestBookedSlotsRendering(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything)

	svc := newTestReservationService(notifier)
	_, err := svc.Book(entities.BookRequest{
		SlotID:        "US-04",
		UserID:        "employee-1",
		BookedAt:      testBookedAt,
		VehicleNumber: "KA01AB1234",
	})
	require.NoError(t, err)

	views := svc.BookedSlots("employee-1")
	require.Len(t, views, 1)
	view := views[0]
	assert.Equal(t, "US-04", view.ID)
	assert.True(t, view.Booked())
	assert.Equal(t, "employee-1", view.BookedBy)
	assert.Equal(t, "2024-01-01T10:00:00Z", view.BookedAt)
	assert.Equal(t, "KA01AB1234", view.VehicleNumber)
}

func TestStatsConservation(t *testing.T) {
	svc := newTestReservationService(NewFeedNotifier(nil))
	_, err := svc.Book(entities.BookRequest{SlotID: "US-09", UserID: "employee-1", BookedAt: testBookedAt})
	require.NoError(t, err)

	stats := svc.Stats()
	require.Len(t, stats, 4) // three sections plus the overall row
	for _, row := range stats {
		assert.Equal(t, row.Total, row.Available+row.Booked)
	}
	overall := stats[len(stats)-1]
	assert.Equal(t, 100, overall.Total)
	assert.Equal(t, 29, overall.Available)
}

func TestActiveBooking(t *testing.T) {
	svc := newTestReservationService(NewFeedNotifier(nil))

	_, ok := svc.ActiveBooking()
	assert.False(t, ok)

	_, err := svc.Book(entities.BookRequest{SlotID: "US-02", UserID: "employee-1", BookedAt: testBookedAt})
	require.NoError(t, err)

	slot, ok := svc.ActiveBooking()
	require.True(t, ok)
	assert.Equal(t, "US-02", slot.ID)
}
