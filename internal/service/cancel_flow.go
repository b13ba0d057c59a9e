package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"parkhive/internal/entities"
)

// CancelFlow drives the cancel-confirmation prompt for one booked slot and
// owns its inactivity timer. While the prompt is open, idle time past the
// threshold marks the store's inactivity warning; any interaction clears the
// warning and re-arms the timer. All timing lives here, never in the store.
type CancelFlow struct {
	svc      *ReservationService
	notifier Notifier
	idle     time.Duration
	log      *logrus.Logger
	now      func() time.Time

	mu     sync.Mutex
	slotID string
	open   bool
	timer  *time.Timer
	// generation invalidates timer callbacks armed before the latest
	// interaction, so a late fire can't resurrect a cleared warning.
	generation uint64
}

func NewCancelFlow(svc *ReservationService, notifier Notifier, idle time.Duration, log *logrus.Logger) *CancelFlow {
	return &CancelFlow{
		svc:      svc,
		notifier: notifier,
		idle:     idle,
		log:      log,
		now:      time.Now,
	}
}

// Open starts the confirmation prompt for slotID and arms the idle timer.
// Opening over an already-open flow retargets it.
func (f *CancelFlow) Open(slotID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slotID = slotID
	f.open = true
	f.svc.Repo.ClearInactivityWarning()
	f.armLocked()
}

// Touch records a user interaction: the warning is cleared and the idle
// timer restarts. Touching a closed flow does nothing.
func (f *CancelFlow) Touch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return
	}
	f.svc.Repo.ClearInactivityWarning()
	f.armLocked()
}

// Confirm cancels the booking under confirmation and closes the flow. Any
// pending warning is cleared here as well, so no stale reminder survives
// even when the cancel itself is a no-op.
func (f *CancelFlow) Confirm() *entities.CancelResult {
	f.mu.Lock()
	slotID := f.slotID
	f.closeLocked()
	f.svc.Repo.ClearInactivityWarning()
	f.mu.Unlock()

	if slotID == "" {
		return &entities.CancelResult{Outcome: entities.CancelNotFound}
	}
	return f.svc.Cancel(slotID)
}

// Dismiss closes the prompt without cancelling, stopping the timer and
// clearing any pending warning. The kept booking is announced on the feed.
func (f *CancelFlow) Dismiss() {
	f.mu.Lock()
	slotID, wasOpen := f.slotID, f.open
	f.closeLocked()
	f.svc.Repo.ClearInactivityWarning()
	f.mu.Unlock()

	if !wasOpen {
		return
	}
	f.notifier.Notify(entities.Notification{
		Kind:    entities.NotifyInfo,
		Title:   "Booking Kept",
		Message: fmt.Sprintf("Slot %s remains booked", slotID),
		SlotID:  slotID,
	})
}

// SlotID returns the slot under confirmation while the flow is open.
func (f *CancelFlow) SlotID() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slotID, f.open
}

func (f *CancelFlow) armLocked() {
	f.generation++
	gen := f.generation
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.idle, func() {
		f.fire(gen)
	})
}

func (f *CancelFlow) closeLocked() {
	f.generation++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.open = false
	f.slotID = ""
}

func (f *CancelFlow) fire(gen uint64) {
	f.mu.Lock()
	if !f.open || gen != f.generation {
		f.mu.Unlock()
		return
	}
	slotID := f.slotID
	at := f.now().UTC()
	// The store write stays inside the critical section: a Touch racing
	// with this fire either bumps the generation first (this fire is
	// dropped) or runs after and clears the warning we just set.
	f.svc.Repo.SetInactivityWarning(at)
	f.mu.Unlock()

	f.log.WithField("slot_id", slotID).Info("Cancel flow idle, raising inactivity reminder")
	f.notifier.Notify(entities.Notification{
		Kind:    entities.NotifyReminder,
		Title:   "Inactivity Reminder",
		Message: fmt.Sprintf("You haven't parked your vehicle yet. Reserved slot: %s", slotID),
		SlotID:  slotID,
		At:      at,
	})
}
