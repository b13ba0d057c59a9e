package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkhive/internal/config"
	"parkhive/internal/db"
	"parkhive/internal/repository"
	"parkhive/internal/service"
)

func runScript(t *testing.T, script string) (string, *repository.SlotRepository) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	seed := func(at time.Time) []db.ParkingSlot {
		return repository.SeedInventory(config.Default().Inventory, at)
	}
	repo := repository.NewSlotRepository(seed(time.Now().UTC()))
	notifier := service.NewFeedNotifier(nil)
	reservations := service.NewReservationService(repo, notifier, log)
	cancelFlow := service.NewCancelFlow(reservations, notifier, time.Minute, log)
	auth, err := service.NewAuthService(repo, seed, "EMP001", "Park1234", time.Hour, log)
	require.NoError(t, err)

	var out bytes.Buffer
	shell := NewShell(auth, reservations, cancelFlow, strings.NewReader(script), &out, log)
	shell.Run()
	return out.String(), repo
}

func TestShellBookAndCancelFlow(t *testing.T) {
	out, repo := runScript(t, `
login EMP001 Park1234
book US-01 KA01AB1234
mybookings
cancel US-01
cancel confirm
quit
`)

	assert.Contains(t, out, "welcome EMP001")
	assert.Contains(t, out, "booked US-01")
	assert.Contains(t, out, "vehicle KA01AB1234")
	assert.Contains(t, out, "cancelled US-01")

	slot, _ := repo.Get("US-01")
	assert.Equal(t, db.StatusAvailable, slot.Status)
}

func TestShellRequiresLogin(t *testing.T) {
	out, repo := runScript(t, "book US-01\nquit\n")
	assert.Contains(t, out, "log in first")

	slot, _ := repo.Get("US-01")
	assert.Equal(t, db.StatusAvailable, slot.Status)
}

func TestShellKeepBooking(t *testing.T) {
	out, repo := runScript(t, `
login EMP001 Park1234
book US-05
cancel US-05
cancel keep
quit
`)
	assert.Contains(t, out, "keeping the booking")

	slot, _ := repo.Get("US-05")
	assert.Equal(t, db.StatusBooked, slot.Status, "'keep' must leave the booking in place")
	_, warned := repo.InactivityWarning()
	assert.False(t, warned)
}

func TestShellSectionsAndStats(t *testing.T) {
	out, _ := runScript(t, "sections\nstats\nquit\n")
	assert.Contains(t, out, "US: 34 slots, 30 available")
	assert.Contains(t, out, "total=100 available=30 booked=70")
}

func TestShellUnknownCommand(t *testing.T) {
	out, _ := runScript(t, "frobnicate\nquit\n")
	assert.Contains(t, out, "unknown command")
}
