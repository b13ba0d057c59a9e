package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parkhive/internal/repository"
)

func TestJanitorClearsStaleWarning(t *testing.T) {
	repo := repository.NewSlotRepository(testSeed(testBookedAt))
	janitor := NewJobService(repo, 5*time.Minute, testLogger())

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	janitor.now = func() time.Time { return now }

	repo.SetInactivityWarning(now.Add(-10 * time.Minute))
	assert.True(t, janitor.ClearStaleWarnings())
	_, ok := repo.InactivityWarning()
	assert.False(t, ok)
}

func TestJanitorKeepsFreshWarning(t *testing.T) {
	repo := repository.NewSlotRepository(testSeed(testBookedAt))
	janitor := NewJobService(repo, 5*time.Minute, testLogger())

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	janitor.now = func() time.Time { return now }

	repo.SetInactivityWarning(now.Add(-time.Minute))
	assert.False(t, janitor.ClearStaleWarnings())
	_, ok := repo.InactivityWarning()
	assert.True(t, ok)
}

func TestJanitorNoWarningIsNoOp(t *testing.T) {
	repo := repository.NewSlotRepository(testSeed(testBookedAt))
	janitor := NewJobService(repo, 5*time.Minute, testLogger())
	assert.False(t, janitor.ClearStaleWarnings())
}
