package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"parkhive/internal/repository"
)

// JobService hosts the background janitor work. Its single job clears
// inactivity warnings that have lingered past their display window, e.g.
// when a reminder fired and the prompt was abandoned without interaction.
type JobService struct {
	Repo       *repository.SlotRepository
	staleAfter time.Duration
	log        *logrus.Logger
	now        func() time.Time
}

func NewJobService(repo *repository.SlotRepository, staleAfter time.Duration, log *logrus.Logger) *JobService {
	return &JobService{
		Repo:       repo,
		staleAfter: staleAfter,
		log:        log,
		now:        time.Now,
	}
}

// ClearStaleWarnings removes the pending inactivity warning if it has been
// showing for longer than the stale window. Reports whether it cleared one.
func (s *JobService) ClearStaleWarnings() bool {
	warnedAt, ok := s.Repo.InactivityWarning()
	if !ok {
		return false
	}
	age := s.now().UTC().Sub(warnedAt)
	if age < s.staleAfter {
		return false
	}
	s.Repo.ClearInactivityWarning()
	s.log.WithField("age", age.String()).Info("Janitor cleared stale inactivity warning")
	return true
}

// Schedule registers the janitor on the given cron runner.
func (s *JobService) Schedule(c *cron.Cron, spec string) error {
	if _, err := c.AddFunc(spec, func() { s.ClearStaleWarnings() }); err != nil {
		return fmt.Errorf("failed to schedule janitor: %w", err)
	}
	return nil
}
