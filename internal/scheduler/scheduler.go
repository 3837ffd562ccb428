// Package scheduler runs periodic snapshot jobs for interactive sessions.
package scheduler

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/model"
)

// Saver stores a copy of the live records.
type Saver interface {
	Save(label string, records []model.Record) (*model.Snapshot, error)
}

// SaveFunc is called after each automatic save attempt.
type SaveFunc func(snap *model.Snapshot, err error)

// Scheduler manages scheduled jobs using cron.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu        sync.Mutex
	lastSaved []model.Record
	saved     bool
}

// specParser accepts an optional seconds field and descriptors such as
// "@every 30s".
var specParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NewScheduler creates a new scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithParser(specParser)),
		logger: logging.WithGroup("scheduler"),
	}
}

// Start starts running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Debug("scheduler started", logging.KeyCount, len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	s.logger.Debug("scheduler stopped")
}

// AutoSnapshot schedules a job that saves the records returned by source.
// A run is skipped when the records are unchanged since the last save.
func (s *Scheduler) AutoSnapshot(spec, label string, source func() []model.Record, saver Saver, done SaveFunc) (cron.EntryID, error) {
	id, err := s.AddJob(spec, func() {
		snap, ok, err := s.saveIfChanged(label, source(), saver)
		if !ok {
			return
		}
		if done != nil {
			done(snap, err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid autosave schedule %q: %w", spec, err)
	}
	return id, nil
}

// saveIfChanged saves records unless they equal the last saved set.
// ok is false when the save was skipped.
func (s *Scheduler) saveIfChanged(label string, records []model.Record, saver Saver) (snap *model.Snapshot, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved && slices.Equal(s.lastSaved, records) {
		s.logger.Debug("autosave skipped", logging.KeyCount, len(records))
		return nil, false, nil
	}

	snap, err = saver.Save(label, records)
	if err != nil {
		s.logger.Warn("autosave failed", logging.KeyError, err)
		return nil, true, err
	}
	s.lastSaved = model.CloneRecords(records)
	s.saved = true
	s.logger.Debug("autosave", logging.KeySnapshot, snap.ID(), logging.KeyCount, len(records))
	return snap, true, nil
}

// AddJob adds a custom job to the scheduler.
func (s *Scheduler) AddJob(spec string, job func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, job)
}

// RemoveJob removes a job from the scheduler.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries returns all scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns the next scheduled run time for any job.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}

// ValidateSpec reports whether spec is a schedule the scheduler accepts.
func ValidateSpec(spec string) error {
	if _, err := specParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid autosave schedule %q: %w", spec, err)
	}
	return nil
}
