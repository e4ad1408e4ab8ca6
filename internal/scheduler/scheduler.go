package scheduler

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/minimal-api/internal/logging"
)

// JobTimeout bounds a single run of any scheduled job.
const JobTimeout = 30 * time.Second

// Job is a unit of background work run on a cron schedule.
type Job func(ctx context.Context) error

// Scheduler manages named background jobs
type Scheduler struct {
	cron     *cron.Cron
	log      *logging.Logger
	entryMap map[string]cron.EntryID
	mu       sync.RWMutex
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(log *logging.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		log:      log,
		entryMap: make(map[string]cron.EntryID),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the scheduler. Jobs added before Start begin firing now.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.cancel()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	s.running = true

	s.log.Info("scheduler started", "jobs", len(s.entryMap))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.cron.Stop()
	s.mu.Unlock()

	// Jobs in flight read s.ctx under the read lock, so wait unlocked.
	<-done.Done()
	s.log.Info("scheduler stopped")
}

// AddJob registers job under name, replacing any job with the same name.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entryMap[name]; ok {
		s.cron.Remove(entryID)
		delete(s.entryMap, name)
	}

	entryID, err := s.cron.AddFunc(normalizeSchedule(schedule), func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression '%s': %w", schedule, err)
	}

	s.entryMap[name] = entryID
	return nil
}

// RemoveJob removes a job from the scheduler
func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entryMap[name]; ok {
		s.cron.Remove(entryID)
		delete(s.entryMap, name)
	}
}

// NextRun returns the next run time for a job, or nil when it is not
// scheduled or the scheduler is not running.
func (s *Scheduler) NextRun(name string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entryID, ok := s.entryMap[name]; ok {
		entry := s.cron.Entry(entryID)
		if !entry.Next.IsZero() {
			return &entry.Next
		}
	}
	return nil
}

// Jobs returns the registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entryMap))
	for name := range s.entryMap {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) run(name string, job Job) {
	s.mu.RLock()
	parent := s.ctx
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(parent, JobTimeout)
	defer cancel()

	if err := job(ctx); err != nil {
		s.log.Warn("scheduled job failed", "job", name, "error", err)
	}
}

// normalizeSchedule accepts both 5-field and 6-field cron expressions and
// descriptors such as "@every 1m".
func normalizeSchedule(schedule string) string {
	schedule = strings.TrimSpace(schedule)
	if strings.HasPrefix(schedule, "@") {
		return schedule
	}
	if len(strings.Fields(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}
