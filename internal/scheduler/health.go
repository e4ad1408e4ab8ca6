package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/minimal-api/internal/logging"
	"github.com/minimal-api/internal/metrics"
	"github.com/minimal-api/internal/storage"
)

const HealthJobName = "store-health"

// HealthStatus is the outcome of the most recent store probe.
type HealthStatus struct {
	Healthy   bool       `json:"healthy"`
	CheckedAt time.Time  `json:"checked_at"`
	Error     string     `json:"error,omitempty"`
	NextCheck *time.Time `json:"next_check,omitempty"`
}

// HealthMonitor pings the store on demand or on a schedule and remembers the
// last result.
type HealthMonitor struct {
	pinger storage.Pinger
	log    *logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	last  *HealthStatus
	sched *Scheduler
}

func NewHealthMonitor(pinger storage.Pinger, log *logging.Logger) *HealthMonitor {
	return &HealthMonitor{pinger: pinger, log: log, now: time.Now}
}

// Check pings the store once and records the result. The returned error is
// the ping error, if any.
func (h *HealthMonitor) Check(ctx context.Context) error {
	err := h.pinger.Ping(ctx)

	status := &HealthStatus{Healthy: err == nil, CheckedAt: h.now().UTC()}
	if err != nil {
		status.Error = "store unreachable"
		metrics.StoreUp.Set(0)
		h.log.ErrorContext(ctx, "store health probe failed", "error", err)
	} else {
		metrics.StoreUp.Set(1)
	}

	h.mu.Lock()
	h.last = status
	h.mu.Unlock()
	return err
}

// Status returns the last recorded probe, running one first if none has run
// yet. NextCheck is set once the probe is registered on a running scheduler.
func (h *HealthMonitor) Status(ctx context.Context) HealthStatus {
	h.mu.RLock()
	last, sched := h.last, h.sched
	h.mu.RUnlock()

	if last == nil {
		_ = h.Check(ctx)
		h.mu.RLock()
		last = h.last
		h.mu.RUnlock()
	}

	status := *last
	if sched != nil {
		status.NextCheck = sched.NextRun(HealthJobName)
	}
	return status
}

// Register schedules the probe on s.
func (h *HealthMonitor) Register(s *Scheduler, schedule string) error {
	if err := s.AddJob(HealthJobName, schedule, h.Check); err != nil {
		return err
	}
	h.mu.Lock()
	h.sched = s
	h.mu.Unlock()
	return nil
}
