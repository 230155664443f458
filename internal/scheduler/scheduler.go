// Package scheduler implements the background loop that finds due task
// reminders and dispatches them.
//
// The loop runs one scan cycle, sleeps for the poll interval, and repeats
// for the lifetime of the process. A cycle reads every task whose unsent
// reminder falls inside the current time window and fans the results out
// to dispatch workers under a bounded concurrency gate. Cycle N's workers
// all finish before cycle N+1 reads, so a task is never fetched twice
// concurrently by the same scheduler instance.
//
// All timestamps are UTC end to end. The store's atomic conditional
// mark-sent write is the only concurrency-safety primitive the scheduler
// relies on.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/platform/metrics"
	"github.com/planitapp/planit-api/internal/store"
)

// Default settings, used when a Config field is zero.
const (
	DefaultPollInterval  = 60 * time.Second
	DefaultWindow        = 60 * time.Second
	DefaultMaxConcurrent = 1
	DefaultNotifyTimeout = 10 * time.Second
)

// Config holds the scheduler's tuning knobs.
type Config struct {
	// PollInterval is how long the loop sleeps between cycles. The sleep
	// is measured from the end of a cycle, so an overrunning cycle delays
	// the next one rather than overlapping it.
	PollInterval time.Duration

	// Window is the width of the forward-looking part of the scan window.
	Window time.Duration

	// MaxConcurrent bounds how many dispatch workers run at once within
	// a cycle. The default of 1 is effectively serial, chosen because a
	// shared notify channel may itself be rate-limited.
	MaxConcurrent int

	// NotifyTimeout bounds a single notify call so a hung channel cannot
	// hold a dispatch slot indefinitely.
	NotifyTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.NotifyTimeout <= 0 {
		c.NotifyTimeout = DefaultNotifyTimeout
	}
	return c
}

// CycleResult summarizes one scan cycle for logging and metrics.
type CycleResult struct {
	// Candidates is how many due, unsent reminders the scan returned.
	Candidates int

	// Dispatched is how many reminders were delivered and marked sent.
	Dispatched int

	// Failed is how many dispatches hit a notify or mark-sent error.
	Failed int
}

// Scheduler owns the reminder scan loop.
type Scheduler struct {
	taskStore store.TaskStore
	notifier  Notifier
	cfg       Config
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// New creates a Scheduler. Zero Config fields fall back to defaults. If
// logger is nil, the default logger is used.
func New(taskStore store.TaskStore, notifier Notifier, cfg Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		taskStore: taskStore,
		notifier:  notifier,
		cfg:       cfg.withDefaults(),
		logger:    logger.With(slog.String("component", "scheduler")),
		timeFunc:  time.Now,
	}
}

// Run executes scan cycles until ctx is cancelled. It never returns early
// on error: a failed cycle is logged and the loop sleeps and retries,
// since silently stopping reminders is worse than a retry every interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler started",
		"poll_interval", s.cfg.PollInterval,
		"window", s.cfg.Window,
		"max_concurrent", s.cfg.MaxConcurrent)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "reason", ctx.Err())
			return
		case <-timer.C:
		}

		s.RunCycle(ctx)

		// Fixed delay from cycle end: an overrunning cycle pushes the
		// next one back instead of piling up catch-up work.
		timer.Reset(s.cfg.PollInterval)
	}
}

// RunCycle performs a single scan cycle and reports its outcome. The scan
// window is [now - poll interval, now + window]: the lookback catches
// reminders that fell due while the previous cycle slept or overran, and
// the conditional mark-sent write keeps the overlap from double-firing.
func (s *Scheduler) RunCycle(ctx context.Context) CycleResult {
	started := s.timeFunc()
	now := started.UTC()
	lower := now.Add(-s.cfg.PollInterval)
	upper := now.Add(s.cfg.Window)

	tasks, err := s.taskStore.FindDueUnsent(ctx, lower, upper)
	if err != nil {
		// A failed read degrades to an empty cycle; the next cycle
		// retries naturally.
		s.logger.Error("reminder scan failed",
			"error", err,
			"window_start", lower,
			"window_end", upper)
		metrics.RecordCycle("scan_error", time.Since(started))
		return CycleResult{}
	}

	result := CycleResult{Candidates: len(tasks)}
	if len(tasks) > 0 {
		var (
			mu   sync.Mutex
			wg   sync.WaitGroup
			gate = make(chan struct{}, s.cfg.MaxConcurrent)
		)

		for _, task := range tasks {
			gate <- struct{}{}
			wg.Add(1)
			go func(task *domain.Task) {
				defer wg.Done()
				defer func() { <-gate }()

				ok := s.dispatch(ctx, task)

				mu.Lock()
				if ok {
					result.Dispatched++
				} else {
					result.Failed++
				}
				mu.Unlock()
			}(task)
		}
		wg.Wait()
	}

	elapsed := time.Since(started)
	metrics.RecordCycle("ok", elapsed)

	if result.Candidates > 0 {
		s.logger.Info("reminder scan cycle finished",
			"candidates", result.Candidates,
			"dispatched", result.Dispatched,
			"failed", result.Failed,
			"duration", elapsed)
	} else {
		s.logger.Debug("reminder scan cycle finished with no candidates",
			"window_start", lower,
			"window_end", upper)
	}

	return result
}

// dispatch delivers one due reminder and commits the sent transition.
// It reports whether both steps succeeded. No failure escapes past this
// boundary; a single task can never abort its cycle.
func (s *Scheduler) dispatch(ctx context.Context, task *domain.Task) (ok bool) {
	metrics.DispatchWorkersActive.Inc()
	defer metrics.DispatchWorkersActive.Dec()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in reminder dispatch",
				"panic", r,
				"task_id", task.ID)
			metrics.RecordDispatch("notify_error")
			ok = false
		}
	}()

	notifyCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	notifyErr := s.notifier.Notify(notifyCtx, task)
	cancel()

	if notifyErr != nil {
		// Logged but not retried within the cycle; the mark-sent write
		// below still proceeds so a permanently failing channel cannot
		// cause a redelivery storm.
		s.logger.Error("failed to deliver reminder",
			"error", notifyErr,
			"task_id", task.ID,
			"user_id", task.UserID)
	}

	changed, err := s.taskStore.MarkNotificationSent(ctx, task.ID)
	if err != nil {
		// The reminder stays unsent; a future cycle re-offers it while
		// it remains inside the window.
		s.logger.Error("failed to mark reminder sent",
			"error", err,
			"task_id", task.ID)
		metrics.RecordDispatch("mark_error")
		return false
	}
	if !changed {
		// Someone else marked it first, or the task is gone. Benign.
		s.logger.Debug("reminder already marked sent",
			"task_id", task.ID)
	}

	if notifyErr != nil {
		metrics.RecordDispatch("notify_error")
		return false
	}

	metrics.RecordDispatch("sent")
	return true
}
