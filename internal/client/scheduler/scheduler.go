// Package scheduler runs cancellable recurring tasks.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of recurring work.
type Task func(ctx context.Context)

// Handle identifies a scheduled task. The zero Handle is never issued.
type Handle uint64

type entry struct {
	stop      chan struct{}
	name      string
	immediate bool
}

// Option configures a scheduled task.
type Option func(*entry)

// Immediate runs the task once before the first interval elapses.
func Immediate() Option {
	return func(e *entry) { e.immediate = true }
}

// WithName sets the name used in logs.
func WithName(name string) Option {
	return func(e *entry) { e.name = name }
}

// Scheduler owns recurring tasks. A task never overlaps with itself:
// ticks that arrive while it runs are dropped.
type Scheduler struct {
	ctx     context.Context
	logger  *slog.Logger
	entries map[Handle]*entry
	wg      sync.WaitGroup
	next    Handle
	mu      sync.Mutex
	stopped bool
}

// New creates a Scheduler. Tasks receive ctx.
func New(ctx context.Context, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ctx:     ctx,
		logger:  logger,
		entries: make(map[Handle]*entry),
	}
}

// Schedule runs task every interval until cancelled.
// Returns the zero Handle if the scheduler is stopped or interval is not positive.
func (s *Scheduler) Schedule(interval time.Duration, task Task, opts ...Option) Handle {
	if interval <= 0 {
		return 0
	}

	e := &entry{stop: make(chan struct{}), name: "task"}
	for _, opt := range opts {
		opt(e)
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return 0
	}
	s.next++
	h := s.next
	s.entries[h] = e
	s.wg.Add(1)
	s.mu.Unlock()

	go s.loop(e, interval, task)

	s.logger.Debug("Task scheduled", "task", e.name, "interval", interval, "immediate", e.immediate)
	return h
}

// Cancel stops future runs of h. A run in progress finishes normally.
// Returns false if h is unknown.
func (s *Scheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	e, ok := s.entries[h]
	if ok {
		delete(s.entries, h)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}

	close(e.stop)
	s.logger.Debug("Task cancelled", "task", e.name)
	return true
}

// Stop cancels every task and waits for running ones to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	entries := s.entries
	s.entries = make(map[Handle]*entry)
	s.mu.Unlock()

	for _, e := range entries {
		close(e.stop)
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(e *entry, interval time.Duration, task Task) {
	defer s.wg.Done()

	if e.immediate {
		s.run(e, task)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			// Отмена могла прийти одновременно с тиком
			select {
			case <-e.stop:
				return
			default:
			}
			s.run(e, task)
		}
	}
}

func (s *Scheduler) run(e *entry, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduled task panicked", "task", e.name, "panic", r)
		}
	}()
	task(s.ctx)
}
