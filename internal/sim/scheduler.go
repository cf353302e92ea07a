package sim

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/logging"
)

// TickFunc is invoked once per scheduler tick. A returned error or a panic
// stops the scheduler.
type TickFunc func() error

type SchedulerOption func(*Scheduler)

// OnReset registers the state-clearing hook run by Reset after stopping.
func OnReset(fn func()) SchedulerOption {
	return func(s *Scheduler) { s.onReset = fn }
}

// OnFault registers a hook run on the scheduler goroutine when a tick fails.
func OnFault(fn func(error)) SchedulerOption {
	return func(s *Scheduler) { s.onFault = fn }
}

func WithSchedulerLogger(l logging.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = logging.OrNoop(l) }
}

// Scheduler calls a TickFunc on a fixed interval from a single goroutine, so
// ticks never overlap. It can be started again after Stop.
type Scheduler struct {
	update  TickFunc
	onReset func()
	onFault func(error)
	logger  logging.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running atomic.Bool
	ticks   atomic.Uint64
}

func NewScheduler(update TickFunc, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{update: update, logger: logging.Noop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", dynamo.ErrInvalidInterval, interval)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.CompareAndSwap(false, true) {
		return dynamo.ErrSchedulerRunning
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(interval, s.stop, s.done)
	s.logger.Debug(context.Background(), "scheduler started", logging.Duration("interval", interval))
	return nil
}

// Stop cancels further ticks and waits for a tick in progress to finish.
// No tick runs after Stop returns. It must not be called from the TickFunc.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	s.logger.Debug(context.Background(), "scheduler stopped")
}

// Reset stops the scheduler and runs the OnReset hook.
func (s *Scheduler) Reset() {
	s.Stop()
	s.ticks.Store(0)
	if s.onReset != nil {
		s.onReset()
	}
}

func (s *Scheduler) Running() bool { return s.running.Load() }

// Ticks counts completed ticks since the last Reset.
func (s *Scheduler) Ticks() uint64 { return s.ticks.Load() }

func (s *Scheduler) loop(interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	defer s.running.Store(false)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		// A stop that raced with the ticker wins.
		select {
		case <-stop:
			return
		default:
		}

		if err := s.tick(); err != nil {
			s.logger.Warn(context.Background(), "tick failed, scheduler stopped", logging.Err(err))
			if s.onFault != nil {
				s.onFault(err)
			}
			return
		}
		s.ticks.Add(1)
	}
}

func (s *Scheduler) tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", dynamo.ErrTickPanic, r)
		}
	}()
	return s.update()
}
