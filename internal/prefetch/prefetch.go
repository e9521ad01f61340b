// Package prefetch processes the slideshow's next artwork off the
// render path. It owns a single-slot handoff cell between one producer
// (a persistent worker goroutine) and one consumer (the controller),
// with at most one job in flight at any time.
package prefetch

import (
	"sync"

	"github.com/charmbracelet/log"

	"artslide/internal/artwork"
	"artslide/internal/pipeline"
)

// Processor produces the processed form of an artwork. Satisfied by
// pipeline.Processor; tests substitute a controllable fake.
type Processor interface {
	Process(info artwork.Info) (*pipeline.Result, error)
}

// Scheduler dispatches at most one background processing job at a time
// and hands the finished result over through a single-slot buffer.
type Scheduler struct {
	proc Processor

	mu       sync.Mutex
	slot     *pipeline.Result
	inFlight bool
	failed   bool

	startWorker sync.Once
	requests    chan artwork.Info
}

// NewScheduler creates a Scheduler. The worker goroutine is only
// started by the first Request, so a slideshow that never prefetches
// (single artwork) never spawns a background thread.
func NewScheduler(proc Processor) *Scheduler {
	return &Scheduler{
		proc:     proc,
		requests: make(chan artwork.Info, 1),
	}
}

// Request dispatches background processing of info. It is a no-op
// while a previous job is still in flight; the caller re-requests
// after consuming that job's result.
func (s *Scheduler) Request(info artwork.Info) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	s.failed = false
	s.mu.Unlock()

	s.startWorker.Do(func() { go s.worker() })
	// Never blocks: the channel has room for the one job the flight
	// flag admits.
	s.requests <- info
}

// worker processes jobs one at a time. All pipeline work happens
// outside the lock; the slot is only locked for the instant of the
// final write.
func (s *Scheduler) worker() {
	for info := range s.requests {
		res, err := s.proc.Process(info)

		s.mu.Lock()
		if err != nil {
			s.failed = true
		} else {
			s.slot = res
		}
		s.mu.Unlock()

		if err != nil {
			log.Debugf("prefetch failed: %v", err)
		}
	}
}

// Poll clears the in-flight flag once the dispatched job has finished,
// successfully or not. Non-blocking, safe to call every frame.
func (s *Scheduler) Poll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight && (s.slot != nil || s.failed) {
		s.inFlight = false
	}
}

// TakeIfReady removes and returns the handed-off result, or nil when
// the slot is empty. Calling it on an empty slot has no side effects.
func (s *Scheduler) TakeIfReady() *pipeline.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.slot
	s.slot = nil
	return res
}

// InFlight reports whether a dispatched job has not yet been observed
// complete via Poll.
func (s *Scheduler) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Failed reports whether the last finished job produced no result.
func (s *Scheduler) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// ClearFailure resets the failure marker after the caller has reacted
// to it.
func (s *Scheduler) ClearFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = false
}

// Close stops the worker goroutine. No Request may follow.
func (s *Scheduler) Close() {
	s.startWorker.Do(func() {}) // ensure no worker starts after this point
	close(s.requests)
}
