package layout

import (
	"github.com/google/uuid"
)

// DefaultMaxTicks bounds how many simulation steps one run performs before
// stopping on its own.
const DefaultMaxTicks = 120

// Status is the lifecycle state of a scheduler run. Cancellation is a normal
// terminal outcome, not an error; callers distinguish it from completion only
// by checking the status.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusCancelled
)

// String returns the string representation of a run status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// NodePosition is one node's published coordinates.
type NodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Snapshot is an immutable value copy of all node positions after a
// completed tick. Observers never see a half-updated tick.
type Snapshot struct {
	RunID     uuid.UUID      `json:"run_id"`
	Tick      int            `json:"tick"`
	Positions []NodePosition `json:"positions"`
}

// Scheduler drives a bounded number of engine ticks and publishes a snapshot
// after each one. Scheduling is single-threaded and cooperative: the host
// (render loop, timer, or a test harness) calls Tick once per redraw
// opportunity, and the scheduler never runs on its own.
//
// Stop is idempotent and checked at the tick boundary only; it can never
// abort a tick already in progress.
type Scheduler struct {
	id       uuid.UUID
	engine   *Engine
	maxTicks int
	ticks    int
	status   Status
	publish  func(Snapshot)
}

// NewScheduler creates a run over the given engine. maxTicks <= 0 selects
// DefaultMaxTicks. publish may be nil when no observer wants snapshots.
func NewScheduler(engine *Engine, maxTicks int, publish func(Snapshot)) *Scheduler {
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	return &Scheduler{
		id:       uuid.New(),
		engine:   engine,
		maxTicks: maxTicks,
		status:   StatusRunning,
		publish:  publish,
	}
}

// ID returns the run identifier.
func (s *Scheduler) ID() uuid.UUID {
	return s.id
}

// Ticks returns how many ticks have been performed so far.
func (s *Scheduler) Ticks() int {
	return s.ticks
}

// Status returns the current run status.
func (s *Scheduler) Status() Status {
	return s.status
}

// Tick performs one simulation step and publishes the resulting snapshot.
// It reports whether the host should schedule another tick; once the run is
// terminal, further calls do nothing and publish nothing.
func (s *Scheduler) Tick() bool {
	if s.status != StatusRunning {
		return false
	}

	s.engine.Tick()
	s.ticks++

	if s.publish != nil {
		s.publish(Snapshot{
			RunID:     s.id,
			Tick:      s.ticks,
			Positions: s.engine.Positions(),
		})
	}

	if s.ticks >= s.maxTicks {
		s.status = StatusCompleted
		return false
	}
	return true
}

// Run drives the scheduler to a terminal status synchronously. Hosts with a
// redraw cadence call Tick directly instead.
func (s *Scheduler) Run() {
	for s.Tick() {
	}
}

// Stop cancels the run at the next tick boundary. Calling it repeatedly, or
// after completion, has no effect.
func (s *Scheduler) Stop() {
	if s.status == StatusRunning {
		s.status = StatusCancelled
	}
}
