package layout

import (
	"sync"

	"github.com/dd0wney/cluso-codemap/pkg/pubsub"
)

// Animator owns the active scheduler run for a host. Starting a run for a
// new graph fully cancels any in-flight run first, so two engines never
// mutate shared state concurrently.
//
// Published snapshots go out on the bus under the run id as topic.
type Animator struct {
	mu      sync.Mutex
	bus     *pubsub.Bus[Snapshot]
	current *Scheduler
}

// NewAnimator creates an animator publishing on the given bus. A nil bus is
// allowed for hosts that read snapshots straight off the scheduler.
func NewAnimator(bus *pubsub.Bus[Snapshot]) *Animator {
	return &Animator{bus: bus}
}

// Start cancels any in-flight run and begins a fresh one over the engine,
// returning the new scheduler for the host to drive.
func (a *Animator) Start(engine *Engine, maxTicks int) *Scheduler {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		a.current.Stop()
	}

	var publish func(Snapshot)
	if a.bus != nil {
		bus := a.bus
		publish = func(snap Snapshot) {
			bus.Publish(snap.RunID.String(), snap)
		}
	}

	a.current = NewScheduler(engine, maxTicks, publish)
	return a.current
}

// Current returns the most recently started scheduler, or nil before the
// first Start.
func (a *Animator) Current() *Scheduler {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Stop cancels the active run, if any. Idempotent.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != nil {
		a.current.Stop()
	}
}
