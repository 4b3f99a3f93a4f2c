// Package cockpit holds the interactive state of the agent cockpit and the
// reducer that applies user and timer events to it.
//
// State is owned by a single controller. All transitions go through Apply,
// which returns the new state plus the side effects the controller must
// carry out (starting or cancelling an agent run).
package cockpit

import (
	"time"

	"github.com/pablasso/cockpit/internal/plan"
)

// Status is the run status of the cockpit.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// State is the complete view state of the cockpit.
type State struct {
	Task   string
	Status Status
	Plan   *plan.ProjectPlan

	// RunID identifies the current run. Completions carrying any other
	// ID are stale and ignored.
	RunID int
}

// CanRun reports whether the run control is enabled.
func (s State) CanRun() bool {
	return s.Status != StatusRunning
}

// HasPlan reports whether a finished plan is available for display.
func (s State) HasPlan() bool {
	return s.Plan != nil
}

// Event is a discrete input to the reducer.
type Event interface {
	isEvent()
}

// Edit replaces the task text.
type Edit struct {
	Text string
}

// Trigger is the user activating the run control. Now stamps the plan's
// start date.
type Trigger struct {
	Now time.Time
}

// RunCompleted is the agent publishing the plan of run RunID.
type RunCompleted struct {
	RunID int
	Plan  plan.ProjectPlan
}

// Dispose tears the cockpit down. Any pending run is cancelled and its
// completion will be ignored.
type Dispose struct{}

func (Edit) isEvent()         {}
func (Trigger) isEvent()      {}
func (RunCompleted) isEvent() {}
func (Dispose) isEvent()      {}

// RunRequest asks the controller to start the simulated agent.
// Plan is already built; the agent only delays its publication.
type RunRequest struct {
	ID   int
	Plan plan.ProjectPlan
}

// Effect lists the side effects of a transition.
type Effect struct {
	StartRun  *RunRequest
	CancelRun bool
}

// Apply applies e to s and returns the resulting state and effects.
// It never mutates s.
func Apply(s State, e Event) (State, Effect) {
	switch e := e.(type) {
	case Edit:
		s.Task = e.Text
		return s, Effect{}

	case Trigger:
		if plan.TrimTask(s.Task) == "" || !s.CanRun() {
			return s, Effect{}
		}
		built := plan.Build(s.Task, e.Now)
		s.Status = StatusRunning
		s.Plan = nil
		s.RunID++
		return s, Effect{StartRun: &RunRequest{ID: s.RunID, Plan: built}}

	case RunCompleted:
		if s.Status != StatusRunning || e.RunID != s.RunID {
			return s, Effect{}
		}
		p := e.Plan
		s.Plan = &p
		s.Status = StatusDone
		return s, Effect{}

	case Dispose:
		cancel := s.Status == StatusRunning
		s.RunID++
		return s, Effect{CancelRun: cancel}
	}

	return s, Effect{}
}
