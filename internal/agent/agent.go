// Package agent simulates the autonomous agent behind the cockpit.
//
// The agent does no real work: the plan is built up front and published
// after a fixed "thinking" delay. Each run is a cancellable one-shot timer
// that reports its result on a channel to whoever owns the cockpit state.
package agent

import (
	"context"
	"sync"
	"time"

	"github.com/pablasso/cockpit/internal/logging"
	"github.com/pablasso/cockpit/internal/plan"
)

// DefaultDelay is how long the agent thinks before publishing a plan.
const DefaultDelay = 900 * time.Millisecond

// Result is the outcome of a single run.
type Result struct {
	ID   int
	Plan plan.ProjectPlan
	// Err is non-nil when the run was cancelled before the delay elapsed.
	Err error
}

// Simulator starts simulated agent runs.
type Simulator struct {
	delay  time.Duration
	logger *logging.Logger
}

// New creates a Simulator. A nil logger discards log output.
func New(delay time.Duration, logger *logging.Logger) *Simulator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Simulator{delay: delay, logger: logger}
}

// Delay returns the configured thinking time.
func (s *Simulator) Delay() time.Duration {
	return s.delay
}

// Run is a pending simulated agent run.
type Run struct {
	id     int
	done   chan Result
	cancel context.CancelFunc
	once   sync.Once
}

// Start arms a one-shot timer that publishes p on the returned Run's Done
// channel once the delay elapses. Cancelling ctx or the Run first
// publishes a Result carrying the context error instead.
func (s *Simulator) Start(ctx context.Context, id int, p plan.ProjectPlan) *Run {
	ctx, cancel := context.WithCancel(ctx)
	r := &Run{
		id:     id,
		done:   make(chan Result, 1),
		cancel: cancel,
	}

	log := s.logger.WithRun(id)
	log.Info("agent run started", "delay", s.delay.String(), "goal_len", len(p.Goal))

	go func() {
		defer cancel()

		if s.delay > 0 {
			timer := time.NewTimer(s.delay)
			defer timer.Stop()

			select {
			case <-timer.C:
			case <-ctx.Done():
				log.Info("agent run cancelled", "reason", ctx.Err().Error())
				r.done <- Result{ID: id, Err: ctx.Err()}
				return
			}
		} else if err := ctx.Err(); err != nil {
			log.Info("agent run cancelled", "reason", err.Error())
			r.done <- Result{ID: id, Err: err}
			return
		}

		log.Info("agent run completed")
		r.done <- Result{ID: id, Plan: p}
	}()

	return r
}

// ID returns the run's identifier.
func (r *Run) ID() int {
	return r.id
}

// Done delivers exactly one Result.
func (r *Run) Done() <-chan Result {
	return r.done
}

// Cancel stops the run. Safe to call more than once and after completion.
func (r *Run) Cancel() {
	r.once.Do(r.cancel)
}

// Think builds the plan for task, waits out the delay and returns it.
// It returns the context error if ctx ends first.
func (s *Simulator) Think(ctx context.Context, task string) (plan.ProjectPlan, error) {
	p := plan.BuildNow(task)
	run := s.Start(ctx, 0, p)
	defer run.Cancel()

	res := <-run.Done()
	if res.Err != nil {
		return plan.ProjectPlan{}, res.Err
	}
	return res.Plan, nil
}
