// Package msgs defines shared message types for the TUI.
package msgs

import "github.com/pablasso/cockpit/internal/plan"

// RunCompletedMsg is sent when a simulated agent run finishes or is
// cancelled. Err is set for cancelled runs.
type RunCompletedMsg struct {
	RunID int
	Plan  plan.ProjectPlan
	Err   error
}
