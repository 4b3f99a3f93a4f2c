package tui

import (
	"time"

	"github.com/pablasso/cockpit/internal/logging"
)

// Options configures TUI startup behavior.
type Options struct {
	Task        string        // prefilled task description
	Delay       time.Duration // simulated agent thinking time
	InputHeight int
	AltScreen   bool
	Logger      *logging.Logger
}
