package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/cockpit/internal/logging"
)

// MaxAgentDelay caps the simulated thinking time.
const MaxAgentDelay = time.Minute

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "agent.delay")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateAgent()...)
	errs = append(errs, c.validateTUI()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateAgent() []ValidationError {
	var errs []ValidationError
	if c.Agent.Delay < 0 {
		errs = append(errs, ValidationError{
			Field:   "agent.delay",
			Value:   c.Agent.Delay,
			Message: "must not be negative",
		})
	}
	if c.Agent.Delay > MaxAgentDelay {
		errs = append(errs, ValidationError{
			Field:   "agent.delay",
			Value:   c.Agent.Delay,
			Message: fmt.Sprintf("must be at most %s", MaxAgentDelay),
		})
	}
	return errs
}

func (c *Config) validateTUI() []ValidationError {
	var errs []ValidationError
	if c.TUI.InputHeight < 1 || c.TUI.InputHeight > 20 {
		errs = append(errs, ValidationError{
			Field:   "tui.input_height",
			Value:   c.TUI.InputHeight,
			Message: "must be between 1 and 20",
		})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError
	if !logging.IsValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of: debug, info, warn, error",
		})
	}
	return errs
}
