// Package display renders a single-line agent status on a terminal while
// the cockpit runs without its TUI.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Status represents the state of the agent shown on the status line.
type Status int

const (
	StatusIdle Status = iota
	StatusThinking
	StatusDone
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Bereit"
	case StatusThinking:
		return "Agent denkt..."
	case StatusDone:
		return "Fertig"
	case StatusCancelled:
		return "Abgebrochen"
	default:
		return "Unbekannt"
	}
}

// DefaultInterval is how often the status line is redrawn.
const DefaultInterval = 120 * time.Millisecond

var spinnerFrames = []rune("⣾⣽⣻⢿⡿⣟⣯⣷")

// State holds the current display state.
type State struct {
	Status    Status
	StartTime time.Time
	Frame     int
}

// Display manages the terminal status line.
type Display struct {
	mu       sync.Mutex
	writer   io.Writer
	state    State
	width    int // 0 disables truncation
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup // Ensures goroutine exits before Stop() returns
	active   bool
	lastLine string
}

// New creates a new Display writing to the given writer. When w is a
// terminal, lines are truncated to its width.
func New(w io.Writer) *Display {
	return &Display{
		writer:   w,
		width:    terminalWidth(w),
		interval: DefaultInterval,
		done:     make(chan struct{}),
	}
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Start begins the display update loop with the status set to thinking.
func (d *Display) Start() {
	d.mu.Lock()
	if d.active {
		d.mu.Unlock()
		return
	}
	d.active = true
	d.done = make(chan struct{})
	d.state.Status = StatusThinking
	d.state.StartTime = time.Now()
	d.state.Frame = 0
	d.lastLine = ""
	d.ticker = time.NewTicker(d.interval)
	d.wg.Add(1)
	d.mu.Unlock()

	go d.updateLoop()
}

// Stop halts the display update loop and clears the status line.
// Blocks until the update goroutine has exited to prevent race conditions.
func (d *Display) Stop() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	d.mu.Unlock()

	d.ticker.Stop()
	close(d.done)
	d.wg.Wait()
	d.clearLine()
}

// SetStatus updates the status shown on the line.
func (d *Display) SetStatus(status Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Status = status
}

// updateLoop periodically renders the status line.
func (d *Display) updateLoop() {
	defer d.wg.Done()
	d.render()
	for {
		select {
		case <-d.ticker.C:
			d.render()
		case <-d.done:
			return
		}
	}
}

// render draws the current status line.
func (d *Display) render() {
	d.mu.Lock()
	state := d.state
	d.state.Frame++
	width := d.width
	lastLine := d.lastLine
	d.mu.Unlock()

	line := formatLine(state, time.Since(state.StartTime), width)

	// Only update if changed (reduces flicker)
	if line == lastLine {
		return
	}

	d.mu.Lock()
	d.lastLine = line
	d.mu.Unlock()

	// Move to start of line, clear it, write new content
	fmt.Fprintf(d.writer, "\r\033[K%s", line)
}

// formatLine creates the status line string, truncated to width cells.
func formatLine(state State, elapsed time.Duration, width int) string {
	if state.Status == StatusIdle {
		return ""
	}

	prefix := " "
	if state.Status == StatusThinking {
		prefix = string(spinnerFrames[state.Frame%len(spinnerFrames)])
	}
	line := fmt.Sprintf("%s %s (%s)", prefix, state.Status, formatDuration(elapsed))

	if width > 0 && runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}

// clearLine clears the status line.
func (d *Display) clearLine() {
	fmt.Fprintf(d.writer, "\r\033[K")
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
