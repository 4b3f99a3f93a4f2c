package components

import (
	"fmt"
	"strings"
	"time"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders how far the agent is into its thinking time,
// like: ■■■■□□□□ 50%
type Progress struct {
	Elapsed time.Duration
	Total   time.Duration
	Width   int // character width of the bar portion
}

// NewProgress creates a new Progress instance.
func NewProgress(elapsed, total time.Duration, width int) Progress {
	return Progress{
		Elapsed: elapsed,
		Total:   total,
		Width:   width,
	}
}

// View returns the rendered progress bar string. A zero total renders
// nothing.
func (p Progress) View() string {
	if p.Total <= 0 || p.Width <= 0 {
		return ""
	}

	elapsed := p.Elapsed
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > p.Total {
		elapsed = p.Total
	}

	percent := int(elapsed * 100 / p.Total)
	filled := int(elapsed * time.Duration(p.Width) / p.Total)

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)

	return fmt.Sprintf("%s %d%%", bar, percent)
}
