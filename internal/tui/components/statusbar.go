package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/cockpit/internal/tui/styles"
)

// StatusBar renders a bottom help bar showing contextual help items.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width and items.
// Items are joined with " • " and cut with an ellipsis if they do not fit.
func (s StatusBar) Render(width int, items []string) string {
	if len(items) == 0 {
		return styles.StatusBarStyle.Width(width).Render("")
	}

	content := strings.Join(items, " • ")
	if width > 0 && ansi.StringWidth(content) > width {
		content = ansi.Truncate(content, width, "…")
	}

	return styles.StatusBarStyle.Width(width).Render(content)
}
