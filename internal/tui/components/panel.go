package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/cockpit/internal/tui/styles"
)

// Panel renders a titled, bordered card.
type Panel struct {
	Title   string
	Width   int // total width including border
	Focused bool
}

// NewPanel creates a Panel of the given total width.
func NewPanel(title string, width int) Panel {
	return Panel{Title: title, Width: width}
}

// Render draws body inside the card, below the title. Body text is
// wrapped to the card's inner width.
func (p Panel) Render(body string) string {
	style := styles.CardStyle
	if p.Focused {
		style = styles.FocusedCardStyle
	}
	if p.Width > 2 {
		// Width covers padding but not the border.
		style = style.Width(p.Width - 2)
	}

	title := styles.TitleStyle.Render(p.Title)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}

// RenderPlaceholder draws the card with dimmed placeholder text in place of
// a body.
func (p Panel) RenderPlaceholder(text string) string {
	return p.Render(styles.PlaceholderStyle.Render(text))
}

// InnerWidth returns the width available to body text.
func (p Panel) InnerWidth() int {
	// border (2) + horizontal padding (2)
	return max(p.Width-4, 0)
}
