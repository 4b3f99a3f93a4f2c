package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// ScrollViewport wraps bubbles/viewport.Model with a 1-column scrollbar.
// It holds pre-rendered (possibly styled) content.
type ScrollViewport struct {
	viewport viewport.Model
	lines    int // number of content lines
	width    int // total width including scrollbar
	height   int // viewport height
}

// NewScrollViewport creates a new ScrollViewport with the given dimensions.
// The width includes 1 column for the scrollbar; the content area is
// width-1.
func NewScrollViewport(width, height int) ScrollViewport {
	vp := viewport.New(max(width-1, 0), height)
	vp.SetContent("")

	return ScrollViewport{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// SetSize updates the viewport dimensions. Width includes the scrollbar column.
func (s *ScrollViewport) SetSize(width, height int) {
	if s.width == width && s.height == height {
		return
	}

	s.width = width
	s.height = height
	s.viewport.Width = max(width-1, 0)
	s.viewport.Height = height

	// Clamp y-offset after resize.
	s.viewport.SetYOffset(s.viewport.YOffset)
}

// SetContent replaces the content and scrolls back to the top.
func (s *ScrollViewport) SetContent(content string) {
	s.lines = strings.Count(content, "\n") + 1
	s.viewport.SetContent(content)
	s.viewport.GotoTop()
}

// Update handles scroll keys and mouse wheel events.
func (s *ScrollViewport) Update(msg tea.Msg) (ScrollViewport, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return *s, cmd
}

// View renders the viewport content with a 1-column scrollbar on the right.
func (s ScrollViewport) View() string {
	content := s.viewport.View()
	scrollbar := RenderScrollbar(s.height, s.lines, s.viewport.YOffset)

	contentLines := strings.Split(content, "\n")
	scrollbarLines := strings.Split(scrollbar, "\n")
	contentWidth := s.ContentWidth()

	var b strings.Builder
	for i := 0; i < s.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}

		cl := ""
		if i < len(contentLines) {
			cl = contentLines[i]
		}
		sl := ""
		if i < len(scrollbarLines) {
			sl = scrollbarLines[i]
		}

		b.WriteString(cl)
		// Pad styled content to the content width so the scrollbar aligns.
		if padding := contentWidth - ansi.StringWidth(cl); padding > 0 {
			b.WriteString(strings.Repeat(" ", padding))
		}
		b.WriteString(sl)
	}

	return b.String()
}

// AtTop returns true if the viewport is scrolled to the top.
func (s ScrollViewport) AtTop() bool {
	return s.viewport.AtTop()
}

// AtBottom returns true if the viewport is scrolled to the bottom.
func (s ScrollViewport) AtBottom() bool {
	return s.viewport.AtBottom()
}

// YOffset returns the current scroll offset.
func (s ScrollViewport) YOffset() int {
	return s.viewport.YOffset
}

// ContentWidth returns the width available for content (total width minus scrollbar).
func (s ScrollViewport) ContentWidth() int {
	return max(s.width-1, 0)
}

// RenderScrollbar renders a 1-column vertical scrollbar. Content that fits
// renders as a blank gutter so the layout width stays stable; otherwise a
// track (│) with a proportionally sized thumb (█) is drawn.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}

	const (
		track = "│"
		thumb = "█"
	)

	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)

	maxYOffset := contentHeight - viewHeight
	thumbMaxTop := viewHeight - thumbSize

	thumbTop := 0
	if maxYOffset > 0 {
		thumbTop = yOffset * thumbMaxTop / maxYOffset
	}
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	var b strings.Builder
	for i := 0; i < viewHeight; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbTop && i < thumbTop+thumbSize {
			b.WriteString(thumb)
		} else {
			b.WriteString(track)
		}
	}

	return b.String()
}
