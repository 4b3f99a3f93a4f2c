package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/cockpit/internal/logging"
	"github.com/pablasso/cockpit/internal/tui/styles"
	"github.com/pablasso/cockpit/internal/tui/views"
)

// Minimum terminal dimensions for the cockpit layout.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 20
)

// Model is the main Bubble Tea model. It owns the cockpit view and the
// program lifecycle.
type Model struct {
	cockpit views.CockpitModel
	logger  *logging.Logger
	width   int
	height  int
}

// Run starts the TUI application and blocks until the user quits.
func Run(opts Options) error {
	m := initialModel(opts)

	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	m.logger.Info("tui started", "alt_screen", opts.AltScreen)
	final, err := tea.NewProgram(m, progOpts...).Run()
	if fm, ok := final.(Model); ok {
		// Covers exits that did not go through ctrl+c, such as a signal.
		fm.cockpit.Dispose()
	}
	if err != nil {
		m.logger.Error("tui stopped", "error", err.Error())
		return fmt.Errorf("running tui: %w", err)
	}
	m.logger.Info("tui stopped")
	return nil
}

func initialModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return Model{
		cockpit: views.NewCockpitModel(views.CockpitConfig{
			Task:        opts.Task,
			Delay:       opts.Delay,
			InputHeight: opts.InputHeight,
			Logger:      logger,
		}),
		logger: logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.cockpit.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cockpit.Dispose()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.cockpit, cmd = m.cockpit.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}
	return m.cockpit.View()
}

func (m Model) renderTerminalTooSmall() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.ErrorStyle.Render("Terminal zu klein"),
		"",
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Aktuell: %dx%d", m.width, m.height)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
