package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/cockpit/internal/agent"
	"github.com/pablasso/cockpit/internal/cockpit"
	"github.com/pablasso/cockpit/internal/logging"
	"github.com/pablasso/cockpit/internal/plan"
	"github.com/pablasso/cockpit/internal/tui/components"
	"github.com/pablasso/cockpit/internal/tui/msgs"
	"github.com/pablasso/cockpit/internal/tui/styles"
)

// Texts shown by the cockpit.
const (
	HeaderTitle      = "HUMAN:care · Agent Project Cockpit"
	HeaderTagline    = "Beschreibe ein Projekt, das ein autonomer KI-Agent vollständig strukturieren soll."
	FooterText       = "HUMAN:care · Agentic Prototype v0.1"
	InputLabel       = "Was soll der Agent übernehmen?"
	InputPlaceholder = "Beispiel: ‘Plane ein 7-tägiges Entlassungsmanagement für einen COPD-Patienten inkl. Dokumentation, Arztterminen und Versorgung.’"
	StartLabel       = "Agent starten"
	ThinkingLabel    = "Agent denkt..."

	SummaryTitle        = "Projektübersicht"
	SummaryPlaceholder  = "Noch kein Projekt gestartet."
	PhasesTitle         = "Agenten-Phasen"
	PhasesPlaceholder   = "Keine Daten vorhanden."
	CriteriaTitle       = "Abschlusskriterien des Agenten"
	CriteriaPlaceholder = "Noch keine Kriterien."
)

const (
	defaultInputHeight = 5
	minOutputHeight    = 3
	progressWidth      = 16
)

// focusArea is the part of the cockpit receiving key presses.
type focusArea int

const (
	focusInput focusArea = iota
	focusOutput
)

// CockpitConfig configures a new cockpit view.
type CockpitConfig struct {
	Task        string        // prefilled task description
	Delay       time.Duration // simulated thinking time
	InputHeight int           // visible lines of the task input
	Logger      *logging.Logger
}

// CockpitModel is the agent cockpit: a task input with a run control and
// three read-only panels showing the most recent plan.
type CockpitModel struct {
	state   cockpit.State
	input   textarea.Model
	spinner spinner.Model
	output  components.ScrollViewport
	focus   focusArea

	agent      *agent.Simulator
	run        *agent.Run // pending run, nil when idle
	runStarted time.Time
	ctx        context.Context
	cancel     context.CancelFunc
	now        func() time.Time
	logger     *logging.Logger

	inputHeight int
	width       int
	height      int
}

// NewCockpitModel creates the cockpit view.
func NewCockpitModel(cfg CockpitConfig) CockpitModel {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	inputHeight := cfg.InputHeight
	if inputHeight <= 0 {
		inputHeight = defaultInputHeight
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	ta := textarea.New()
	ta.Placeholder = InputPlaceholder
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.SetValue(cfg.Task)
	ta.Focus()

	ctx, cancel := context.WithCancel(context.Background())

	// The textarea normalizes what it is given (tabs, CRLF, line cap), so
	// the task is whatever it ended up showing.
	m := CockpitModel{
		state:       cockpit.State{Task: ta.Value()},
		input:       ta,
		spinner:     s,
		output:      components.NewScrollViewport(80, minOutputHeight),
		focus:       focusInput,
		agent:       agent.New(cfg.Delay, logger),
		ctx:         ctx,
		cancel:      cancel,
		now:         time.Now,
		logger:      logger,
		inputHeight: inputHeight,
	}
	m.refreshOutput()
	return m
}

// Init implements tea.Model.
func (m CockpitModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m CockpitModel) Update(msg tea.Msg) (CockpitModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		// Let the tick loop die out once the agent is done.
		if m.state.Status != cockpit.StatusRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgs.RunCompletedMsg:
		return m.handleRunCompleted(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	// Clipboard pastes and cursor blinks arrive here as non-key messages.
	cmd := m.updateInput(msg)
	return m, cmd
}

// handleKeyPress routes a key to the run control, the focus switch, the
// output panels or the task input.
func (m CockpitModel) handleKeyPress(msg tea.KeyMsg) (CockpitModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s", "ctrl+r":
		return m.triggerRun()
	case "tab":
		return m.toggleFocus()
	case "esc":
		if m.focus == focusOutput {
			return m.toggleFocus()
		}
		return m, nil
	}

	if m.focus == focusOutput {
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	cmd := m.updateInput(msg)
	return m, cmd
}

// updateInput forwards msg to the task input and dispatches an Edit when
// the text changed, keeping the task in step with what the input shows.
func (m *CockpitModel) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.dispatch(cockpit.Edit{Text: after})
	}
	return cmd
}

func (m CockpitModel) toggleFocus() (CockpitModel, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusOutput
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	cmd := m.input.Focus()
	return m, cmd
}

// triggerRun activates the run control. Empty input and a run already in
// progress are silently ignored.
func (m CockpitModel) triggerRun() (CockpitModel, tea.Cmd) {
	before := m.state
	cmd := m.dispatch(cockpit.Trigger{Now: m.now()})
	if m.state == before {
		m.logger.Debug("run trigger ignored",
			"status", before.Status.String(),
			"empty_task", plan.TrimTask(before.Task) == "")
	}
	return m, cmd
}

func (m CockpitModel) handleRunCompleted(msg msgs.RunCompletedMsg) (CockpitModel, tea.Cmd) {
	if m.run != nil && m.run.ID() == msg.RunID {
		m.run = nil
	}
	if msg.Err != nil {
		m.logger.Debug("discarding cancelled run", "run_id", msg.RunID, "error", msg.Err.Error())
		return m, nil
	}
	cmd := m.dispatch(cockpit.RunCompleted{RunID: msg.RunID, Plan: msg.Plan})
	return m, cmd
}

// dispatch applies e to the cockpit state and carries out the resulting
// effects.
func (m *CockpitModel) dispatch(e cockpit.Event) tea.Cmd {
	prev := m.state
	next, eff := cockpit.Apply(m.state, e)
	m.state = next

	var cmds []tea.Cmd
	if eff.CancelRun && m.run != nil {
		m.run.Cancel()
		m.run = nil
	}
	if req := eff.StartRun; req != nil {
		m.run = m.agent.Start(m.ctx, req.ID, req.Plan)
		m.runStarted = m.now()
		cmds = append(cmds, m.spinner.Tick, waitForRun(m.run))
	}

	if prev.Status != next.Status || prev.Plan != next.Plan {
		m.refreshOutput()
	}
	return tea.Batch(cmds...)
}

// waitForRun blocks on the run's result channel and turns it into a message.
func waitForRun(run *agent.Run) tea.Cmd {
	return func() tea.Msg {
		res := <-run.Done()
		return msgs.RunCompletedMsg{RunID: res.ID, Plan: res.Plan, Err: res.Err}
	}
}

// Dispose cancels any pending run. The view must not be used afterwards.
func (m *CockpitModel) Dispose() {
	m.dispatch(cockpit.Dispose{})
	m.cancel()
}

// SetSize updates the model dimensions and lays out the input and panels.
func (m *CockpitModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.input.SetWidth(max(width-4, 1))
	m.output.SetSize(width, m.outputHeight())
	m.refreshOutput()
}

// outputHeight is what remains for the panels after the header (2 lines),
// the input card (label, blank, input, blank, button, border) and the
// footer plus status bar.
func (m CockpitModel) outputHeight() int {
	chrome := 2 + (m.inputHeight + 6) + 2
	return max(m.height-chrome, minOutputHeight)
}

func (m *CockpitModel) refreshOutput() {
	m.output.SetContent(m.renderPanels(m.output.ContentWidth()))
}

// View implements tea.Model.
func (m CockpitModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderInputCard(),
		m.output.View(),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.SubtleStyle.Render(FooterText)),
		components.NewStatusBar().Render(m.width, m.statusItems()),
	)
}

func (m CockpitModel) renderHeader() string {
	title := styles.TitleStyle.Render(HeaderTitle)
	tagline := styles.SubtleStyle.Render(HeaderTagline)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title) + "\n" +
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline)
}

func (m CockpitModel) renderInputCard() string {
	panel := components.NewPanel(InputLabel, m.width)
	panel.Focused = m.focus == focusInput

	body := m.input.View() + "\n\n" + m.renderRunControl()
	return panel.Render(body)
}

// renderRunControl draws the button. It is disabled exactly while the agent
// is running.
func (m CockpitModel) renderRunControl() string {
	if !m.state.CanRun() {
		button := styles.DisabledButtonStyle.Render(m.spinner.View() + " " + ThinkingLabel)
		elapsed := m.now().Sub(m.runStarted)
		return button + "  " + styles.SubtleStyle.Render(components.NewProgress(elapsed, m.agent.Delay(), progressWidth).View())
	}
	return styles.ButtonStyle.Render(StartLabel) + "  " + styles.SubtleStyle.Render("Ctrl+S")
}

// renderPanels draws the summary, phases and criteria panels stacked at the
// given width.
func (m CockpitModel) renderPanels(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderSummaryPanel(m.state.Plan, width),
		renderPhasesPanel(m.state.Plan, width),
		renderCriteriaPanel(m.state.Plan, width),
	)
}

func renderSummaryPanel(p *plan.ProjectPlan, width int) string {
	panel := components.NewPanel(SummaryTitle, width)
	if p == nil {
		return panel.RenderPlaceholder(SummaryPlaceholder)
	}

	var b strings.Builder
	b.WriteString(styles.HeadingStyle.Render("Ziel") + "\n")
	b.WriteString(p.ShortGoal + "\n\n")
	b.WriteString(styles.LabelStyle.Render("Projektstart") + "\n")
	b.WriteString(p.StartDate + "\n\n")
	b.WriteString(styles.LabelStyle.Render("Definition von „fertig“") + "\n")
	b.WriteString(p.SuccessDefinition)
	return panel.Render(b.String())
}

func renderPhasesPanel(p *plan.ProjectPlan, width int) string {
	panel := components.NewPanel(PhasesTitle, width)
	if p == nil {
		return panel.RenderPlaceholder(PhasesPlaceholder)
	}

	indent := lipgloss.NewStyle().PaddingLeft(3).Width(panel.InnerWidth())

	var blocks []string
	for i, phase := range p.Phases {
		lines := []string{
			styles.LabelStyle.Render(fmt.Sprintf("%d. %s", i+1, phase.Title)),
			indent.Render(phase.Description),
		}
		for _, step := range phase.Steps {
			lines = append(lines, indent.Render("• "+step))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return panel.Render(strings.Join(blocks, "\n\n"))
}

func renderCriteriaPanel(p *plan.ProjectPlan, width int) string {
	panel := components.NewPanel(CriteriaTitle, width)
	if p == nil {
		return panel.RenderPlaceholder(CriteriaPlaceholder)
	}

	lines := make([]string, len(p.CompletionCriteria))
	for i, crit := range p.CompletionCriteria {
		lines[i] = "• " + crit
	}
	return panel.Render(strings.Join(lines, "\n"))
}

func (m CockpitModel) statusItems() []string {
	var items []string
	if m.state.Status == cockpit.StatusRunning {
		items = append(items, ThinkingLabel)
	}
	if m.focus == focusOutput {
		return append(items, "↑↓ Scrollen", "Tab/Esc Eingabe", "Ctrl+C Beenden")
	}
	return append(items, "Ctrl+S Agent starten", "Tab Panels", "Ctrl+C Beenden")
}

// State returns the current cockpit state.
func (m CockpitModel) State() cockpit.State {
	return m.state
}

// InputFocused reports whether key presses go to the task input.
func (m CockpitModel) InputFocused() bool {
	return m.focus == focusInput
}

// Running reports whether an agent run is pending.
func (m CockpitModel) Running() bool {
	return m.run != nil
}

// SetClock replaces the clock used to stamp plans (for testing).
func (m *CockpitModel) SetClock(now func() time.Time) {
	m.now = now
}
