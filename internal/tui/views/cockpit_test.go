package views

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/cockpit/internal/cockpit"
	"github.com/pablasso/cockpit/internal/logging"
	"github.com/pablasso/cockpit/internal/plan"
	"github.com/pablasso/cockpit/internal/testutil"
	"github.com/pablasso/cockpit/internal/tui/msgs"
)

func newTestCockpit(t *testing.T, delay time.Duration) CockpitModel {
	t.Helper()

	m := NewCockpitModel(CockpitConfig{Delay: delay, InputHeight: 3})
	m.SetClock(testutil.FixedClock())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	t.Cleanup(m.cancel)
	return m
}

func typeText(m CockpitModel, text string) CockpitModel {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func pressRun(m CockpitModel) (CockpitModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
}

// collectMsgs runs cmd, expanding batches, and returns every message produced.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findRunCompleted(t *testing.T, cmd tea.Cmd) msgs.RunCompletedMsg {
	t.Helper()
	for _, msg := range collectMsgs(cmd) {
		if done, ok := msg.(msgs.RunCompletedMsg); ok {
			return done
		}
	}
	t.Fatal("expected a RunCompletedMsg from the run command")
	return msgs.RunCompletedMsg{}
}

func TestNewCockpitModel(t *testing.T) {
	m := NewCockpitModel(CockpitConfig{})
	defer m.cancel()

	s := m.State()
	if s.Status != cockpit.StatusIdle {
		t.Errorf("expected idle status, got %s", s.Status)
	}
	if s.HasPlan() {
		t.Error("expected no plan initially")
	}
	if !m.InputFocused() {
		t.Error("expected input to be focused")
	}
	if m.inputHeight != defaultInputHeight {
		t.Errorf("expected default input height %d, got %d", defaultInputHeight, m.inputHeight)
	}
	if m.Running() {
		t.Error("expected no pending run")
	}
}

func TestNewCockpitModel_PrefilledTask(t *testing.T) {
	m := NewCockpitModel(CockpitConfig{Task: "Plan a 7-day discharge"})
	defer m.cancel()

	if m.State().Task != "Plan a 7-day discharge" {
		t.Errorf("expected task to be prefilled, got %q", m.State().Task)
	}
	if m.input.Value() != "Plan a 7-day discharge" {
		t.Errorf("expected input to show prefilled task, got %q", m.input.Value())
	}
}

func TestNewCockpitModel_PrefillMatchesInput(t *testing.T) {
	tests := []struct {
		name string
		task string
	}{
		{name: "tab", task: "a\tb"},
		{name: "crlf", task: "Zeile eins\r\nZeile zwei"},
		{name: "more lines than the input keeps", task: strings.Repeat("z\n", 150)},
		{name: "plain", task: "Plan a 7-day discharge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCockpitModel(CockpitConfig{Task: tt.task})
			m.SetClock(testutil.FixedClock())
			defer m.cancel()

			if got, shown := m.State().Task, m.input.Value(); got != shown {
				t.Fatalf("task %q does not match input %q", got, shown)
			}

			m, cmd := pressRun(m)
			m, _ = m.Update(findRunCompleted(t, cmd))
			if want := plan.TrimTask(m.input.Value()); m.State().Plan.Goal != want {
				t.Errorf("plan goal %q, want the shown text %q", m.State().Plan.Goal, want)
			}
		})
	}
}

func TestNewCockpitModel_PrefillTabNormalized(t *testing.T) {
	m := NewCockpitModel(CockpitConfig{Task: "a\tb"})
	defer m.cancel()

	if strings.Contains(m.State().Task, "\t") {
		t.Errorf("expected the tab to be normalized like the input, got %q", m.State().Task)
	}
}

func TestCockpitModel_BracketedPasteUpdatesTask(t *testing.T) {
	m := newTestCockpit(t, 0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Plan a 7-day discharge"), Paste: true})

	if m.State().Task != m.input.Value() || m.State().Task != "Plan a 7-day discharge" {
		t.Errorf("task %q, input %q", m.State().Task, m.input.Value())
	}
}

// clipboardHelperEnv marks the child process started by
// TestCockpitModel_ClipboardPasteUpdatesTask. The clipboard package picks
// its paste command once at startup, so the fake xclip must already be on
// PATH when the test binary starts.
const clipboardHelperEnv = "COCKPIT_TEST_CLIPBOARD_CHILD"

const clipboardText = "Plan a 7-day discharge"

func TestCockpitModel_ClipboardPasteUpdatesTask(t *testing.T) {
	if os.Getenv(clipboardHelperEnv) == "1" {
		checkClipboardPaste(t)
		return
	}
	if runtime.GOOS != "linux" {
		t.Skip("fake xclip clipboard only works on linux")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\nprintf '%s' '" + clipboardText + "'\n"
	if err := os.WriteFile(filepath.Join(dir, "xclip"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake xclip: %v", err)
	}

	env := []string{clipboardHelperEnv + "=1", "PATH=" + dir + string(os.PathListSeparator) + os.Getenv("PATH")}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PATH=") || strings.HasPrefix(kv, "WAYLAND_DISPLAY=") {
			continue
		}
		env = append(env, kv)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestCockpitModel_ClipboardPasteUpdatesTask$", "-test.v")
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("clipboard paste check failed: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "--- PASS") {
		t.Fatalf("clipboard paste check did not run:\n%s", out)
	}
}

// checkClipboardPaste runs in the child process with the fake xclip on PATH.
func checkClipboardPaste(t *testing.T) {
	for _, prefix := range []string{"", "Entwurf: "} {
		m := newTestCockpit(t, 0)
		m = typeText(m, prefix)

		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
		if cmd == nil {
			t.Fatal("expected ctrl+v to read the clipboard")
		}
		for _, msg := range collectMsgs(cmd) {
			m, _ = m.Update(msg)
		}

		want := prefix + clipboardText
		if m.input.Value() != want {
			t.Fatalf("input %q, want %q", m.input.Value(), want)
		}
		if m.State().Task != want {
			t.Fatalf("task %q does not follow the pasted input %q", m.State().Task, want)
		}

		m, cmd = pressRun(m)
		if m.State().Status != cockpit.StatusRunning {
			t.Fatalf("expected the pasted task to start a run, got %s", m.State().Status)
		}
		m, _ = m.Update(findRunCompleted(t, cmd))
		if m.State().Plan.Goal != want {
			t.Errorf("plan goal %q, want %q", m.State().Plan.Goal, want)
		}
	}
}

func TestCockpitModel_Init(t *testing.T) {
	m := newTestCockpit(t, 0)
	if m.Init() == nil {
		t.Error("expected Init() to return the cursor blink command")
	}
}

func TestCockpitModel_Update_WindowSizeMsg(t *testing.T) {
	m := newTestCockpit(t, 0)

	newM, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	if cmd != nil {
		t.Error("expected no command from WindowSizeMsg")
	}
	if newM.width != 120 || newM.height != 50 {
		t.Errorf("expected 120x50, got %dx%d", newM.width, newM.height)
	}
	if got := newM.outputHeight(); got != 50-(2+3+6+2) {
		t.Errorf("unexpected output height %d", got)
	}
}

func TestCockpitModel_OutputHeightHasMinimum(t *testing.T) {
	m := newTestCockpit(t, 0)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})

	if got := m.outputHeight(); got != minOutputHeight {
		t.Errorf("expected minimum output height %d, got %d", minOutputHeight, got)
	}
}

func TestCockpitModel_TypingUpdatesTask(t *testing.T) {
	m := newTestCockpit(t, 0)

	m = typeText(m, "Entlassung")
	if m.State().Task != "Entlassung" {
		t.Errorf("expected task %q, got %q", "Entlassung", m.State().Task)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.State().Task != "Entlassun" {
		t.Errorf("expected task %q after backspace, got %q", "Entlassun", m.State().Task)
	}
}

func TestCockpitModel_EnterInsertsNewline(t *testing.T) {
	m := newTestCockpit(t, 0)

	m = typeText(m, "Zeile eins")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "Zeile zwei")

	if m.State().Task != "Zeile eins\nZeile zwei" {
		t.Errorf("expected multi-line task, got %q", m.State().Task)
	}
	if m.State().Status != cockpit.StatusIdle {
		t.Error("expected enter not to start a run")
	}
}

func TestCockpitModel_RunWithEmptyInputIsNoOp(t *testing.T) {
	for _, input := range []string{"", "   "} {
		m := newTestCockpit(t, 0)
		m = typeText(m, input)
		before := m.State()

		m, cmd := pressRun(m)

		if m.State() != before {
			t.Errorf("input %q: expected state unchanged, got %+v", input, m.State())
		}
		if cmd != nil {
			t.Errorf("input %q: expected no command", input)
		}
		if m.Running() {
			t.Errorf("input %q: expected no pending run", input)
		}
	}
}

func TestCockpitModel_RunPublishesPlanAfterDelay(t *testing.T) {
	delay := 30 * time.Millisecond
	m := newTestCockpit(t, delay)
	m = typeText(m, "Plan a 7-day discharge")

	start := time.Now()
	m, cmd := pressRun(m)

	if m.State().Status != cockpit.StatusRunning {
		t.Fatalf("expected running immediately, got %s", m.State().Status)
	}
	if m.State().HasPlan() {
		t.Fatal("expected no plan while running")
	}
	if !m.Running() {
		t.Fatal("expected a pending run")
	}
	if cmd == nil {
		t.Fatal("expected a command waiting for the run")
	}

	done := findRunCompleted(t, cmd)
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("run completed after %s, want at least %s", elapsed, delay)
	}
	if m.State().HasPlan() {
		t.Fatal("plan must not be published before the completion message is applied")
	}

	m, _ = m.Update(done)

	s := m.State()
	if s.Status != cockpit.StatusDone {
		t.Fatalf("expected done, got %s", s.Status)
	}
	if !s.HasPlan() {
		t.Fatal("expected plan after completion")
	}
	if s.Plan.ShortGoal != "Plan a 7-day discharge" {
		t.Errorf("unexpected short goal %q", s.Plan.ShortGoal)
	}
	if !strings.HasPrefix(s.Plan.Phases[0].Title, "Phase 1") {
		t.Errorf("unexpected first phase %q", s.Plan.Phases[0].Title)
	}
	if len(s.Plan.CompletionCriteria) != 5 {
		t.Errorf("expected 5 criteria, got %d", len(s.Plan.CompletionCriteria))
	}
	if s.Plan.StartDate != "05.03.2026" {
		t.Errorf("expected start date from clock, got %q", s.Plan.StartDate)
	}
	if m.Running() {
		t.Error("expected pending run to be cleared")
	}
}

func TestCockpitModel_LongInputTruncatedInSummary(t *testing.T) {
	m := newTestCockpit(t, 0)
	m = typeText(m, strings.Repeat("x", 200))

	m, cmd := pressRun(m)
	m, _ = m.Update(findRunCompleted(t, cmd))

	short := m.State().Plan.ShortGoal
	if utf8.RuneCountInString(short) != 120 {
		t.Errorf("expected short goal of 120 characters, got %d", utf8.RuneCountInString(short))
	}
	if !strings.HasSuffix(short, plan.Ellipsis) {
		t.Errorf("expected ellipsis, got %q", short)
	}
}

func TestCockpitModel_RunIgnoredWhileRunning(t *testing.T) {
	m := newTestCockpit(t, time.Hour)
	m = typeText(m, "eins")

	m, _ = pressRun(m)
	runID := m.State().RunID

	m, cmd := pressRun(m)
	if cmd != nil {
		t.Error("expected second trigger to be ignored while running")
	}
	if m.State().RunID != runID {
		t.Errorf("expected run id to stay %d, got %d", runID, m.State().RunID)
	}
}

func TestCockpitModel_TypingWhileRunning(t *testing.T) {
	m := newTestCockpit(t, time.Hour)
	m = typeText(m, "eins")
	m, _ = pressRun(m)

	m = typeText(m, " zwei")

	if m.State().Task != "eins zwei" {
		t.Errorf("expected input to stay editable while running, got %q", m.State().Task)
	}
	if m.State().Status != cockpit.StatusRunning {
		t.Errorf("expected typing not to change status, got %s", m.State().Status)
	}
}

func TestCockpitModel_RetriggerClearsPreviousPlan(t *testing.T) {
	m := newTestCockpit(t, 0)
	m = typeText(m, "eins")
	m, cmd := pressRun(m)
	m, _ = m.Update(findRunCompleted(t, cmd))

	m = typeText(m, " zwei")
	m, cmd = pressRun(m)

	if m.State().HasPlan() {
		t.Error("expected plan cleared on re-trigger")
	}
	m, _ = m.Update(findRunCompleted(t, cmd))
	if m.State().Plan.ShortGoal != "eins zwei" {
		t.Errorf("expected new plan, got %q", m.State().Plan.ShortGoal)
	}
}

func TestCockpitModel_CancelledRunDiscarded(t *testing.T) {
	m := newTestCockpit(t, 0)
	m = typeText(m, "eins")
	m, _ = pressRun(m)

	m, cmd := m.Update(msgs.RunCompletedMsg{RunID: m.State().RunID, Err: context.Canceled})

	if cmd != nil {
		t.Error("expected no command for a cancelled run")
	}
	if m.State().HasPlan() {
		t.Error("expected cancelled run not to publish a plan")
	}
	if m.Running() {
		t.Error("expected pending run to be released")
	}
}

func TestCockpitModel_Dispose(t *testing.T) {
	m := newTestCockpit(t, time.Hour)
	m = typeText(m, "eins")
	m, cmd := pressRun(m)

	m.Dispose()

	done := findRunCompleted(t, cmd)
	if !errors.Is(done.Err, context.Canceled) {
		t.Fatalf("expected cancelled result after dispose, got %v", done.Err)
	}
	if m.Running() {
		t.Error("expected no pending run after dispose")
	}
}

func TestCockpitModel_FocusToggle(t *testing.T) {
	m := newTestCockpit(t, 0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.InputFocused() {
		t.Fatal("expected tab to move focus to the panels")
	}

	m = typeText(m, "ignoriert")
	if m.State().Task != "" {
		t.Errorf("expected keys not to reach the input while panels are focused, got %q", m.State().Task)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.InputFocused() {
		t.Fatal("expected esc to return focus to the input")
	}

	m = typeText(m, "da")
	if m.State().Task != "da" {
		t.Errorf("expected typing to resume, got %q", m.State().Task)
	}
}

func TestCockpitModel_RunFromPanelsFocus(t *testing.T) {
	m := newTestCockpit(t, 0)
	m = typeText(m, "eins")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	if m.State().Status != cockpit.StatusRunning || cmd == nil {
		t.Error("expected ctrl+r to start a run regardless of focus")
	}
}

func TestCockpitModel_SpinnerStopsWhenIdle(t *testing.T) {
	m := newTestCockpit(t, 0)

	_, cmd := m.Update(m.spinner.Tick())
	if cmd != nil {
		t.Error("expected spinner ticks to be dropped when not running")
	}
}

func TestCockpitModel_View_Placeholders(t *testing.T) {
	m := newTestCockpit(t, 0)
	view := m.View()

	for _, want := range []string{
		HeaderTitle,
		InputLabel,
		StartLabel,
		SummaryTitle,
		SummaryPlaceholder,
		PhasesTitle,
		PhasesPlaceholder,
		CriteriaTitle,
		CriteriaPlaceholder,
		FooterText,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, ThinkingLabel) {
		t.Error("expected no thinking label while idle")
	}
}

func TestCockpitModel_View_Running(t *testing.T) {
	m := newTestCockpit(t, time.Hour)
	m = typeText(m, "eins")
	m, _ = pressRun(m)

	view := m.View()
	if !strings.Contains(view, ThinkingLabel) {
		t.Error("expected thinking label while running")
	}
	if strings.Contains(m.renderRunControl(), StartLabel) {
		t.Error("expected start button to be replaced while running")
	}
	if !strings.Contains(view, SummaryPlaceholder) {
		t.Error("expected summary placeholder while running")
	}
}

func TestCockpitModel_View_ZeroSize(t *testing.T) {
	m := NewCockpitModel(CockpitConfig{})
	defer m.cancel()

	if m.View() != "" {
		t.Error("expected empty view before the first WindowSizeMsg")
	}
}

func TestCockpitModel_RenderPanels_WithPlan(t *testing.T) {
	m := newTestCockpit(t, 0)
	m = typeText(m, "Plan a 7-day discharge")
	m, cmd := pressRun(m)
	m, _ = m.Update(findRunCompleted(t, cmd))

	out := m.renderPanels(120)
	p := m.State().Plan

	for _, want := range []string{"Plan a 7-day discharge", "05.03.2026", "Ziel", "Projektstart", "Definition von „fertig“"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected summary to contain %q", want)
		}
	}
	for i, phase := range p.Phases {
		if !strings.Contains(out, phase.Title) {
			t.Errorf("expected phase %d title %q", i+1, phase.Title)
		}
		for _, step := range phase.Steps {
			if !strings.Contains(out, step) {
				t.Errorf("expected step %q", step)
			}
		}
	}
	for _, crit := range p.CompletionCriteria {
		if !strings.Contains(out, crit) {
			t.Errorf("expected criterion %q", crit)
		}
	}
	for _, placeholder := range []string{SummaryPlaceholder, PhasesPlaceholder, CriteriaPlaceholder} {
		if strings.Contains(out, placeholder) {
			t.Errorf("expected placeholder %q to be gone", placeholder)
		}
	}

	first := strings.Index(out, p.Phases[0].Title)
	last := strings.Index(out, p.Phases[3].Title)
	if first < 0 || last < first {
		t.Error("expected phases in order")
	}
}

func TestCockpitModel_StatusItems(t *testing.T) {
	m := newTestCockpit(t, time.Hour)

	items := strings.Join(m.statusItems(), " ")
	if !strings.Contains(items, "Ctrl+S") {
		t.Errorf("expected run hint, got %q", items)
	}

	m = typeText(m, "eins")
	m, _ = pressRun(m)
	items = strings.Join(m.statusItems(), " ")
	if !strings.HasPrefix(items, ThinkingLabel) {
		t.Errorf("expected thinking hint first, got %q", items)
	}
}

func TestCockpitModel_LogsIgnoredTrigger(t *testing.T) {
	var buf bytes.Buffer
	m := NewCockpitModel(CockpitConfig{Logger: logging.NewWriterLogger(&buf, logging.LevelDebug)})
	defer m.cancel()

	m, _ = pressRun(m)

	if !strings.Contains(buf.String(), "run trigger ignored") {
		t.Errorf("expected ignored trigger to be logged, got %s", buf.String())
	}
}
