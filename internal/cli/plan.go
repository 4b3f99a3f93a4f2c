package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/pablasso/cockpit/internal/agent"
	"github.com/pablasso/cockpit/internal/display"
	"github.com/pablasso/cockpit/internal/plan"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrEmptyDescription is returned when the plan command gets no usable
// project description.
var ErrEmptyDescription = errors.New("project description is empty")

// defaultMarkdownWidth is the wrap width when stdout's size is unknown.
const defaultMarkdownWidth = 80

func newPlanCmd(rt *runtime) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <description...>",
		Short: "Let the agent plan a project without the interactive cockpit",
		Long: `Run the agent once on the given project description and print the
resulting plan. A status line is shown on stderr while the agent thinks;
press Ctrl+C to cancel.`,
		Example: `  cockpit plan "Plane ein 7-tägiges Entlassungsmanagement"
  cockpit plan --format json --delay 0s Website relaunch`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer rt.close(&err)

			f, err := plan.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runPlan(ctx, rt, strings.Join(args, " "), f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(plan.FormatText), "output format: text, markdown, json or yaml")

	return cmd
}

// runPlan lets the agent think about description and writes the plan to out.
func runPlan(ctx context.Context, rt *runtime, description string, f plan.Format, out, errOut io.Writer) error {
	if plan.TrimTask(description) == "" {
		return ErrEmptyDescription
	}

	logger := rt.logger.With("command", "plan")
	sim := agent.New(rt.cfg.Agent.Delay, logger)

	status := display.New(errOut)
	status.Start()
	p, err := sim.Think(ctx, description)
	if err != nil {
		status.SetStatus(display.StatusCancelled)
		status.Stop()
		logger.Warn("plan command cancelled", "error", err.Error())
		return fmt.Errorf("agent cancelled: %w", err)
	}
	status.SetStatus(display.StatusDone)
	status.Stop()

	rendered, err := renderPlan(p, f, out)
	if err != nil {
		return err
	}
	if _, err := out.Write(rendered); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	logger.Info("plan command completed", "format", string(f), "goal_length", len([]rune(p.Goal)))
	return nil
}

// renderPlan encodes p in format f. Markdown bound for a terminal is styled
// with glamour; everywhere else the raw encoding is used.
func renderPlan(p plan.ProjectPlan, f plan.Format, out io.Writer) ([]byte, error) {
	if f != plan.FormatMarkdown {
		return plan.Render(p, f)
	}

	width, ok := terminalWidth(out)
	if !ok {
		return plan.Render(p, f)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	styled, err := r.Render(plan.RenderMarkdown(p))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(styled), nil
}

// terminalWidth reports the width of w if it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultMarkdownWidth, true
	}
	return width, true
}
