// Package cli wires the cockpit command tree.
package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pablasso/cockpit/internal/agent"
	"github.com/pablasso/cockpit/internal/config"
	"github.com/pablasso/cockpit/internal/logging"
	"github.com/pablasso/cockpit/internal/tui"
	"github.com/pablasso/cockpit/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"agent.delay":   "delay",
	"logging.level": "log-level",
}

// runtime holds what every command needs once flags are parsed.
type runtime struct {
	cfg    *config.Config
	logger *logging.Logger
}

// NewRootCmd builds the cockpit command tree.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		task    string
		rt      runtime
	)

	rootCmd := &cobra.Command{
		Use:   "cockpit",
		Short: "Agent project cockpit",
		Long: `Cockpit turns a free-text project description into a structured
plan: a short goal, a start date, four agent phases and the criteria
the agent uses to decide it is done.

Without a subcommand the interactive cockpit is started.`,
		Version:      version.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadRuntime(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			rt = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer rt.close(&err)

			return tui.Run(tui.Options{
				Task:        task,
				Delay:       rt.cfg.Agent.Delay,
				InputHeight: rt.cfg.TUI.InputHeight,
				AltScreen:   rt.cfg.TUI.AltScreen,
				Logger:      rt.logger,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", fmt.Sprintf("config file (default is %s)", config.ConfigFile()))
	pf.Duration("delay", agent.DefaultDelay, "how long the agent thinks before publishing its plan")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.Flags().StringVarP(&task, "task", "t", "", "prefill the task input")

	rootCmd.AddCommand(newPlanCmd(&rt))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadRuntime reads the configuration, applies flag overrides and opens the
// session logger.
func loadRuntime(cfgFile string, flags *pflag.FlagSet) (*runtime, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger = logger.WithSession(uuid.NewString())
	logger.Info("cockpit started",
		"version", version.Version,
		"agent_delay", cfg.Agent.Delay.String(),
		"config_file", v.ConfigFileUsed())

	return &runtime{cfg: cfg, logger: logger}, nil
}

// close logs the end of the command and closes the log file. Commands
// defer it from RunE because cobra skips post-run hooks after an error.
// A close failure is reported only when the command itself succeeded.
func (rt *runtime) close(errp *error) {
	if rt.logger == nil {
		return
	}
	if *errp != nil {
		rt.logger.Error("cockpit stopped", "error", (*errp).Error())
	} else {
		rt.logger.Info("cockpit stopped")
	}
	if err := rt.logger.Close(); err != nil && *errp == nil {
		*errp = fmt.Errorf("failed to close log: %w", err)
	}
}

// bindFlags lets explicitly set flags take precedence over file and
// environment values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
