// Package config loads cockpit settings from defaults, an optional config
// file, COCKPIT_* environment variables and command-line flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides,
// e.g. COCKPIT_AGENT_DELAY for agent.delay.
const EnvPrefix = "COCKPIT"

// Config represents the complete cockpit configuration
type Config struct {
	Agent   AgentConfig   `mapstructure:"agent"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AgentConfig controls the simulated agent
type AgentConfig struct {
	// Delay is how long the agent "thinks" before publishing its plan (default: 900ms)
	Delay time.Duration `mapstructure:"delay"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// InputHeight is the number of visible lines in the task input (default: 5, min: 1, max: 20)
	InputHeight int `mapstructure:"input_height"`
	// AltScreen runs the cockpit in the terminal's alternate screen (default: true)
	AltScreen bool `mapstructure:"alt_screen"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `mapstructure:"level"`
	// Dir is where cockpit.log is written; empty disables logging
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with the built-in defaults
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			Delay: 900 * time.Millisecond,
		},
		TUI: TUIConfig{
			InputHeight: 5,
			AltScreen:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
	}
}

// SetDefaults registers the built-in defaults on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("agent.delay", defaults.Agent.Delay)

	v.SetDefault("tui.input_height", defaults.TUI.InputHeight)
	v.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
}

// New returns a viper instance with defaults and environment overrides
// wired up. If cfgFile is empty the default config locations are searched;
// a missing config file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cockpit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cockpit"
	}
	return filepath.Join(home, ".config", "cockpit")
}

// ConfigFile returns the path to the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
