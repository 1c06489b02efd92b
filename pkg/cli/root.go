package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/annotate/pkg/config"
)

const (
	// Version is the current version of annotate
	Version = "1.0.0"
)

// Config holds the global configuration for the annotate CLI
type Config struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for annotate
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "annotate - Pointer interaction replay for the annotation editor",
		Long: `annotate drives the annotation editor's pointer interaction controller
from scripted scenarios. It replays pointer events against the controller,
prints the intents it dispatches, and keeps a journal of every replay.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.annotate)")

	cmd.AddCommand(NewReplayCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewScenarioCommand())
	cmd.AddCommand(NewJournalCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

// initConfig initializes the configuration directory and default files
func initConfig() error {
	// Environment variable always takes priority (for testing)
	if envDir := os.Getenv("ANNOTATE_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".annotate")
	}

	dirs := []string{GlobalConfig.ConfigDir, GetScenariosDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configFile := GetConfigPath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := config.Default().Save(configFile); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return nil
}

// GetConfigDir returns the configuration directory path
// Priority order: 1) ANNOTATE_CONFIG_DIR env var, 2) GlobalConfig.ConfigDir, 3) ~/.annotate
func GetConfigDir() string {
	if envDir := os.Getenv("ANNOTATE_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home dir cannot be determined
			return ".annotate"
		}
		return filepath.Join(homeDir, ".annotate")
	}
	return GlobalConfig.ConfigDir
}

// GetConfigPath returns the path to the controller settings file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetScenariosDir returns the scenario store directory path
func GetScenariosDir() string {
	return filepath.Join(GetConfigDir(), "scenarios")
}

// GetJournalPath returns the path to the intent journal database
func GetJournalPath() string {
	return filepath.Join(GetConfigDir(), "journal.db")
}

// newLogger returns a debug text logger on stderr when --debug is set and a
// discarding logger otherwise.
func newLogger(cmd *cobra.Command) *slog.Logger {
	if !GlobalConfig.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadConfig reads the controller settings from the config directory
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
