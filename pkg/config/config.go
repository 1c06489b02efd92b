// Package config loads the interaction controller settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/interaction"
	"github.com/dshills/annotate/pkg/validation"
)

// Version is the config file format version.
const Version = "1.0"

// Icons holds the CSS cursor names requested for each pointer state.
type Icons struct {
	Move   string `yaml:"move"`
	Select string `yaml:"select"`
	Draw   string `yaml:"draw"`
}

// Config holds the interaction controller settings.
type Config struct {
	Version       string        `yaml:"version"`
	AnnotateTab   string        `yaml:"annotate_tab"`
	TextKind      string        `yaml:"text_kind"`
	QuietInterval time.Duration `yaml:"quiet_interval"`
	LeaveCursor   string        `yaml:"leave_cursor"`
	Icons         Icons         `yaml:"icons"`
}

// Default returns the built-in settings.
func Default() *Config {
	icons := interaction.DefaultIcons()
	return &Config{
		Version:       Version,
		AnnotateTab:   string(types.TabAnnotate),
		TextKind:      string(types.ToolText),
		QuietInterval: interaction.DefaultQuietInterval,
		LeaveCursor:   string(interaction.LeaveHover),
		Icons: Icons{
			Move:   string(icons.Move),
			Select: string(icons.Select),
			Draw:   string(icons.Draw),
		},
	}
}

// Parse decodes YAML over the defaults and validates the result. Fields
// missing from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if err := validation.ValidateIdentifier("annotate_tab", c.AnnotateTab); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := validation.ValidateIdentifier("text_kind", c.TextKind); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.QuietInterval <= 0 {
		return fmt.Errorf("config: quiet_interval must be positive, got %s", c.QuietInterval)
	}

	switch interaction.LeaveCursor(c.LeaveCursor) {
	case interaction.LeaveHover, interaction.LeaveDraw:
	default:
		return fmt.Errorf("config: invalid leave_cursor: %q (must be one of: hover, draw)", c.LeaveCursor)
	}

	icons := map[string]string{
		"icons.move":   c.Icons.Move,
		"icons.select": c.Icons.Select,
		"icons.draw":   c.Icons.Draw,
	}
	for field, value := range icons {
		if value == "" {
			return fmt.Errorf("config: empty %s", field)
		}
	}

	return nil
}

// ControllerOptions translates the settings into controller options.
func (c *Config) ControllerOptions(logger *slog.Logger) []interaction.Option {
	return []interaction.Option{
		interaction.WithLogger(logger),
		interaction.WithAnnotateTab(types.TabID(c.AnnotateTab)),
		interaction.WithTextKind(types.ToolID(c.TextKind)),
		interaction.WithQuietInterval(c.QuietInterval),
		interaction.WithLeaveCursor(interaction.LeaveCursor(c.LeaveCursor)),
		interaction.WithIcons(interaction.Icons{
			Move:   types.PointerIcon(c.Icons.Move),
			Select: types.PointerIcon(c.Icons.Select),
			Draw:   types.PointerIcon(c.Icons.Draw),
		}),
	}
}
