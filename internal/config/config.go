// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds movement and player tuning values for the real-time engine.
type GameConfig struct {
	// BaseSpeed is the player's walking speed in world units per second.
	BaseSpeed float64 `mapstructure:"base_speed"`
	// SprintMultiplier scales BaseSpeed while sprinting with stamina available.
	SprintMultiplier float64 `mapstructure:"sprint_multiplier"`
	// MaxStamina is the player's stamina ceiling.
	MaxStamina float64 `mapstructure:"max_stamina"`
	// StaminaDrainPerSecond is stamina lost per second while sprinting.
	StaminaDrainPerSecond float64 `mapstructure:"stamina_drain_per_second"`
	// StaminaRegenPerSecond is stamina recovered per second while not sprinting.
	StaminaRegenPerSecond float64 `mapstructure:"stamina_regen_per_second"`
	// PlayerHalfExtent is half the player's collision box width/height in world units.
	PlayerHalfExtent float64 `mapstructure:"player_half_extent"`
	// TransitionCooldown is the minimum interval between room transitions.
	TransitionCooldown time.Duration `mapstructure:"transition_cooldown"`
	// TransitionDelay is how long movement stays disabled after entering a room.
	TransitionDelay time.Duration `mapstructure:"transition_delay"`
	// InventoryCapacity is the maximum number of items the player can carry.
	InventoryCapacity int `mapstructure:"inventory_capacity"`
	// MaxHealth is the player's health ceiling.
	MaxHealth int `mapstructure:"max_health"`
}

// SaveConfig holds save-file persistence settings.
type SaveConfig struct {
	// Dir is the directory where save files are written.
	Dir string `mapstructure:"dir"`
	// MaxRetained is how many save files to keep; older ones are pruned. 0 = unlimited.
	MaxRetained int `mapstructure:"max_retained"`
}

// ControlsConfig maps movement and interaction actions to key names.
// Bindings are configuration, not process-wide constants, so front ends can
// remap them per player.
type ControlsConfig struct {
	Up       string `mapstructure:"up"`
	Down     string `mapstructure:"down"`
	Left     string `mapstructure:"left"`
	Right    string `mapstructure:"right"`
	Sprint   string `mapstructure:"sprint"`
	Interact string `mapstructure:"interact"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Saves    SaveConfig     `mapstructure:"saves"`
	Controls ControlsConfig `mapstructure:"controls"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSaves(c.Saves); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateControls(c.Controls); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.BaseSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("game.base_speed must be > 0, got %f", g.BaseSpeed))
	}
	if g.SprintMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("game.sprint_multiplier must be >= 1, got %f", g.SprintMultiplier))
	}
	if g.MaxStamina <= 0 {
		errs = append(errs, fmt.Sprintf("game.max_stamina must be > 0, got %f", g.MaxStamina))
	}
	if g.StaminaDrainPerSecond < 0 {
		errs = append(errs, "game.stamina_drain_per_second must not be negative")
	}
	if g.StaminaRegenPerSecond < 0 {
		errs = append(errs, "game.stamina_regen_per_second must not be negative")
	}
	if g.PlayerHalfExtent <= 0 {
		errs = append(errs, fmt.Sprintf("game.player_half_extent must be > 0, got %f", g.PlayerHalfExtent))
	}
	if g.TransitionCooldown < 0 {
		errs = append(errs, "game.transition_cooldown must not be negative")
	}
	if g.TransitionDelay < 0 {
		errs = append(errs, "game.transition_delay must not be negative")
	}
	if g.InventoryCapacity < 1 {
		errs = append(errs, fmt.Sprintf("game.inventory_capacity must be >= 1, got %d", g.InventoryCapacity))
	}
	if g.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("game.max_health must be >= 1, got %d", g.MaxHealth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSaves(s SaveConfig) error {
	var errs []string
	if s.Dir == "" {
		errs = append(errs, "saves.dir must not be empty")
	}
	if s.MaxRetained < 0 {
		errs = append(errs, fmt.Sprintf("saves.max_retained must be >= 0, got %d", s.MaxRetained))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateControls(c ControlsConfig) error {
	bindings := map[string]string{
		"controls.up":       c.Up,
		"controls.down":     c.Down,
		"controls.left":     c.Left,
		"controls.right":    c.Right,
		"controls.sprint":   c.Sprint,
		"controls.interact": c.Interact,
	}
	seen := make(map[string]string, len(bindings))
	var errs []string
	for name, key := range bindings {
		if key == "" {
			errs = append(errs, name+" must not be empty")
			continue
		}
		if other, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("%s and %s are both bound to %q", other, name, key))
		}
		seen[key] = name
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads a YAML configuration file, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BLACKWOOD_ prefix
	v.SetEnvPrefix("BLACKWOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no config file is given.
//
// Postcondition: the returned Config passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal from defaults cannot fail: the default keys match the struct tags.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.base_speed", 160.0)
	v.SetDefault("game.sprint_multiplier", 1.6)
	v.SetDefault("game.max_stamina", 100.0)
	v.SetDefault("game.stamina_drain_per_second", 25.0)
	v.SetDefault("game.stamina_regen_per_second", 10.0)
	v.SetDefault("game.player_half_extent", 12.0)
	v.SetDefault("game.transition_cooldown", "500ms")
	v.SetDefault("game.transition_delay", "250ms")
	v.SetDefault("game.inventory_capacity", 10)
	v.SetDefault("game.max_health", 100)

	v.SetDefault("saves.dir", "saves")
	v.SetDefault("saves.max_retained", 10)

	v.SetDefault("controls.up", "w")
	v.SetDefault("controls.down", "s")
	v.SetDefault("controls.left", "a")
	v.SetDefault("controls.right", "d")
	v.SetDefault("controls.sprint", "shift")
	v.SetDefault("controls.interact", "e")
}
