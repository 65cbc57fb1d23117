package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Combat  CombatConfig  `mapstructure:"combat"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
	Replay  ReplayConfig  `mapstructure:"replay"`
	UI      UIConfig      `mapstructure:"ui"`
}

// CombatConfig holds combat rules that may vary between runs
type CombatConfig struct {
	InitialHP      InitialHPConfig `mapstructure:"initial_hp"`
	ElfAttackBonus int             `mapstructure:"elf_attack_bonus"`
	Mode           string          `mapstructure:"mode"`
	MaxRounds      int             `mapstructure:"max_rounds"`
}

// InitialHPConfig holds starting hit points per faction
type InitialHPConfig struct {
	Goblin int `mapstructure:"goblin"`
	Elf    int `mapstructure:"elf"`
}

// SearchConfig bounds the minimum elf bonus search
type SearchConfig struct {
	MaxBonus int `mapstructure:"max_bonus"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Events bool   `mapstructure:"events"`
}

// ReplayConfig controls replay export
type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig holds viewer settings
type UIConfig struct {
	Window        WindowConfig `mapstructure:"window"`
	TileSize      int          `mapstructure:"tile_size"`
	RoundInterval int          `mapstructure:"round_interval"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// Mode names accepted by combat.mode
const (
	ModeToCompletion    = "to_completion"
	ModeAbortOnElfDeath = "abort_on_elf_death"
)

var (
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	// Combat defaults
	v.SetDefault("combat.initial_hp.goblin", 200)
	v.SetDefault("combat.initial_hp.elf", 200)
	v.SetDefault("combat.elf_attack_bonus", 0)
	v.SetDefault("combat.mode", ModeToCompletion)
	v.SetDefault("combat.max_rounds", 10000)

	v.SetDefault("search.max_bonus", 200)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", false)

	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.path", "replay.jsonl")

	// UI defaults
	v.SetDefault("ui.window.width", 800)
	v.SetDefault("ui.window.height", 600)
	v.SetDefault("ui.window.title", "Cave Skirmish")
	v.SetDefault("ui.tile_size", 24)
	v.SetDefault("ui.round_interval", 20)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/cave-skirmish")
	}

	v.SetEnvPrefix("CAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search
		// path only ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	Get()
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	Get()
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	Get()
	return v.GetInt(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	Get()
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Changes that fail
// validation are dropped and the previous values stay in effect.
func WatchConfig(onChange func()) {
	Get()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange()
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Combat.InitialHP.Goblin <= 0 || c.Combat.InitialHP.Elf <= 0 {
		return fmt.Errorf("combat.initial_hp values must be positive")
	}
	if c.Combat.ElfAttackBonus < 0 {
		return fmt.Errorf("combat.elf_attack_bonus must be non-negative")
	}
	switch c.Combat.Mode {
	case ModeToCompletion, ModeAbortOnElfDeath:
	default:
		return fmt.Errorf("combat.mode must be %q or %q, got %q", ModeToCompletion, ModeAbortOnElfDeath, c.Combat.Mode)
	}
	if c.Combat.MaxRounds <= 0 {
		return fmt.Errorf("combat.max_rounds must be positive")
	}

	if c.Search.MaxBonus < 0 {
		return fmt.Errorf("search.max_bonus must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.Replay.Enabled && c.Replay.Path == "" {
		return fmt.Errorf("replay.path is required when replay is enabled")
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.TileSize <= 0 {
		return fmt.Errorf("ui.tile_size must be positive")
	}
	if c.UI.RoundInterval <= 0 {
		return fmt.Errorf("ui.round_interval must be positive")
	}

	return nil
}
