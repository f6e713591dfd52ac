// Package config loads the demo host's settings through viper: defaults,
// an optional YAML file, and TAPFIELD_* environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iw2rmb/tapfield/field"
)

// EnvPrefix prefixes environment overrides, e.g. TAPFIELD_FIELD_WIDTH.
const EnvPrefix = "TAPFIELD"

// Config is the complete demo configuration.
type Config struct {
	Field    FieldConfig    `mapstructure:"field"`
	Gesture  GestureConfig  `mapstructure:"gesture"`
	Popup    PopupConfig    `mapstructure:"popup"`
	Keyboard KeyboardConfig `mapstructure:"keyboard"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FieldConfig sizes the field in terminal cells.
type FieldConfig struct {
	Text            string `mapstructure:"text"`
	Width           int    `mapstructure:"width"`
	Height          int    `mapstructure:"height"`
	BlinkIntervalMs int    `mapstructure:"blink_interval_ms"`
}

// GestureConfig tunes tap and long-press recognition. TapSlop is in cells.
type GestureConfig struct {
	TapIntervalMs    int     `mapstructure:"tap_interval_ms"`
	LongPressDelayMs int     `mapstructure:"long_press_delay_ms"`
	TapSlop          float64 `mapstructure:"tap_slop"`
}

// PopupConfig tunes the suggestion popup animation.
type PopupConfig struct {
	AppearMs    int     `mapstructure:"appear_ms"`
	DisappearMs int     `mapstructure:"disappear_ms"`
	Damping     float64 `mapstructure:"damping"`
}

// KeyboardConfig carries the input traits reported to the field.
type KeyboardConfig struct {
	// Mode is one of "default", "email", "url".
	Mode         string `mapstructure:"mode"`
	ReturnKey    int    `mapstructure:"return_key"`
	KeyboardType int    `mapstructure:"keyboard_type"`
}

// LoggingConfig controls the JSON debug log.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	// Dir holds debug.log; empty means the config directory.
	Dir string `mapstructure:"dir"`
}

func Default() *Config {
	return &Config{
		Field: FieldConfig{
			Width:           48,
			Height:          7,
			BlinkIntervalMs: 500,
		},
		Gesture: GestureConfig{
			TapIntervalMs:    300,
			LongPressDelayMs: 500,
			TapSlop:          1,
		},
		Popup: PopupConfig{
			AppearMs:    300,
			DisappearMs: 200,
			Damping:     0.7,
		},
		Keyboard: KeyboardConfig{
			Mode: "default",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// SetDefaults registers every key's default on v so that env overrides
// resolve even without a config file.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("field.text", d.Field.Text)
	v.SetDefault("field.width", d.Field.Width)
	v.SetDefault("field.height", d.Field.Height)
	v.SetDefault("field.blink_interval_ms", d.Field.BlinkIntervalMs)

	v.SetDefault("gesture.tap_interval_ms", d.Gesture.TapIntervalMs)
	v.SetDefault("gesture.long_press_delay_ms", d.Gesture.LongPressDelayMs)
	v.SetDefault("gesture.tap_slop", d.Gesture.TapSlop)

	v.SetDefault("popup.appear_ms", d.Popup.AppearMs)
	v.SetDefault("popup.disappear_ms", d.Popup.DisappearMs)
	v.SetDefault("popup.damping", d.Popup.Damping)

	v.SetDefault("keyboard.mode", d.Keyboard.Mode)
	v.SetDefault("keyboard.return_key", d.Keyboard.ReturnKey)
	v.SetDefault("keyboard.keyboard_type", d.Keyboard.KeyboardType)

	v.SetDefault("logging.enabled", d.Logging.Enabled)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
}

// NewViper returns a viper instance with defaults and env overrides wired.
// cfgFile, when set, is used instead of searching the config paths.
func NewViper(cfgFile string) *viper.Viper {
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
	// TAPFIELD_FIELD_WIDTH for field.width.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load unmarshals and validates the configuration held by v.
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

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tapfield")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tapfield"
	}
	return filepath.Join(home, ".config", "tapfield")
}

// LogDir resolves where debug.log goes.
func (c *Config) LogDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	return ConfigDir()
}

// Traits converts the keyboard section to field input traits.
func (c *Config) Traits() field.InputTraits {
	return field.InputTraits{
		Mode:         field.ParseKeyboardMode(strings.ToLower(c.Keyboard.Mode)),
		ReturnKey:    c.Keyboard.ReturnKey,
		KeyboardType: c.Keyboard.KeyboardType,
	}
}

// FieldConfig fills the configurable parts of base. Host, hooks, and
// logger stay as the caller set them.
func (c *Config) FieldConfig(base field.Config) field.Config {
	base.Text = c.Field.Text
	base.Width = float64(c.Field.Width)
	base.Height = float64(c.Field.Height)
	base.CellSize = 1
	base.Metrics = field.CellMetrics()
	base.BlinkInterval = ms(c.Field.BlinkIntervalMs)
	base.Gestures = field.GestureConfig{
		TapInterval:    ms(c.Gesture.TapIntervalMs),
		LongPressDelay: ms(c.Gesture.LongPressDelayMs),
		TapSlop:        c.Gesture.TapSlop,
	}
	base.Popup = field.PopupConfig{
		AppearDuration:    ms(c.Popup.AppearMs),
		DisappearDuration: ms(c.Popup.DisappearMs),
		Damping:           c.Popup.Damping,
	}
	base.Traits = c.Traits()
	return base
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
