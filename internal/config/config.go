// Package config provides configuration loading, defaulting, and validation
// for the attendance bot. Values come from config.yaml, BOT_* environment
// variables, and built-in defaults, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Watermark modes for the message poller. In shared mode a single
// high-water-mark timestamp is threaded through all monitored channels; in
// per-channel mode each channel tracks its own.
const (
	WatermarkShared     = "shared"
	WatermarkPerChannel = "per_channel"
)

// Config holds all application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Timezone  string          `mapstructure:"timezone"  validate:"required"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Channels  ChannelsConfig  `mapstructure:"channels"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Poller    PollerConfig    `mapstructure:"poller"`
	Triggers  TriggerConfig   `mapstructure:"triggers"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// GatewayConfig holds chat gateway connection settings.
type GatewayConfig struct {
	URL   string `mapstructure:"url"   validate:"required,url"`
	Token string `mapstructure:"token" validate:"required"`
	Debug bool   `mapstructure:"debug"`

	// RequestTimeout bounds individual gateway HTTP calls. Zero disables
	// the bound, matching the historical behavior where a gateway hang
	// stalls the loop until the call returns.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=0"`
}

// ChannelsConfig identifies the channels the bot works with.
type ChannelsConfig struct {
	Attendance string   `mapstructure:"attendance" validate:"required"`
	Birthday   string   `mapstructure:"birthday"   validate:"required"`
	Monitor    []string `mapstructure:"monitor"    validate:"required,min=1"`
}

// DatabaseConfig holds the sqlite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// PollerConfig controls the message polling loop cadence.
type PollerConfig struct {
	Interval      time.Duration `mapstructure:"interval"       validate:"min=100ms,max=1m"`
	ErrorBackoff  time.Duration `mapstructure:"error_backoff"  validate:"min=1s,max=10m"`
	WatermarkMode string        `mapstructure:"watermark_mode" validate:"oneof=shared per_channel"`
}

// TriggerConfig holds the wall-clock times for the loop's time-triggered
// actions, in HH:MM format.
type TriggerConfig struct {
	BirthdayTime     string `mapstructure:"birthday_time"       validate:"required"`
	AutoCheckoutTime string `mapstructure:"auto_checkout_time"  validate:"required"`

	// DebugCheckoutTime replaces AutoCheckoutTime when gateway debug mode
	// is enabled, so auto-checkout can be exercised without waiting a day.
	DebugCheckoutTime string `mapstructure:"debug_checkout_time" validate:"required"`
}

// SchedulerConfig configures background maintenance tasks.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a named task on a cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Load loads and validates configuration from defaults, the config file at
// the given path, and BOT_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, defaults and env vars apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := ParseClockTime(cfg.Triggers.BirthdayTime); err != nil {
		return nil, fmt.Errorf("invalid triggers.birthday_time: %w", err)
	}
	if _, err := ParseClockTime(cfg.Triggers.AutoCheckoutTime); err != nil {
		return nil, fmt.Errorf("invalid triggers.auto_checkout_time: %w", err)
	}
	if _, err := ParseClockTime(cfg.Triggers.DebugCheckoutTime); err != nil {
		return nil, fmt.Errorf("invalid triggers.debug_checkout_time: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("timezone", "Asia/Seoul")

	v.SetDefault("gateway.request_timeout", time.Duration(0))
	v.SetDefault("gateway.debug", false)

	v.SetDefault("database.path", "attendance.db")

	v.SetDefault("poller.interval", time.Second)
	v.SetDefault("poller.error_backoff", 5*time.Second)
	v.SetDefault("poller.watermark_mode", WatermarkShared)

	v.SetDefault("triggers.birthday_time", "12:00")
	v.SetDefault("triggers.auto_checkout_time", "23:59")
	v.SetDefault("triggers.debug_checkout_time", "00:00")

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 30 4 * * *")
	v.SetDefault("scheduler.tasks.record_repair.enabled", true)
	v.SetDefault("scheduler.tasks.record_repair.schedule", "0 45 4 * * *")
}

// ClockTime is a wall-clock hour and minute.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses an HH:MM string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("expected HH:MM: %w", err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Matches reports whether the given instant falls in this clock minute.
func (c ClockTime) Matches(t time.Time) bool {
	return t.Hour() == c.Hour && t.Minute() == c.Minute
}

// CheckoutTime returns the effective auto-checkout trigger time, honoring
// debug mode.
func (cfg *Config) CheckoutTime() ClockTime {
	s := cfg.Triggers.AutoCheckoutTime
	if cfg.Gateway.Debug {
		s = cfg.Triggers.DebugCheckoutTime
	}
	ct, _ := ParseClockTime(s) // validated at load
	return ct
}

// BirthdayTime returns the birthday greeting trigger time.
func (cfg *Config) BirthdayTime() ClockTime {
	ct, _ := ParseClockTime(cfg.Triggers.BirthdayTime) // validated at load
	return ct
}

// Location returns the configured fixed time zone.
func (cfg *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(cfg.Timezone) // validated at load
	return loc
}
