package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/internal/logging"
	"github.com/signalsfoundry/station-journal/internal/observability"
	"github.com/signalsfoundry/station-journal/model"
	"github.com/signalsfoundry/station-journal/timectrl"
)

// EnvPrefix prefixes every environment override, e.g. STATION_LOG_LEVEL.
const EnvPrefix = "STATION"

// RandomVersion asks for a randomly drawn station version.
const RandomVersion = -1

// ErrInvalidBounds is returned when a category's installation bounds cannot
// be used.
var ErrInvalidBounds = errors.New("invalid installation bounds")

// StationConfig controls how the station is built.
type StationConfig struct {
	Name    string                         `mapstructure:"name" toml:"name"`
	Version int                            `mapstructure:"version" toml:"version"`
	Seed    uint64                         `mapstructure:"seed" toml:"seed"`
	Bounds  map[string]model.InstallBounds `mapstructure:"bounds" toml:"bounds"`
}

// LogConfig mirrors logging.Config for file and flag configuration.
type LogConfig struct {
	Level   string `mapstructure:"level" toml:"level"`
	Format  string `mapstructure:"format" toml:"format"`
	Backend string `mapstructure:"backend" toml:"backend"`
}

// TracingConfig mirrors observability.TracingConfig.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" toml:"enabled"`
	ServiceName string  `mapstructure:"service_name" toml:"service_name"`
	Exporter    string  `mapstructure:"exporter" toml:"exporter"`
	Endpoint    string  `mapstructure:"endpoint" toml:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio" toml:"sample_ratio"`
}

// MetricsConfig controls the end-of-run metrics dump. An empty Output
// disables it and "-" writes to stdout.
type MetricsConfig struct {
	Output string `mapstructure:"output" toml:"output"`
}

// AutopilotConfig controls unattended runs.
type AutopilotConfig struct {
	Days int    `mapstructure:"days" toml:"days"`
	Tick string `mapstructure:"tick" toml:"tick"`
	Mode string `mapstructure:"mode" toml:"mode"`
}

// JournalConfig controls the printed journal.
type JournalConfig struct {
	Header string `mapstructure:"header" toml:"header"`
}

// Config holds all runtime configuration for a station run.
// Values are populated from .station.yaml, STATION_* env vars, and CLI flags.
type Config struct {
	Station   StationConfig   `mapstructure:"station" toml:"station"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing" toml:"tracing"`
	Metrics   MetricsConfig   `mapstructure:"metrics" toml:"metrics"`
	Autopilot AutopilotConfig `mapstructure:"autopilot" toml:"autopilot"`
	Journal   JournalConfig   `mapstructure:"journal" toml:"journal"`
}

// SetDefaults registers every key with its built-in default. Keys must be
// known to viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("station.name", "")
	v.SetDefault("station.version", RandomVersion)
	v.SetDefault("station.seed", 0)
	for kind, b := range model.DefaultBounds() {
		v.SetDefault("station.bounds."+kind.String()+".min", b.Min)
		v.SetDefault("station.bounds."+kind.String()+".max", b.Max)
	}
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.backend", logging.BackendSlog)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "station-journal")
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("metrics.output", "")
	v.SetDefault("autopilot.days", 30)
	v.SetDefault("autopilot.tick", "0s")
	v.SetDefault("autopilot.mode", timectrl.Accelerated.String())
	v.SetDefault("journal.header", "STATION LOG")
}

// BindEnv makes STATION_<SECTION>_<KEY> override the matching key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from v, applying built-in defaults for any
// values not set by config file, environment, or flags. Without a config
// file, LOG_* and STATION_TRACING_* variables replace the log and tracing
// defaults. A nil v uses the global viper instance.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)
	if v.ConfigFileUsed() == "" {
		if err := setEnvDefaults(v); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setEnvDefaults takes the log and tracing defaults from the plain LOG_* and
// STATION_TRACING_* variables. Flags and keyed STATION_* variables still win.
func setEnvDefaults(v *viper.Viper) error {
	logCfg, err := logging.ConfigFromEnv()
	if err != nil {
		return err
	}
	v.SetDefault("log.level", logCfg.Level)
	v.SetDefault("log.format", logCfg.Format)
	v.SetDefault("log.backend", logCfg.Backend)

	traceCfg, err := observability.TracingConfigFromEnv()
	if err != nil {
		return err
	}
	v.SetDefault("tracing.enabled", traceCfg.Enabled)
	v.SetDefault("tracing.service_name", traceCfg.ServiceName)
	v.SetDefault("tracing.exporter", traceCfg.Exporter)
	v.SetDefault("tracing.endpoint", traceCfg.Endpoint)
	v.SetDefault("tracing.sample_ratio", traceCfg.SampleRatio)
	return nil
}

// Validate checks value ranges. A minimum above the maximum is accepted; the
// minimum wins at installation time.
func (c Config) Validate() error {
	if c.Station.Version < RandomVersion || c.Station.Version > math.MaxUint8 {
		return fmt.Errorf("station.version %d out of range [-1,255]", c.Station.Version)
	}
	for key, b := range c.Station.Bounds {
		if _, err := model.ParseCategoryKind(key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBounds, err)
		}
		if b.Min < 0 || b.Max < 0 {
			return fmt.Errorf("%w: %s min %d max %d must not be negative", ErrInvalidBounds, key, b.Min, b.Max)
		}
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio %v out of range [0,1]", c.Tracing.SampleRatio)
	}
	if c.Autopilot.Days < 0 {
		return fmt.Errorf("autopilot.days %d must not be negative", c.Autopilot.Days)
	}
	if _, err := c.Autopilot.TickDuration(); err != nil {
		return err
	}
	switch c.Autopilot.Mode {
	case timectrl.RealTime.String(), timectrl.Accelerated.String():
	default:
		return fmt.Errorf("autopilot.mode %q must be realtime or accelerated", c.Autopilot.Mode)
	}
	return nil
}

// TickDuration parses the autopilot tick.
func (a AutopilotConfig) TickDuration() (time.Duration, error) {
	if a.Tick == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Tick)
	if err != nil {
		return 0, fmt.Errorf("autopilot.tick: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("autopilot.tick %s must not be negative", d)
	}
	return d, nil
}

// InstallBounds converts the configured bounds to the station's form.
// Unknown keys were rejected by Validate and are skipped here.
func (s StationConfig) InstallBounds() map[model.CategoryKind]model.InstallBounds {
	out := make(map[model.CategoryKind]model.InstallBounds, len(s.Bounds))
	for key, b := range s.Bounds {
		kind, err := model.ParseCategoryKind(key)
		if err != nil {
			continue
		}
		out[kind] = b
	}
	return out
}

// Logging converts the log section to a logging.Config.
func (l LogConfig) Logging() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, Backend: l.Backend}
}

// Observability converts the tracing section to an observability.TracingConfig.
func (t TracingConfig) Observability() observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     t.Enabled,
		ServiceName: t.ServiceName,
		Exporter:    strings.ToLower(t.Exporter),
		Endpoint:    t.Endpoint,
		SampleRatio: t.SampleRatio,
	}
}

// ToTOML renders the configuration as TOML.
func (c Config) ToTOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// OnChange reloads the configuration whenever the config file changes and
// passes the result to fn. It does nothing when no config file is in use.
func OnChange(v *viper.Viper, fn func(fsnotify.Event, Config, error)) bool {
	if v == nil {
		v = viper.GetViper()
	}
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Load(v)
		fn(e, cfg, err)
	})
	v.WatchConfig()
	return true
}
