package config

import (
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vango-dev/reconcile/internal/errors"
)

const (
	// ConfigName is the config file name without extension.
	ConfigName = "vrecon"

	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "VRECON"

	// DefaultAddr is the default live server address.
	DefaultAddr = "localhost:8080"

	// DefaultReadLimit is the default websocket message size limit in bytes.
	DefaultReadLimit = 1 << 20

	// DefaultShutdownTimeout bounds graceful server shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vrecon"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the complete vrecon configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Output  OutputConfig  `mapstructure:"output"`

	// path is the config file used, empty when none was found.
	path string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level slog.Level `mapstructure:"level"`
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr"`

	// ReadLimit is the maximum size of one websocket message.
	ReadLimit int64 `mapstructure:"read_limit"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics and records engine metrics.
	Enabled bool `mapstructure:"enabled"`

	// Namespace is the metrics namespace.
	Namespace string `mapstructure:"namespace"`
}

// OutputConfig contains CLI output settings.
type OutputConfig struct {
	// Format is the journal output format: text, json or yaml.
	Format string `mapstructure:"format"`

	// Color enables colored text output.
	Color bool `mapstructure:"color"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file path. When empty, Dirs are searched.
	File string

	// Dirs are searched for vrecon.{yaml,yml,json}. Default: current directory.
	Dirs []string

	// Flags are bound by name; see FlagKeys.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"log-level":  "log.level",
	"addr":       "server.addr",
	"read-limit": "server.read_limit",
	"metrics":    "metrics.enabled",
	"format":     "output.format",
	"color":      "output.color",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.read_limit", DefaultReadLimit)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultNamespace)
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.color", true)
}

// New returns a Config holding only the defaults.
func New() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults always decode.
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from defaults, file, environment and flags.
// A missing config file is not an error unless Options.File names one.
func Load(opts Options) (*Config, error) {
	v := newViper()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(ConfigName)
		dirs := opts.Dirs
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !stderrors.As(err, &notFound) {
			return nil, errors.New("E401").
				WithDetail("failed to read config file").
				Wrap(err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.New("E401").WithDetailf("bind flag %q", name).Wrap(err)
				}
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.path = v.ConfigFileUsed()
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.New("E401").
			WithDetail("failed to decode configuration").
			Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.New("E403").WithDetailf("format %q", c.Output.Format)
	}
	if c.Server.ReadLimit <= 0 {
		return errors.New("E401").WithDetailf("server.read_limit must be positive, got %d", c.Server.ReadLimit)
	}
	return nil
}

// Path returns the config file that was read, or "" when none was.
func (c *Config) Path() string {
	return c.path
}
