// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// Commands depend on it rather than on the concrete struct.
type Interface interface {
	Logger() LoggerConfig
	Network() NetworkConfig
	Fetch() FetchConfig
	Render() RenderConfig

	// Network Setters
	SetNetworkRequestTimeout(d time.Duration)
	SetNetworkReadBufferSize(n int)

	// Fetch Setters
	SetFetchConcurrency(n int)
	SetFetchRequestsPerSecond(rps float64)

	// Render Setters
	SetRenderFormat(format string)
	SetRenderIndent(n int)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	NetworkCfg NetworkConfig `mapstructure:"network" yaml:"network"`
	FetchCfg   FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	RenderCfg  RenderConfig  `mapstructure:"render" yaml:"render"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Network() NetworkConfig { return c.NetworkCfg }
func (c *Config) Fetch() FetchConfig     { return c.FetchCfg }
func (c *Config) Render() RenderConfig   { return c.RenderCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetNetworkRequestTimeout(d time.Duration) { c.NetworkCfg.RequestTimeout = d }
func (c *Config) SetNetworkReadBufferSize(n int)           { c.NetworkCfg.ReadBufferSize = n }

func (c *Config) SetFetchConcurrency(n int)             { c.FetchCfg.Concurrency = n }
func (c *Config) SetFetchRequestsPerSecond(rps float64) { c.FetchCfg.RequestsPerSecond = rps }

func (c *Config) SetRenderFormat(format string) { c.RenderCfg.Format = format }
func (c *Config) SetRenderIndent(n int)         { c.RenderCfg.Indent = n }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// NetworkConfig tunes the dialer and the per-request limits.
type NetworkConfig struct {
	DialTimeout    time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	KeepAlive      time.Duration `mapstructure:"keep_alive" yaml:"keep_alive"`
	NoDelay        bool          `mapstructure:"no_delay" yaml:"no_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	ReadBufferSize int           `mapstructure:"read_buffer_size" yaml:"read_buffer_size"`
	// Headers are added to every request unless the caller sets the same name.
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
}

// FetchConfig bounds batch fetching.
type FetchConfig struct {
	Concurrency       int     `mapstructure:"concurrency" yaml:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" yaml:"burst"`
}

// Supported output formats for rendered documents.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// RenderConfig controls how documents are printed.
type RenderConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Indent int    `mapstructure:"indent" yaml:"indent"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "browsercore")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Network --
	v.SetDefault("network.dial_timeout", "15s")
	v.SetDefault("network.keep_alive", "30s")
	v.SetDefault("network.no_delay", true)
	v.SetDefault("network.request_timeout", "30s")
	v.SetDefault("network.read_buffer_size", 4096)

	// -- Fetch --
	v.SetDefault("fetch.concurrency", 4)
	v.SetDefault("fetch.requests_per_second", 10.0)
	v.SetDefault("fetch.burst", 1)

	// -- Render --
	v.SetDefault("render.format", FormatJSON)
	v.SetDefault("render.indent", 2)
}

// NewKeyReplacer maps nested keys to environment variable names
// (fetch.concurrency -> FETCH_CONCURRENCY once prefixed).
func NewKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.NetworkCfg.Validate(); err != nil {
		return fmt.Errorf("network configuration invalid: %w", err)
	}
	if err := c.FetchCfg.Validate(); err != nil {
		return fmt.Errorf("fetch configuration invalid: %w", err)
	}
	if err := c.RenderCfg.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the network settings.
func (n *NetworkConfig) Validate() error {
	if n.ReadBufferSize <= 0 {
		return fmt.Errorf("read_buffer_size must be a positive integer")
	}
	if n.DialTimeout < 0 || n.RequestTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	for name := range n.Headers {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, ":\r\n") {
			return fmt.Errorf("invalid header name %q", name)
		}
	}
	return nil
}

// Validate checks the fetch settings.
func (f *FetchConfig) Validate() error {
	if f.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	if f.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if f.Burst <= 0 {
		return fmt.Errorf("burst must be a positive integer")
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	switch r.Format {
	case FormatJSON, FormatHTML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatHTML, r.Format)
	}
	if r.Indent < 0 {
		return fmt.Errorf("indent must not be negative")
	}
	return nil
}
