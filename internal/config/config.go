// Package config defines the application configuration and loads it from
// YAML with environment overrides.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iwvelando/investment-form/pkg/constants"
	"github.com/iwvelando/investment-form/pkg/validation"
)

// EnvPrefix prefixes environment overrides, e.g. INVESTMENT_FORM_VALUATION_URL.
const EnvPrefix = "INVESTMENT_FORM"

// Configuration holds all configuration for investment-form.
type Configuration struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging,omitempty"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server,omitempty"`
	Valuation ValuationConfig `mapstructure:"valuation" yaml:"valuation,omitempty"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address            string `mapstructure:"address" yaml:"address,omitempty"`
	MaxBodySize        string `mapstructure:"maxBodySize" yaml:"maxBodySize,omitempty"`
	SessionIdleTimeout string `mapstructure:"sessionIdleTimeout" yaml:"sessionIdleTimeout,omitempty"`

	maxBodyBytes int64
	idleTimeout  time.Duration
}

// ValuationConfig points at the external valuation API.
type ValuationConfig struct {
	URL     string `mapstructure:"url" yaml:"url,omitempty"`
	Timeout string `mapstructure:"timeout" yaml:"timeout,omitempty"`

	timeout time.Duration
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, yaml
}

// MaxBodyBytes returns the parsed request body limit.
func (s ServerConfig) MaxBodyBytes() int64 {
	return s.maxBodyBytes
}

// IdleTimeout returns the parsed session idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return s.idleTimeout
}

// TimeoutDuration returns the parsed valuation timeout.
func (v ValuationConfig) TimeoutDuration() time.Duration {
	return v.timeout
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", constants.LogFormatJSON)
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("server.sessionIdleTimeout", constants.DefaultSessionIdleTimeout)
	v.SetDefault("valuation.url", constants.DefaultValuationURL)
	v.SetDefault("valuation.timeout", constants.DefaultValuationTimeout)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Defaults returns the configuration used when no file is given; environment
// overrides still apply.
func Defaults() (*Configuration, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (c *Configuration) normalize() error {
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}

	size, err := ParseSize(c.Server.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.Server.maxBodyBytes = size

	idle, err := time.ParseDuration(strings.TrimSpace(c.Server.SessionIdleTimeout))
	if err != nil {
		return fmt.Errorf("invalid server.sessionIdleTimeout %q: %w", c.Server.SessionIdleTimeout, err)
	}
	c.Server.idleTimeout = idle

	if strings.TrimSpace(c.Valuation.URL) == "" {
		return fmt.Errorf("valuation.url must not be empty")
	}
	timeout, err := time.ParseDuration(strings.TrimSpace(c.Valuation.Timeout))
	if err != nil {
		return fmt.Errorf("invalid valuation.timeout %q: %w", c.Valuation.Timeout, err)
	}
	c.Valuation.timeout = timeout
	return nil
}
