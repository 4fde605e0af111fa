package toolwarn

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables overriding the configuration
const EnvPrefix = "TOOLWARN"

// Config holds the process-wide settings of an ingestion session.
type Config struct {
	// LogDir receives the timestamped diagnostic log files
	LogDir string `mapstructure:"log_dir" yaml:"log_dir"`
	// OutputDir receives generated reports
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`

	// Clock names the log file. Nil means time.Now.
	Clock func() time.Time `mapstructure:"-" yaml:"-"`
}

// SetDefaults initializes the default values of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_dir", "logs")
	v.SetDefault("output_dir", "outputs")
	v.SetDefault("log_level", "debug")
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// LoadConfig reads the configuration from the defaults, the optional YAML
// file at path and TOOLWARN_ environment variables, in increasing order of
// precedence. A leading ~ in the directories is expanded.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return decode(v)
}

// ReadFrom implements the io.ReaderFrom interface. The YAML read from r
// replaces the fields it sets; the environment still takes precedence.
func (c *Config) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	v := newViper()
	v.SetDefault("log_dir", c.LogDir)
	v.SetDefault("output_dir", c.OutputDir)
	v.SetDefault("log_level", c.LogLevel)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return int64(len(data)), err
	}
	loaded, err := decode(v)
	if err != nil {
		return int64(len(data)), err
	}
	loaded.Clock = c.Clock
	*c = *loaded
	return int64(len(data)), nil
}

// WriteTo implements the io.WriterTo interface. This should be used to
// save or print out the configuration as YAML.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// now returns the configured clock reading
func (c *Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	var err error
	if cfg.LogDir, err = homedir.Expand(cfg.LogDir); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = homedir.Expand(cfg.OutputDir); err != nil {
		return nil, err
	}
	return &cfg, nil
}
