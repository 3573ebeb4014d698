package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SYOSETU"

var ErrUnknownLayout = errors.New("unknown page layout")

type Config struct {
	APIBase     string `mapstructure:"api_base"`
	GeneralHost string `mapstructure:"general_host"`
	AdultHost   string `mapstructure:"adult_host"`
	UserAgent   string `mapstructure:"user_agent"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ResolveTimeout time.Duration `mapstructure:"resolve_timeout"`

	// RetryDelay is the pause before fetching a failed chapter again.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// MaxRetries caps retries per chapter, 0 retries until interrupted.
	MaxRetries int `mapstructure:"max_retries"`

	Layout    string `mapstructure:"layout"`
	OutputDir string `mapstructure:"output_dir"`
	Verbose   bool   `mapstructure:"verbose"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_base", "https://api.syosetu.com")
	v.SetDefault("general_host", "https://ncode.syosetu.com")
	v.SetDefault("adult_host", "https://novel18.syosetu.com")
	v.SetDefault("user_agent", "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0")
	v.SetDefault("connect_timeout", 5*time.Second)
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("resolve_timeout", 5*time.Second)
	v.SetDefault("retry_delay", 2*time.Second)
	v.SetDefault("max_retries", 0)
	v.SetDefault("layout", LayoutCurrent)
	v.SetDefault("output_dir", ".")
	v.SetDefault("verbose", false)
}

// Default returns the built-in configuration without consulting files or
// the environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from cfgFile (optional), SYOSETU_* environment
// variables and whatever flags were bound to v.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIBase = strings.TrimSuffix(cfg.APIBase, "/")
	cfg.GeneralHost = strings.TrimSuffix(cfg.GeneralHost, "/")
	cfg.AdultHost = strings.TrimSuffix(cfg.AdultHost, "/")
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := Layouts[c.Layout]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, c.Layout)
	}
	if c.ConnectTimeout <= 0 || c.Timeout <= 0 || c.ResolveTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay cannot be negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}
	return nil
}

// Host returns the chapter host for the given site variant.
func (c *Config) Host(adult bool) string {
	if adult {
		return c.AdultHost
	}
	return c.GeneralHost
}

// APIEndpoint returns the novel info endpoint for the given site variant.
func (c *Config) APIEndpoint(adult bool) string {
	if adult {
		return c.APIBase + "/novel18api/api/"
	}
	return c.APIBase + "/novelapi/api/"
}

func (c *Config) Selectors() Selectors {
	return Layouts[c.Layout]
}
