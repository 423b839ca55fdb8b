package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Out        string `mapstructure:"out"`
	Format     string `mapstructure:"format"`
	Indent     string `mapstructure:"indent"`
	StrictUTF8 bool   `mapstructure:"strict_utf8"`
	// Inputs larger than this many bytes are rejected. 0 means no limit.
	MaxSize  int    `mapstructure:"max_size"`
	LogLevel string `mapstructure:"log_level"`
}

const envPrefix = "WASM_READ"

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"out":         "out",
	"format":      "format",
	"indent":      "indent",
	"strict-utf8": "strict_utf8",
	"max-size":    "max_size",
	"log-level":   "log_level",
}

// Load reads configuration from defaults, then the file at configPath (if
// any), then WASM_READ_* environment variables, then flags that were set
// explicitly. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("out", "-")
	v.SetDefault("format", "json")
	v.SetDefault("indent", "auto")
	v.SetDefault("strict_utf8", false)
	v.SetDefault("max_size", 0)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Indent {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("indent must be auto, always or never, got %q", c.Indent)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("max_size must not be negative, got %d", c.MaxSize)
	}
	return nil
}
