// Package config loads creditcalc settings from defaults, an optional YAML
// file, a .env file and CREDITCALC_* environment variables, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/loanerror"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output formats accepted by output.format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// OutputConfig controls how results are rendered. Results go to File when
// it is set and to stdout otherwise.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// CSVConfig controls CSV rendering of schedules.
type CSVConfig struct {
	Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
	IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
}

// Limits bounds the loan inputs accepted by the commands.
type Limits struct {
	MaxPrincipal float64 `mapstructure:"max_principal" yaml:"max_principal"`
	MaxPeriods   int     `mapstructure:"max_periods" yaml:"max_periods"`
	MaxRate      float64 `mapstructure:"max_rate" yaml:"max_rate"`
}

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	Limits Limits       `mapstructure:"limits" yaml:"limits"`
}

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once.
// It returns the file that was loaded, or "" if none was found.
func LoadEnv() string {
	var loaded string
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err == nil {
				loaded = candidate
			}
			return
		}
	})
	return loaded
}

// InitializeConfig builds the configuration. configFile may be empty, in
// which case creditcalc.yaml is searched in $HOME/.creditcalc, .creditcalc and
// the working directory.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("creditcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.creditcalc")
		v.AddConfigPath(".creditcalc")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CREDITCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", "CREDITCALC_LOG_LEVEL", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.file", "")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("limits.max_principal", 1e9)
	v.SetDefault("limits.max_periods", 600)
	v.SetDefault("limits.max_rate", 200.0)
}

// Validate checks the configuration after flag overrides have been applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	switch strings.ToLower(cfg.Output.Format) {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
	default:
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	if len([]rune(cfg.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	if cfg.Limits.MaxPrincipal <= 0 || cfg.Limits.MaxPeriods <= 0 || cfg.Limits.MaxRate <= 0 {
		return fmt.Errorf("limits must be positive, got principal=%g periods=%d rate=%g",
			cfg.Limits.MaxPrincipal, cfg.Limits.MaxPeriods, cfg.Limits.MaxRate)
	}

	return nil
}

// Check rejects parameters above the configured limits. Missing values are skipped.
func (l Limits) Check(p loan.Parameters) error {
	if p.Principal != nil && *p.Principal > l.MaxPrincipal {
		return loanerror.TooLarge("principal", *p.Principal, l.MaxPrincipal)
	}
	if p.Payment != nil && *p.Payment > l.MaxPrincipal {
		return loanerror.TooLarge("payment", *p.Payment, l.MaxPrincipal)
	}
	if p.Periods != nil && *p.Periods > l.MaxPeriods {
		return loanerror.TooLarge("periods", float64(*p.Periods), float64(l.MaxPeriods))
	}
	if p.AnnualInterestRatePercent != nil && *p.AnnualInterestRatePercent > l.MaxRate {
		return loanerror.TooLarge("interest", *p.AnnualInterestRatePercent, l.MaxRate)
	}
	return nil
}
