// Package config loads application configuration from an optional
// config.yaml plus SPLITSIG_* environment variables, and installs the
// global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Test   TestConfig   `yaml:"test" mapstructure:"test"`
	Power  PowerConfig  `yaml:"power" mapstructure:"power"`
	Charts ChartsConfig `yaml:"charts" mapstructure:"charts"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// TestConfig configures the z-test itself.
type TestConfig struct {
	Alpha      float64 `yaml:"alpha" mapstructure:"alpha"`
	Confidence float64 `yaml:"confidence" mapstructure:"confidence"`
}

// PowerConfig configures the power sweep and the sample-size search.
type PowerConfig struct {
	Target        float64 `yaml:"target" mapstructure:"target"`
	MinSampleSize int     `yaml:"min_sample_size" mapstructure:"min_sample_size"`
	MaxSampleSize int     `yaml:"max_sample_size" mapstructure:"max_sample_size"`
	Points        int     `yaml:"points" mapstructure:"points"`
}

// ChartsConfig configures the rendered figures.
type ChartsConfig struct {
	BreakdownPath string  `yaml:"breakdown_path" mapstructure:"breakdown_path"`
	ExplainedPath string  `yaml:"explained_path" mapstructure:"explained_path"`
	WidthInches   float64 `yaml:"width_inches" mapstructure:"width_inches"`
	HeightInches  float64 `yaml:"height_inches" mapstructure:"height_inches"`
	DPI           int     `yaml:"dpi" mapstructure:"dpi"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (if present) and the
// environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SPLITSIG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("test.alpha", 0.05)
	v.SetDefault("test.confidence", 0.95)
	v.SetDefault("power.target", 0.80)
	v.SetDefault("power.min_sample_size", 1000)
	v.SetDefault("power.max_sample_size", 50000)
	v.SetDefault("power.points", 100)
	v.SetDefault("charts.breakdown_path", "ab_test_statistical_breakdown.png")
	v.SetDefault("charts.explained_path", "ab_test_explained.png")
	v.SetDefault("charts.width_inches", 16.0)
	v.SetDefault("charts.height_inches", 12.0)
	v.SetDefault("charts.dpi", 96)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
