package config

import (
	"fmt"
	"os"
	"strconv"

	"edakit/domain/stats"
	"edakit/internal"
	"edakit/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete library configuration
type Config struct {
	Stats    StatsConfig
	Report   ReportConfig
	LogLevel internal.LogLevel
}

// StatsConfig holds the per-call defaults of the testers
type StatsConfig struct {
	Alpha                float64
	NormalityMethod      stats.NormalityMethod
	CorrelationMethod    stats.CorrelationMethod
	MatrixMethod         stats.MatrixMethod
	CategoricalThreshold float64
}

// ReportConfig holds heatmap and export settings
type ReportConfig struct {
	HeatmapSizeInches float64
	OutputDir         string
}

// Default returns the built-in defaults without reading the environment
func Default() *Config {
	return &Config{
		Stats: StatsConfig{
			Alpha:                0.05,
			NormalityMethod:      stats.NormalityDAgostino,
			CorrelationMethod:    stats.CorrelationPearson,
			MatrixMethod:         stats.MatrixPearson,
			CategoricalThreshold: 0.05,
		},
		Report: ReportConfig{
			HeatmapSizeInches: 6,
			OutputDir:         ".",
		},
		LogLevel: internal.LogLevelInfo,
	}
}

// Load reads configuration from environment variables and validates it.
// envFiles are loaded first through godotenv (".env" when none are given);
// missing files are skipped and variables already set are kept.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		internal.DefaultLogger.Debug("No .env file loaded (%v), using system environment variables", err)
	}

	config := Default()

	statsConfig, err := loadStatsConfig(config.Stats)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stats configuration")
	}
	config.Stats = *statsConfig

	reportConfig, err := loadReportConfig(config.Report)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report configuration")
	}
	config.Report = *reportConfig

	if name := os.Getenv("LOG_LEVEL"); name != "" {
		level, ok := internal.ParseLogLevel(name)
		if !ok {
			return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", name))
		}
		config.LogLevel = level
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadStatsConfig(defaults StatsConfig) (*StatsConfig, error) {
	cfg := defaults

	alpha, err := getEnvFloat("EDA_ALPHA", defaults.Alpha)
	if err != nil {
		return nil, err
	}
	cfg.Alpha = alpha

	threshold, err := getEnvFloat("EDA_CATEGORICAL_THRESHOLD", defaults.CategoricalThreshold)
	if err != nil {
		return nil, err
	}
	cfg.CategoricalThreshold = threshold

	if name := os.Getenv("EDA_NORMALITY_METHOD"); name != "" {
		if cfg.NormalityMethod, err = stats.ParseNormalityMethod(name); err != nil {
			return nil, invalid("EDA_NORMALITY_METHOD", err)
		}
	}
	if name := os.Getenv("EDA_CORRELATION_METHOD"); name != "" {
		if cfg.CorrelationMethod, err = stats.ParseCorrelationMethod(name); err != nil {
			return nil, invalid("EDA_CORRELATION_METHOD", err)
		}
	}
	if name := os.Getenv("EDA_MATRIX_METHOD"); name != "" {
		if cfg.MatrixMethod, err = stats.ParseMatrixMethod(name); err != nil {
			return nil, invalid("EDA_MATRIX_METHOD", err)
		}
	}

	return &cfg, nil
}

func loadReportConfig(defaults ReportConfig) (*ReportConfig, error) {
	size, err := getEnvFloat("EDA_HEATMAP_SIZE_INCHES", defaults.HeatmapSizeInches)
	if err != nil {
		return nil, err
	}
	return &ReportConfig{
		HeatmapSizeInches: size,
		OutputDir:         getEnvOrDefault("EDA_OUTPUT_DIR", defaults.OutputDir),
	}, nil
}

// Validate checks value ranges and method names
func Validate(config *Config) error {
	if err := stats.ValidateAlpha(config.Stats.Alpha); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	if t := config.Stats.CategoricalThreshold; !(t > 0 && t <= 1) {
		return errors.ConfigInvalid(fmt.Sprintf("categorical threshold must lie in (0,1], got %v", t))
	}
	if !config.Stats.NormalityMethod.Valid() {
		return errors.ConfigInvalid(fmt.Sprintf("unknown normality method %q", config.Stats.NormalityMethod))
	}
	if !config.Stats.CorrelationMethod.Valid() {
		return errors.ConfigInvalid(fmt.Sprintf("unknown correlation method %q", config.Stats.CorrelationMethod))
	}
	if !config.Stats.MatrixMethod.Valid() {
		return errors.ConfigInvalid(fmt.Sprintf("unknown matrix method %q", config.Stats.MatrixMethod))
	}
	if config.Report.HeatmapSizeInches <= 0 {
		return errors.ConfigInvalid("heatmap size must be positive")
	}
	if config.Report.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	return nil
}

func invalid(key string, err error) error {
	return errors.ConfigInvalid(fmt.Sprintf("%s: %v", key, err))
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a number", key, value))
	}
	return floatValue, nil
}
