package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid marks configuration precondition failures. Wrapped errors carry
// the failing field.
var ErrInvalid = errors.New("invalid configuration")

// FileName is the default config file written by `fieldforge init`.
const FileName = "fieldforge.config.json"

// DateFormat is the layout for date_window bounds in the config file.
const DateFormat = "2006-01-02"

type Config struct {
	Seed               int64      `json:"seed" mapstructure:"seed"`
	IDBase             int        `json:"id_base" mapstructure:"id_base"`
	DatasetName        string     `json:"dataset_name" mapstructure:"dataset_name"`
	Counts             Counts     `json:"counts" mapstructure:"counts"`
	DateWindow         DateWindow `json:"date_window" mapstructure:"date_window"`
	TargetRange        Range      `json:"target_range" mapstructure:"target_range"`
	RespondentCoverage float64    `json:"respondent_coverage" mapstructure:"respondent_coverage"`
	VocabFile          string     `json:"vocab_file,omitempty" mapstructure:"vocab_file"`
	ExportPath         string     `json:"export_path" mapstructure:"export_path"`
	ExportFormat       string     `json:"export_format" mapstructure:"export_format"`
	Database           Database   `json:"database" mapstructure:"database"`
}

type Counts struct {
	Areas            int `json:"areas" mapstructure:"areas"`
	Promoters        int `json:"promoters" mapstructure:"promoters"`
	SamplingTypes    int `json:"sampling_types" mapstructure:"sampling_types"`
	InstitutionTypes int `json:"institution_types" mapstructure:"institution_types"`
	SamplingEvents   int `json:"sampling_events" mapstructure:"sampling_events"`
}

type DateWindow struct {
	Start string `json:"start" mapstructure:"start"`
	End   string `json:"end" mapstructure:"end"`
}

type Range struct {
	Min int `json:"min" mapstructure:"min"`
	Max int `json:"max" mapstructure:"max"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Default returns the configuration used when no file overrides anything.
// The date window is fixed rather than derived from the clock, so identical
// configs stay identical across days.
func Default() *Config {
	return &Config{
		Seed:        42,
		IDBase:      1,
		DatasetName: "market_sampling",
		Counts: Counts{
			Areas:            20,
			Promoters:        5,
			SamplingTypes:    5,
			InstitutionTypes: 2,
			SamplingEvents:   60,
		},
		DateWindow:         DateWindow{Start: "2025-01-01", End: "2025-12-31"},
		TargetRange:        Range{Min: 100, Max: 200},
		RespondentCoverage: 1.0,
		ExportPath:         "data",
		ExportFormat:       "csv",
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
	}
}

// Load unmarshals the viper-backed config and fills in defaults for anything
// the file does not set.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	def := Default()
	if !viper.IsSet("seed") {
		cfg.Seed = def.Seed
	}
	if cfg.IDBase == 0 {
		cfg.IDBase = def.IDBase
	}
	if cfg.DatasetName == "" {
		cfg.DatasetName = def.DatasetName
	}
	if !viper.IsSet("counts") {
		cfg.Counts = def.Counts
	}
	if cfg.DateWindow.Start == "" {
		cfg.DateWindow.Start = def.DateWindow.Start
	}
	if cfg.DateWindow.End == "" {
		cfg.DateWindow.End = def.DateWindow.End
	}
	if cfg.TargetRange.Min == 0 && cfg.TargetRange.Max == 0 {
		cfg.TargetRange = def.TargetRange
	}
	if !viper.IsSet("respondent_coverage") {
		cfg.RespondentCoverage = def.RespondentCoverage
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = def.ExportPath
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = def.ExportFormat
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = def.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = def.Database.URLEnv
	}

	return &cfg, nil
}

// Validate rejects configurations no generator run could satisfy. Every
// failure wraps ErrInvalid.
func (c *Config) Validate() error {
	for name, n := range map[string]int{
		"counts.areas":             c.Counts.Areas,
		"counts.promoters":         c.Counts.Promoters,
		"counts.sampling_types":    c.Counts.SamplingTypes,
		"counts.institution_types": c.Counts.InstitutionTypes,
		"counts.sampling_events":   c.Counts.SamplingEvents,
	} {
		if n < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalid, name, n)
		}
	}

	if c.IDBase < 1 {
		return fmt.Errorf("%w: id_base must be at least 1, got %d", ErrInvalid, c.IDBase)
	}

	start, end, err := c.DateWindow.Bounds()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: date_window end %s precedes start %s", ErrInvalid, c.DateWindow.End, c.DateWindow.Start)
	}

	if c.TargetRange.Min < 1 {
		return fmt.Errorf("%w: target_range.min must be at least 1, got %d", ErrInvalid, c.TargetRange.Min)
	}
	if c.TargetRange.Max < c.TargetRange.Min {
		return fmt.Errorf("%w: target_range.max %d is below target_range.min %d", ErrInvalid, c.TargetRange.Max, c.TargetRange.Min)
	}

	if c.RespondentCoverage < 0 || c.RespondentCoverage > 1 {
		return fmt.Errorf("%w: respondent_coverage must be within [0,1], got %g", ErrInvalid, c.RespondentCoverage)
	}

	switch c.ExportFormat {
	case "csv", "json", "sqlite":
	default:
		return fmt.Errorf("%w: unsupported export format %q (supported: csv, json, sqlite)", ErrInvalid, c.ExportFormat)
	}

	switch c.Database.Provider {
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("%w: unsupported database provider %q", ErrInvalid, c.Database.Provider)
	}

	return nil
}

// Bounds parses the date window.
func (w DateWindow) Bounds() (time.Time, time.Time, error) {
	start, err := time.Parse(DateFormat, w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date_window.start %q is not %s", ErrInvalid, w.Start, DateFormat)
	}
	end, err := time.Parse(DateFormat, w.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date_window.end %q is not %s", ErrInvalid, w.End, DateFormat)
	}
	return start, end, nil
}

// GetDatabaseURL resolves the downstream store URL from the configured
// environment variable.
func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}
