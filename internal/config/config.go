// Package config loads analysis settings from a .env file, COLLEGETOWNS_*
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"collegetowns/internal/database"
	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
)

// EnvPrefix prefixes every environment variable, e.g. COLLEGETOWNS_DATA_DIR.
const EnvPrefix = "COLLEGETOWNS"

// Housing sources.
const (
	SourceCSV      = "csv"
	SourceDatabase = "database"
)

// Config represents the complete analysis configuration
type Config struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	TownsFile   string `yaml:"towns_file" envconfig:"TOWNS_FILE" default:"university_towns.txt"`
	GDPFile     string `yaml:"gdp_file" envconfig:"GDP_FILE" default:"gdplev.xlsx"`
	HousingFile string `yaml:"housing_file" envconfig:"HOUSING_FILE" default:"City_Zhvi_AllHomes.csv"`

	GDPSheet      string `yaml:"gdp_sheet" envconfig:"GDP_SHEET"`
	GDPHeaderRows int    `yaml:"gdp_header_rows" envconfig:"GDP_HEADER_ROWS" default:"5"`
	StartQuarter  string `yaml:"start_quarter" envconfig:"START_QUARTER" default:"2000q1"`

	Alpha         float64 `yaml:"alpha" envconfig:"ALPHA" default:"0.01"`
	EqualVariance bool    `yaml:"equal_variance" envconfig:"EQUAL_VARIANCE" default:"true"`

	HousingSource string            `yaml:"housing_source" envconfig:"HOUSING_SOURCE" default:"csv"`
	Database      database.DBConfig `yaml:"database" envconfig:"DB"`

	Verbose bool `yaml:"verbose" envconfig:"VERBOSE"`
}

// Load reads .env (existing environment wins), then COLLEGETOWNS_* variables
// over the defaults, then the YAML file at path if path is not empty. Values in
// an explicit file override the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewConfigError("failed to load .env", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewFileNotFoundError(path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewConfigError("failed to parse config file "+path, err)
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return apperrors.NewConfigError(fmt.Sprintf("alpha must be in (0, 1), got %v", c.Alpha), nil)
	}
	if _, err := quarter.Parse(c.StartQuarter); err != nil {
		return apperrors.NewConfigError("invalid start quarter", err)
	}
	if c.GDPHeaderRows < 0 {
		return apperrors.NewConfigError(fmt.Sprintf("gdp header rows must not be negative, got %d", c.GDPHeaderRows), nil)
	}
	switch c.HousingSource {
	case SourceCSV:
	case SourceDatabase:
		if c.Database.Driver != database.DriverOracle && c.Database.Driver != database.DriverSQLite {
			return apperrors.NewConfigError(fmt.Sprintf("unsupported database driver %q", c.Database.Driver), nil)
		}
	default:
		return apperrors.NewConfigError(fmt.Sprintf("housing source must be %q or %q, got %q", SourceCSV, SourceDatabase, c.HousingSource), nil)
	}
	return nil
}

// Start returns the parsed analysis start quarter.
func (c *Config) Start() quarter.Label {
	q, _ := quarter.Parse(c.StartQuarter)
	return q
}

// TownsPath returns the university-town list location.
func (c *Config) TownsPath() string { return c.resolve(c.TownsFile) }

// GDPPath returns the GDP workbook location.
func (c *Config) GDPPath() string { return c.resolve(c.GDPFile) }

// HousingPath returns the city home-value CSV location.
func (c *Config) HousingPath() string { return c.resolve(c.HousingFile) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
