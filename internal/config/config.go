package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/yo-yo/internal/logger"
)

const (
	DefaultStartYear   = 1888
	DefaultEndYear     = 2010
	DefaultSourceURL   = "https://www.rsssf.org/engpaul/FLA/%s.html"
	DefaultUserAgent   = "yo-yo/1.0 (github.com/pfrederiksen/yo-yo)"
	DefaultTimeout     = "30s"
	DefaultMaxRetries  = 3
	DefaultConcurrency = 4
	DefaultDataDir     = "~/.local/share/yo-yo"
	DefaultLogLevel    = "info"

	// First season of the Football League.
	firstSeason = 1888
)

// Config holds all yo-yo settings.
type Config struct {
	// Seasons to fetch, by starting year
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`

	// Archive access
	SourceURL   string `yaml:"source_url"` // %s is replaced by the season, e.g. 1888-89
	UserAgent   string `yaml:"user_agent"`
	Timeout     string `yaml:"timeout"`
	MaxRetries  int    `yaml:"max_retries"`
	Concurrency int    `yaml:"concurrency"`

	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`

	// Team name or slug -> chart ID, for clubs that changed name
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		StartYear:   DefaultStartYear,
		EndYear:     DefaultEndYear,
		SourceURL:   DefaultSourceURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		Concurrency: DefaultConcurrency,
		DataDir:     DefaultDataDir,
		LogLevel:    DefaultLogLevel,
		Aliases:     map[string]string{},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with environment variables. The result is not
// validated; callers apply their own overrides and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
		if cfg.Aliases == nil {
			cfg.Aliases = map[string]string{}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	var errs []error

	if c.StartYear < firstSeason {
		errs = append(errs, fmt.Errorf("start_year %d is before the first season (%d)", c.StartYear, firstSeason))
	}
	if c.EndYear < c.StartYear {
		errs = append(errs, fmt.Errorf("end_year %d is before start_year %d", c.EndYear, c.StartYear))
	}
	if strings.Count(c.SourceURL, "%s") != 1 {
		errs = append(errs, fmt.Errorf("source_url must contain exactly one %%s: %q", c.SourceURL))
	}
	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must not be negative: %d", c.MaxRetries))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1: %d", c.Concurrency))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TimeoutDuration parses Timeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive: %s", c.Timeout)
	}
	return d, nil
}

// Years returns the starting years from StartYear to EndYear.
func (c Config) Years() []int {
	if c.EndYear < c.StartYear {
		return nil
	}
	years := make([]int, 0, c.EndYear-c.StartYear+1)
	for y := c.StartYear; y <= c.EndYear; y++ {
		years = append(years, y)
	}
	return years
}
