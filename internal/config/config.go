// ABOUTME: Run configuration for the conformance harness
// ABOUTME: Priority: defaults < YAML file < environment < flags
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/iamf-tools/iamf-conformance/internal/exclusion"
	"github.com/iamf-tools/iamf-conformance/internal/harness"
)

// DecoderPathEnv names the environment variable overriding the decoder path
const DecoderPathEnv = "IAMFDEC_PATH"

var (
	ErrMissingDirectory = errors.New("directory not set")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrInvalidJobs      = errors.New("jobs must not be negative")
)

// Config holds all harness settings
type Config struct {
	TestFileDir    string `yaml:"test_file_directory"`
	WorkDir        string `yaml:"working_directory"`
	DecoderPath    string `yaml:"iamfdec_path"`
	RegexFilter    string `yaml:"regex_filter"`
	CSVSummaryFile string `yaml:"csv_summary_file"`
	PreserveOutput bool   `yaml:"preserve_output_files"`
	Verbose        bool   `yaml:"verbose_test_summary"`
	Jobs           int    `yaml:"jobs"`

	Thresholds harness.Thresholds `yaml:"thresholds"`

	// Exclusions replaces the built-in rules when present. An explicit empty
	// list disables exclusion.
	Exclusions []exclusion.Rule `yaml:"exclusions"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		RegexFilter: ".*",
		Jobs:        1,
		Thresholds:  harness.DefaultThresholds(),
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(DecoderPathEnv); v != "" {
		c.DecoderPath = v
	}
}

// Rules returns the configured exclusion rules, or the defaults when the
// configuration names none
func (c *Config) Rules() []exclusion.Rule {
	if c.Exclusions == nil {
		return exclusion.Defaults()
	}
	return c.Exclusions
}

// Filter compiles RegexFilter
func (c *Config) Filter() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.RegexFilter)
	if err != nil {
		return nil, fmt.Errorf("invalid regex filter %q: %w", c.RegexFilter, err)
	}
	return re, nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if c.TestFileDir == "" {
		return fmt.Errorf("test file %w", ErrMissingDirectory)
	}
	if c.WorkDir == "" {
		return fmt.Errorf("working %w", ErrMissingDirectory)
	}
	if c.DecoderPath == "" {
		return errors.New("decoder path not set")
	}
	if c.Thresholds.Lossy < 0 || c.Thresholds.Lossless < 0 {
		return fmt.Errorf("%w: lossy %v, lossless %v", ErrInvalidThreshold, c.Thresholds.Lossy, c.Thresholds.Lossless)
	}
	if c.Jobs < 0 {
		return ErrInvalidJobs
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	return nil
}
