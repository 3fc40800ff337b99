// Package config loads scraper configuration from YAML files with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can use Go duration
// strings like "1.5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Section names one forum section and its URL path.
type Section struct {
	Name string `yaml:"name" validate:"required"`
	Path string `yaml:"path" validate:"required"`
}

// ScrapeConfig holds pagination and rate-limit knobs.
type ScrapeConfig struct {
	RequestDelay       Duration `yaml:"request_delay"`
	MaxRetries         int      `yaml:"max_retries" validate:"min=1"`
	RetryDelay         Duration `yaml:"retry_delay"`
	MaxPagesPerSection int      `yaml:"max_pages_per_section" validate:"min=1"`
	MaxPostsPerPage    int      `yaml:"max_posts_per_page" validate:"min=1"`
	Concurrency        int      `yaml:"concurrency" validate:"min=1"`
}

// RetryDelays expands the retry knobs into per-attempt waits with
// linear backoff.
func (c ScrapeConfig) RetryDelays() []time.Duration {
	delays := make([]time.Duration, 0, c.MaxRetries-1)
	for i := 1; i < c.MaxRetries; i++ {
		delays = append(delays, time.Duration(i)*c.RetryDelay.Std())
	}
	return delays
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir           string   `yaml:"dir" validate:"required"`
	Formats       []string `yaml:"formats" validate:"required,min=1,dive,oneof=json csv"`
	BackupEnabled bool     `yaml:"backup_enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Config is the full scraper configuration.
type Config struct {
	BaseURL       string        `yaml:"base_url" validate:"required,url"`
	Sections      []Section     `yaml:"sections" validate:"required,min=1,dive"`
	UserAgent     string        `yaml:"user_agent"`
	RespectRobots bool          `yaml:"respect_robots"`
	Database      string        `yaml:"database"`
	Scrape        ScrapeConfig  `yaml:"scrape"`
	Output        OutputConfig  `yaml:"output"`
	Logging       LoggingConfig `yaml:"logging"`
}

// SectionNames returns the configured section names in order.
func (c *Config) SectionNames() []string {
	names := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		names[i] = s.Name
	}
	return names
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		BaseURL: "https://forum.example.com",
		Sections: []Section{
			{Name: "pregnancy_childbirth", Path: "/forum/pregnancy-childbirth"},
			{Name: "married_life", Path: "/forum/married-life"},
			{Name: "infertility_support", Path: "/forum/infertility-support"},
			{Name: "general_discussion", Path: "/forum/general-discussion"},
		},
		RespectRobots: true,
		Database:      "forumscope.db",
		Scrape: ScrapeConfig{
			RequestDelay:       Duration(1500 * time.Millisecond),
			MaxRetries:         3,
			RetryDelay:         Duration(5 * time.Second),
			MaxPagesPerSection: 50,
			MaxPostsPerPage:    100,
			Concurrency:        1,
		},
		Output: OutputConfig{
			Dir:           "scraped_data",
			Formats:       []string{"json", "csv"},
			BackupEnabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, layered over defaults and under
// environment overrides. An empty path skips the file and uses
// defaults. A .env file in the working directory is loaded first if
// present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, forumscope.Errorf(forumscope.ENOTFOUND, "cannot read config file %s", path)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, forumscope.Errorf(forumscope.EINVALID, "cannot parse config file %s: %s", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, forumscope.Errorf(forumscope.EINVALID, "invalid configuration: %s", err)
	}

	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FORUMSCOPE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FORUMSCOPE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("FORUMSCOPE_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("FORUMSCOPE_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("FORUMSCOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
