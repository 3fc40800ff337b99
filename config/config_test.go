package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no file is given", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)

		assert.Equal(t, 1500*time.Millisecond, cfg.Scrape.RequestDelay.Std())
		assert.Equal(t, 3, cfg.Scrape.MaxRetries)
		assert.Equal(t, 5*time.Second, cfg.Scrape.RetryDelay.Std())
		assert.Equal(t, 50, cfg.Scrape.MaxPagesPerSection)
		assert.Equal(t, 100, cfg.Scrape.MaxPostsPerPage)
		assert.Equal(t, "scraped_data", cfg.Output.Dir)
		assert.Equal(t, []string{"json", "csv"}, cfg.Output.Formats)
		assert.True(t, cfg.RespectRobots)
		assert.NotEmpty(t, cfg.Sections)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
base_url: https://forum.example.org
sections:
  - name: general
    path: /forum/general
scrape:
  request_delay: 250ms
  max_pages_per_section: 5
output:
  dir: out
  formats: [json]
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://forum.example.org", cfg.BaseURL)
		require.Len(t, cfg.Sections, 1)
		assert.Equal(t, "general", cfg.Sections[0].Name)
		assert.Equal(t, 250*time.Millisecond, cfg.Scrape.RequestDelay.Std())
		assert.Equal(t, 5, cfg.Scrape.MaxPagesPerSection)
		assert.Equal(t, []string{"json"}, cfg.Output.Formats)
		// Unset file values keep their defaults.
		assert.Equal(t, 3, cfg.Scrape.MaxRetries)
	})

	t.Run("environment variables override the file", func(t *testing.T) {
		t.Setenv("FORUMSCOPE_BASE_URL", "https://env.example.org")
		t.Setenv("FORUMSCOPE_OUTPUT_DIR", "env_out")

		cfg, err := config.Load("")
		require.NoError(t, err)

		assert.Equal(t, "https://env.example.org", cfg.BaseURL)
		assert.Equal(t, "env_out", cfg.Output.Dir)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Equal(t, forumscope.ENOTFOUND, forumscope.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "base_url: [broken")

		_, err := config.Load(path)
		require.Error(t, err)
		assert.Equal(t, forumscope.EINVALID, forumscope.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		path := writeConfig(t, `
base_url: not-a-url
sections:
  - name: general
    path: /forum/general
`)

		_, err := config.Load(path)
		require.Error(t, err)
		assert.Equal(t, forumscope.EINVALID, forumscope.ErrorCode(err))
	})

	t.Run("rejects unknown output format", func(t *testing.T) {
		path := writeConfig(t, `
output:
  dir: out
  formats: [xml]
`)

		_, err := config.Load(path)
		require.Error(t, err)
		assert.Equal(t, forumscope.EINVALID, forumscope.ErrorCode(err))
	})

	t.Run("rejects bad durations", func(t *testing.T) {
		path := writeConfig(t, `
scrape:
  request_delay: quickly
`)

		_, err := config.Load(path)
		require.Error(t, err)
	})
}

func TestScrapeConfig_RetryDelays(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, cfg.Scrape.RetryDelays())
}

func TestConfig_SectionNames(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Sections: []config.Section{{Name: "a"}, {Name: "b"}}}
	assert.Equal(t, []string{"a", "b"}, cfg.SectionNames())
}
