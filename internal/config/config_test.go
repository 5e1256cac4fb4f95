package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reapr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "aws", cfg.Provider)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 10, cfg.Parallelism)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.Base())
	assert.Equal(t, 30*time.Second, cfg.Retry.Max())
	assert.Equal(t, 5*time.Second, cfg.Verify.Interval())
	assert.Equal(t, 12, cfg.Verify.PollBudget)
	assert.Equal(t, "cleanup-report.txt", cfg.ReportPath)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	path := writeConfig(t, `
region: eu-central-1
parallelism: 3
retry:
  max_attempts: 2
  base_delay: 200ms
  max_delay: 4s
verify:
  poll_interval: 1s
  poll_budget: 6
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.Base())
	assert.Equal(t, 4*time.Second, cfg.Retry.Max())
	assert.Equal(t, time.Second, cfg.Verify.Interval())
	assert.Equal(t, 6, cfg.Verify.PollBudget)
	// Untouched fields keep their defaults.
	assert.Equal(t, "aws", cfg.Provider)
	assert.Equal(t, "cleanup-report.txt", cfg.ReportPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "region: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "retry:\n  base_delay: soon\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"zero parallelism", "parallelism: -1\n", "parallelism must be positive"},
		{"zero attempts", "retry:\n  max_attempts: 0\n", "max_attempts must be positive"},
		{"max below base", "retry:\n  base_delay: 10s\n  max_delay: 1s\n", "max_delay >= base_delay"},
		{"zero poll budget", "verify:\n  poll_budget: 0\n", "poll_budget must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
