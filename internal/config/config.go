// Package config loads the optional reapr configuration file. Every field
// has a built-in default, so running without a file is fully supported;
// command-line flags override whatever the file says.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML decoding of values like "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// RetryConfig shapes the executor's backoff policy.
type RetryConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	BaseDelay   Duration `yaml:"base_delay"`
	MaxDelay    Duration `yaml:"max_delay"`
}

// VerifyConfig shapes the verifier's polling of asynchronously deleted types.
type VerifyConfig struct {
	PollInterval Duration `yaml:"poll_interval"`
	PollBudget   int      `yaml:"poll_budget"`
}

// Config is the full configuration surface.
type Config struct {
	Provider    string       `yaml:"provider"`
	Region      string       `yaml:"region"`
	Parallelism int          `yaml:"parallelism"`
	Retry       RetryConfig  `yaml:"retry"`
	Verify      VerifyConfig `yaml:"verify"`
	ReportPath  string       `yaml:"report_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:    "aws",
		Region:      "us-east-1",
		Parallelism: 10,
		Retry: RetryConfig{
			MaxAttempts: 5,
			BaseDelay:   Duration(1 * time.Second),
			MaxDelay:    Duration(30 * time.Second),
		},
		Verify: VerifyConfig{
			PollInterval: Duration(5 * time.Second),
			PollBudget:   12,
		},
		ReportPath: "cleanup-report.txt",
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if cfg.Region == "" {
		return fmt.Errorf("region is required")
	}
	if cfg.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive")
	}
	if cfg.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be positive")
	}
	if cfg.Retry.Base() <= 0 || cfg.Retry.Max() < cfg.Retry.Base() {
		return fmt.Errorf("retry delays must be positive and max_delay >= base_delay")
	}
	if cfg.Verify.PollBudget <= 0 {
		return fmt.Errorf("verify.poll_budget must be positive")
	}
	if time.Duration(cfg.Verify.PollInterval) <= 0 {
		return fmt.Errorf("verify.poll_interval must be positive")
	}
	return nil
}

// Base and Max return the retry delays as time.Duration.
func (r RetryConfig) Base() time.Duration { return time.Duration(r.BaseDelay) }
func (r RetryConfig) Max() time.Duration  { return time.Duration(r.MaxDelay) }

// Interval returns the verifier poll interval as time.Duration.
func (v VerifyConfig) Interval() time.Duration { return time.Duration(v.PollInterval) }
