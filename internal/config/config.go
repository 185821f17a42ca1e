// Package config loads MediSwift configuration from <data-dir>/config.yaml
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all MediSwift configuration.
type Config struct {
	// DataDir is where the store database, logs and downloaded invoices
	// live. Defaults to ~/.mediswift.
	DataDir string `yaml:"data_dir"`

	// Theme for the TUI ("light" or "dark")
	Theme string `yaml:"theme"`

	// API configures the mock remote service latencies.
	API APIConfig `yaml:"api"`

	// Toast display timings.
	Notify NotifyConfig `yaml:"notify"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures simulated latencies for the mock remote service, in
// milliseconds. The defaults reproduce the original fixed delays.
type APIConfig struct {
	CatalogLatencyMs int `yaml:"catalog_latency_ms"`
	AuthLatencyMs    int `yaml:"auth_latency_ms"`
	OrderLatencyMs   int `yaml:"order_latency_ms"`
	OTPLatencyMs     int `yaml:"otp_latency_ms"`
	PaymentLatencyMs int `yaml:"payment_latency_ms"`
}

// CatalogLatency returns the catalog fetch delay as a duration.
func (a APIConfig) CatalogLatency() time.Duration {
	return time.Duration(a.CatalogLatencyMs) * time.Millisecond
}

// AuthLatency returns the login/register delay as a duration.
func (a APIConfig) AuthLatency() time.Duration {
	return time.Duration(a.AuthLatencyMs) * time.Millisecond
}

// OrderLatency returns the order placement delay as a duration.
func (a APIConfig) OrderLatency() time.Duration {
	return time.Duration(a.OrderLatencyMs) * time.Millisecond
}

// OTPLatency returns the OTP send delay as a duration.
func (a APIConfig) OTPLatency() time.Duration {
	return time.Duration(a.OTPLatencyMs) * time.Millisecond
}

// PaymentLatency returns the simulated payment delay as a duration.
func (a APIConfig) PaymentLatency() time.Duration {
	return time.Duration(a.PaymentLatencyMs) * time.Millisecond
}

// NotifyConfig configures toast timings, in milliseconds.
type NotifyConfig struct {
	ShowDelayMs       int `yaml:"show_delay_ms"`
	DisplayDurationMs int `yaml:"display_duration_ms"`
	FadeDurationMs    int `yaml:"fade_duration_ms"`
}

// ShowDelay returns the pre-animation delay as a duration.
func (n NotifyConfig) ShowDelay() time.Duration {
	return time.Duration(n.ShowDelayMs) * time.Millisecond
}

// DisplayDuration returns how long a toast stays visible.
func (n NotifyConfig) DisplayDuration() time.Duration {
	return time.Duration(n.DisplayDurationMs) * time.Millisecond
}

// FadeDuration returns the hide animation window.
func (n NotifyConfig) FadeDuration() time.Duration {
	return time.Duration(n.FadeDurationMs) * time.Millisecond
}

// LoggingConfig mirrors internal/logging's view of the config file.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// Default returns the baseline configuration. The latency values reproduce
// the original mock backend's fixed delays.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DataDir: filepath.Join(home, ".mediswift"),
		Theme:   "light",
		API: APIConfig{
			CatalogLatencyMs: 300,
			AuthLatencyMs:    500,
			OrderLatencyMs:   1000,
			OTPLatencyMs:     1000,
			PaymentLatencyMs: 2000,
		},
		Notify: NotifyConfig{
			ShowDelayMs:       10,
			DisplayDurationMs: 3000,
			FadeDurationMs:    300,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Path returns the config file location inside the data dir.
func (c *Config) Path() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// Load reads the config file at path, layering it over defaults and then
// applying environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies MEDISWIFT_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("MEDISWIFT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MEDISWIFT_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("MEDISWIFT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if v := os.Getenv("MEDISWIFT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Save writes the config file, creating the data dir if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(c.Path(), data, 0644)
}
