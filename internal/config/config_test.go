package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultLatenciesMatchMockBackend(t *testing.T) {
	cfg := Default()

	cases := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"catalog", cfg.API.CatalogLatency(), 300 * time.Millisecond},
		{"auth", cfg.API.AuthLatency(), 500 * time.Millisecond},
		{"order", cfg.API.OrderLatency(), time.Second},
		{"otp", cfg.API.OTPLatency(), time.Second},
		{"payment", cfg.API.PaymentLatency(), 2 * time.Second},
		{"toast display", cfg.Notify.DisplayDuration(), 3 * time.Second},
		{"toast fade", cfg.Notify.FadeDuration(), 300 * time.Millisecond},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s latency = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q, want light default", cfg.Theme)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "theme: dark\napi:\n  payment_latency_ms: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.Theme)
	}
	if cfg.API.PaymentLatency() != 50*time.Millisecond {
		t.Errorf("payment latency = %v, want 50ms", cfg.API.PaymentLatency())
	}
	// Untouched keys keep their defaults.
	if cfg.API.CatalogLatency() != 300*time.Millisecond {
		t.Errorf("catalog latency = %v, want default 300ms", cfg.API.CatalogLatency())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MEDISWIFT_THEME", "dark")
	t.Setenv("MEDISWIFT_DATA_DIR", "/tmp/mediswift-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("env theme override ignored: %q", cfg.Theme)
	}
	if cfg.DataDir != "/tmp/mediswift-test" {
		t.Errorf("env data dir override ignored: %q", cfg.DataDir)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.DataDir = t.TempDir()
	cfg.Theme = "dark"
	cfg.API.OrderLatencyMs = 1

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(cfg.Path())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "dark" || loaded.API.OrderLatencyMs != 1 {
		t.Errorf("roundtrip lost fields: theme=%q order=%d", loaded.Theme, loaded.API.OrderLatencyMs)
	}
}
