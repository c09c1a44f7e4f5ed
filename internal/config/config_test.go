package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"portcheck/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portcheck.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg != DefaultConfig() {
			t.Fatalf("Load(%q) = %+v, want defaults", path, cfg)
		}
	}

	target := DefaultConfig().Target()
	if target.Host != "localhost" || target.Port != 80 || target.Timeout != 3*time.Second {
		t.Fatalf("unexpected default target %+v", target)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "port: 8443\ntimeout: 750ms\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host != "localhost" {
		t.Fatalf("host = %q", cfg.Host)
	}
	if cfg.Port != 8443 || cfg.Timeout != 750*time.Millisecond {
		t.Fatalf("unexpected target %+v", cfg.Target())
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	if cfg.Server.Addr != DefaultConfig().Server.Addr {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"port":    "port: 70000\n",
		"timeout": "timeout: -1s\n",
		"host":    "host: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if err := cfg.Validate(); !errors.Is(err, models.ErrInvalidTarget) {
				t.Fatalf("expected ErrInvalidTarget, got %v", err)
			}
		})
	}
}

func TestValidateAfterOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, "port: 70000\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Port = 8080
	if err := cfg.Validate(); err != nil {
		t.Fatalf("overridden config should be valid: %v", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "port: [not, a, number\n")); err == nil {
		t.Fatal("expected parse error")
	}
}
