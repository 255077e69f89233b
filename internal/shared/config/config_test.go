package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "POLL_INTERVAL_MS", "ENABLE_METRIC_BOOSTING", "KV_BACKEND", "BACKEND_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.PollInterval != 3*time.Second {
		t.Fatalf("expected 3s poll interval, got %s", cfg.PollInterval)
	}
	if !cfg.EnableBoosting {
		t.Fatalf("expected boosting enabled by default")
	}
	if cfg.KVBackend != "sqlite" {
		t.Fatalf("expected sqlite backend, got %q", cfg.KVBackend)
	}
	if cfg.ContentSourceLanguage != "en" || cfg.ContentTargetLanguage != "es" {
		t.Fatalf("unexpected language pair %q->%q", cfg.ContentSourceLanguage, cfg.ContentTargetLanguage)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("POLL_INTERVAL_MS", "500")
	t.Setenv("ENABLE_METRIC_BOOSTING", "false")
	t.Setenv("KV_BACKEND", "PG")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/")
	t.Setenv("BACKEND_RPS", "0.5")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %s", cfg.PollInterval)
	}
	if cfg.EnableBoosting {
		t.Fatalf("expected boosting disabled")
	}
	if cfg.KVBackend != "postgres" {
		t.Fatalf("expected postgres, got %q", cfg.KVBackend)
	}
	if cfg.BackendBaseURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BackendBaseURL)
	}
	if cfg.BackendRPS != 0.5 {
		t.Fatalf("expected rps 0.5, got %v", cfg.BackendRPS)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL_MS", "soon")
	t.Setenv("ENABLE_METRIC_BOOSTING", "maybe")

	cfg := Load()
	if cfg.PollInterval != 3*time.Second {
		t.Fatalf("expected default interval, got %s", cfg.PollInterval)
	}
	if !cfg.EnableBoosting {
		t.Fatalf("expected default boosting")
	}
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line   string
		key    string
		val    string
		wantOK bool
	}{
		{line: "KV_BACKEND=redis", key: "KV_BACKEND", val: "redis", wantOK: true},
		{line: `export APP_LANGUAGE="es"`, key: "APP_LANGUAGE", val: "es", wantOK: true},
		{line: "  # comment", wantOK: false},
		{line: "", wantOK: false},
		{line: "NOVALUE", wantOK: false},
		{line: "=orphan", wantOK: false},
	}
	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		if ok != tt.wantOK {
			t.Fatalf("parseEnvLine(%q) ok=%v, want %v", tt.line, ok, tt.wantOK)
		}
		if ok && (key != tt.key || val != tt.val) {
			t.Fatalf("parseEnvLine(%q) = %q,%q want %q,%q", tt.line, key, val, tt.key, tt.val)
		}
	}
}
