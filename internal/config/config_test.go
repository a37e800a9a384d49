package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tturner/formfill/internal/errors"
	"github.com/tturner/formfill/internal/generate"
	"github.com/tturner/formfill/internal/logging"
	"github.com/tturner/formfill/internal/submission"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formfill.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != generate.DefaultBaseURL {
		t.Errorf("API.URL = %q, want %q", cfg.API.URL, generate.DefaultBaseURL)
	}
	if cfg.Variant() != generate.VariantExtended {
		t.Errorf("Variant() = %q", cfg.Variant())
	}
	req, err := cfg.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req != submission.DefaultRequest() {
		t.Errorf("Request() = %+v, want %+v", req, submission.DefaultRequest())
	}
}

func TestLoadFileKeepsExplicitZero(t *testing.T) {
	path := writeFile(t, `
api:
  url: http://filler.local:9000
defaults:
  responses: 12
  interval_seconds: 0
  tone: mixed
logging:
  level: debug
`)
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "http://filler.local:9000" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Variant != "extended" {
		t.Errorf("absent key should keep its default, got variant %q", cfg.API.Variant)
	}
	if cfg.Defaults.IntervalSeconds != 0 {
		t.Errorf("explicit zero should survive, got %d", cfg.Defaults.IntervalSeconds)
	}
	if cfg.Defaults.Responses != 12 || cfg.Defaults.Tone != "mixed" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.LogLevel() != logging.LogLevelDebug {
		t.Errorf("LogLevel() = %s", cfg.LogLevel())
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "api:\n  url: http://from-file:1\n")
	t.Setenv("FORMFILL_API_URL", "http://from-env:2")
	t.Setenv("FORMFILL_TONE", "negative")
	t.Setenv("FORMFILL_RESPONSES", "7")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "http://from-env:2" {
		t.Errorf("API.URL = %q, want env value", cfg.API.URL)
	}
	if cfg.Defaults.Tone != "negative" || cfg.Defaults.Responses != 7 {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
}

func TestEnvironmentWithoutFile(t *testing.T) {
	t.Setenv("FORMFILL_VARIANT", "minimal")
	cfg, err := Load("", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Variant() != generate.VariantMinimal {
		t.Errorf("Variant() = %q, want minimal", cfg.Variant())
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Load(path, false)
	if !stderrors.Is(err, errors.ErrConfig) {
		t.Fatalf("Load missing = %v, want config error", err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load autoCreate: %v", err)
	}
	if cfg.Defaults.IntervalSeconds != 5 {
		t.Errorf("created config defaults = %+v", cfg.Defaults)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default file not written: %v", err)
	}
	for _, want := range []string{"api:", "url: http://127.0.0.1:5002", "interval_seconds: 5", "tone: positive"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("default file missing %q:\n%s", want, data)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad variant", func(c *Config) { c.API.Variant = "full" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }, true},
		{"zero responses", func(c *Config) { c.Defaults.Responses = 0 }, true},
		{"interval above ceiling", func(c *Config) { c.Defaults.IntervalMinutes = 5; c.Defaults.IntervalSeconds = 10 }, true},
		{"bad tone", func(c *Config) { c.Defaults.Tone = "angry" }, true},
		{"blank variant is extended", func(c *Config) { c.API.Variant = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CreateDefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeFile(t, "defaults:\n  responses: 99\n")
	if _, err := Load(path, false); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestEnvDescription(t *testing.T) {
	desc, err := EnvDescription()
	if err != nil {
		t.Fatalf("EnvDescription: %v", err)
	}
	for _, want := range []string{"FORMFILL_API_URL", "FORMFILL_TONE", "FORMFILL_LOG_FILE"} {
		if !strings.Contains(desc, want) {
			t.Errorf("description missing %s:\n%s", want, desc)
		}
	}
}
