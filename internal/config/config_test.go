package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("EASEL_TEST_KEY", "sk-12345")

	if got := ResolveEnvVars("${EASEL_TEST_KEY}"); got != "sk-12345" {
		t.Fatalf("got %q, want sk-12345", got)
	}
	if got := ResolveEnvVars("prefix-${EASEL_TEST_KEY}-suffix"); got != "prefix-sk-12345-suffix" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveEnvVars("no vars here"); got != "no vars here" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveEnvVars(""); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestResolveEnvVars_UnsetVarBecomesEmpty(t *testing.T) {
	if got := ResolveEnvVars("${EASEL_DEFINITELY_UNSET_VAR}"); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Vision.Type != "openai" {
		t.Fatalf("vision type = %q", cfg.Vision.Type)
	}
	if cfg.Vision.Model == "" {
		t.Fatal("default vision model must be set")
	}
	if !strings.Contains(cfg.Vision.APIKey, "${") {
		t.Fatalf("default api key should reference an env var: %q", cfg.Vision.APIKey)
	}
	if cfg.Defaults.Preset != "auto" {
		t.Fatalf("default preset = %q, want auto", cfg.Defaults.Preset)
	}
}

func TestToClientConfig(t *testing.T) {
	t.Setenv("EASEL_TEST_VISION_KEY", "sk-vision")

	cfg := &Config{
		Vision: VisionCfg{
			Model:             "gpt-4o",
			APIKey:            "${EASEL_TEST_VISION_KEY}",
			TimeoutSeconds:    30,
			MaxRetries:        2,
			RetryDelaySeconds: 1,
		},
	}

	cc := cfg.ToClientConfig()
	if cc.APIKey != "sk-vision" {
		t.Fatalf("api key = %q, env var not resolved", cc.APIKey)
	}
	if cc.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cc.Timeout)
	}
	if cc.MaxRetries != 2 {
		t.Fatalf("max retries = %d", cc.MaxRetries)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Easel configuration") {
		t.Fatalf("header missing: %q", content[:60])
	}
	if !strings.Contains(content, "vision:") {
		t.Fatalf("vision section missing: %q", content)
	}
	if !strings.Contains(content, "${OPENAI_API_KEY}") {
		t.Fatalf("env reference should be preserved literally: %q", content)
	}
}
