package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-3-pro-preview" {
		t.Errorf("unexpected default model %s", cfg.GeminiModel)
	}
	if cfg.SinkPollInterval != 2*time.Second {
		t.Errorf("unexpected sink poll interval %s", cfg.SinkPollInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("SINK_BATCH_SIZE", "5")
	t.Setenv("MEDIA_FETCH_TIMEOUT", "5s")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if !cfg.RedisTLS {
		t.Error("expected RedisTLS true")
	}
	if cfg.SinkBatchSize != 5 {
		t.Errorf("expected batch size 5, got %d", cfg.SinkBatchSize)
	}
	if cfg.MediaFetchTimeout != 5*time.Second {
		t.Errorf("expected 5s fetch timeout, got %s", cfg.MediaFetchTimeout)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SINK_BATCH_SIZE", "not-a-number")

	cfg := Load()
	if cfg.SinkBatchSize != 25 {
		t.Errorf("expected fallback 25, got %d", cfg.SinkBatchSize)
	}
}
