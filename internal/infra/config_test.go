package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash-image" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.AITimeout != 60*time.Second {
		t.Fatalf("AITimeout = %v", cfg.AITimeout)
	}
	if cfg.HTTPReadHeaderTimeout != 5*time.Second {
		t.Fatalf("HTTPReadHeaderTimeout = %v", cfg.HTTPReadHeaderTimeout)
	}
	if cfg.DeclineRate != 0 {
		t.Fatalf("DeclineRate = %v, want 0", cfg.DeclineRate)
	}
}

func TestLoadConfigRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when SESSION_SECRET missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("HTTP_READ_HEADER_TIMEOUT_SECONDS", "2")
	t.Setenv("CHECKOUT_DECLINE_RATE", "0.25")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "7")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.AITimeout != 5*time.Second {
		t.Fatalf("AITimeout = %v", cfg.AITimeout)
	}
	if cfg.HTTPReadHeaderTimeout != 2*time.Second {
		t.Fatalf("HTTPReadHeaderTimeout = %v", cfg.HTTPReadHeaderTimeout)
	}
	if cfg.DeclineRate != 0.25 {
		t.Fatalf("DeclineRate = %v", cfg.DeclineRate)
	}
	if cfg.RateLimitPerMin != 7 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}
