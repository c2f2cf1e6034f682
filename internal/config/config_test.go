package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "TIMEZONE", "COMPLETION_PROVIDER", "COMPLETION_MODEL",
		"COMPLETION_BASE_URL", "COMPLETION_API_KEY", "GROQ_API_KEY", "COMPLETION_TIMEOUT", "JWT_EXPIRES_IN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DB.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DB.Driver)
	}
	if cfg.Completion.Provider != ProviderGroq {
		t.Errorf("expected groq provider, got %s", cfg.Completion.Provider)
	}
	if cfg.Completion.Model != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected default model %s", cfg.Completion.Model)
	}
	if cfg.Completion.Temperature != 0.7 || cfg.Completion.MaxTokens != 1500 {
		t.Errorf("unexpected generation params: %+v", cfg.Completion)
	}
	if cfg.Completion.Timeout != 0 {
		t.Errorf("expected no completion timeout by default, got %s", cfg.Completion.Timeout)
	}
	if cfg.JWTExpirationDur != 15*time.Minute {
		t.Errorf("expected 15m token expiry, got %s", cfg.JWTExpirationDur)
	}
}

func TestLoad_GeminiProvider(t *testing.T) {
	t.Setenv("COMPLETION_PROVIDER", "Gemini")
	t.Setenv("COMPLETION_API_KEY", "")
	t.Setenv("COMPLETION_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Completion.APIKey != "g-key" {
		t.Errorf("expected GEMINI_API_KEY fallback, got %q", cfg.Completion.APIKey)
	}
	if cfg.Completion.Model != "gemini-2.0-flash" {
		t.Errorf("unexpected gemini model %s", cfg.Completion.Model)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("COMPLETION_MAX_TOKENS", "lots")
	t.Setenv("COMPLETION_TEMPERATURE", "-1")
	t.Setenv("COMPLETION_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Completion.MaxTokens != 1500 {
		t.Errorf("expected max tokens fallback, got %d", cfg.Completion.MaxTokens)
	}
	if cfg.Completion.Temperature != 0.7 {
		t.Errorf("expected temperature fallback, got %g", cfg.Completion.Temperature)
	}
	if cfg.Completion.Timeout != 0 {
		t.Errorf("expected timeout fallback, got %s", cfg.Completion.Timeout)
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "Asia/Kolkata"}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Errorf("expected Asia/Kolkata, got %s", cfg.Location())
	}

	cfg.Timezone = "Mars/Olympus"
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC fallback for unknown zone")
	}
}
