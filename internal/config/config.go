package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Completion providers understood by completion.New.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DB DatabaseConfig

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Timezone used for "today", the current month and the snapshot clock.
	Timezone string

	Completion CompletionConfig
}

// DatabaseConfig holds record store connection settings.
type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file path
}

// CompletionConfig configures the generative completion service.
type CompletionConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	// Timeout of zero means no client-side deadline.
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		// Database
		DB: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "jeni"),
			Password: getEnv("DB_PASSWORD", "jeni"),
			Name:     getEnv("DB_NAME", "jeni"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "jeni.db"),
		},

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: getDuration("JWT_EXPIRES_IN", 15*time.Minute),

		Timezone: getEnv("TIMEZONE", "Asia/Kolkata"),
	}

	config.Completion = loadCompletion()
	return config, nil
}

func loadCompletion() CompletionConfig {
	provider := strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderGroq))

	cc := CompletionConfig{
		Provider:    provider,
		APIKey:      os.Getenv("COMPLETION_API_KEY"),
		Model:       os.Getenv("COMPLETION_MODEL"),
		BaseURL:     os.Getenv("COMPLETION_BASE_URL"),
		Temperature: getFloat("COMPLETION_TEMPERATURE", 0.7),
		MaxTokens:   getInt("COMPLETION_MAX_TOKENS", 1500),
		Timeout:     getDuration("COMPLETION_TIMEOUT", 0),
	}

	switch provider {
	case ProviderGemini:
		if cc.APIKey == "" {
			cc.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cc.Model == "" {
			cc.Model = "gemini-2.0-flash"
		}
	case ProviderOpenAI:
		if cc.APIKey == "" {
			cc.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cc.Model == "" {
			cc.Model = "gpt-4o-mini"
		}
		if cc.BaseURL == "" {
			cc.BaseURL = "https://api.openai.com/v1"
		}
	default:
		if cc.APIKey == "" {
			cc.APIKey = os.Getenv("GROQ_API_KEY")
		}
		if cc.Model == "" {
			cc.Model = "llama-3.3-70b-versatile"
		}
		if cc.BaseURL == "" {
			cc.BaseURL = "https://api.groq.com/openai/v1"
		}
	}
	return cc
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown TIMEZONE '%s', falling back to UTC\n", c.Timezone)
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %g\n", key, raw, defaultValue)
		return defaultValue
	}
	return f
}
