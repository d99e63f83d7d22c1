// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	CORSOrigins []string

	// Persistence. An empty DatabaseURL selects the local SQLite file.
	DatabaseURL  string
	DatabasePath string

	// Identity provider session tokens.
	AuthSecret     string
	AuthIssuer     string
	AuthAudience   string
	AuthCookieName string

	// Completion service
	AIProvider        string
	GeminiTextKey     string
	GeminiImageKey    string
	GeminiBaseURL     string
	GeminiTextModel   string
	GeminiImageModel  string
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAITextModel   string
	OpenAIImageModel  string
	CompletionTimeout time.Duration

	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if !isProduction(env) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	googleKey := getEnv("GOOGLE_API_KEY", "")
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       env,
		CORSOrigins:       getEnvAsList("CORS_ORIGINS", []string{"*"}),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DatabasePath:      getEnv("DATABASE_PATH", "chat.db"),
		AuthSecret:        getEnv("AUTH_SECRET", ""),
		AuthIssuer:        getEnv("AUTH_ISSUER", ""),
		AuthAudience:      getEnv("AUTH_AUDIENCE", ""),
		AuthCookieName:    getEnv("AUTH_COOKIE_NAME", "appSession"),
		AIProvider:        strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
		GeminiTextKey:     getEnv("GOOGLE_API_KEY_TEXT", googleKey),
		GeminiImageKey:    getEnv("GOOGLE_API_KEY_IMAGE", googleKey),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", ""),
		GeminiTextModel:   getEnv("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
		GeminiImageModel:  getEnv("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAITextModel:   getEnv("OPENAI_TEXT_MODEL", "gpt-4o-mini"),
		OpenAIImageModel:  getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		CompletionTimeout: getEnvAsDuration("COMPLETION_TIMEOUT", 60*time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		LogFile:           getEnv("LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

// Validate checks values that are always required, plus the secrets that are
// only mandatory in production.
func (c *Config) Validate() error {
	if c.AIProvider != "gemini" && c.AIProvider != "openai" {
		return fmt.Errorf("AI_PROVIDER must be \"gemini\" or \"openai\", got %q", c.AIProvider)
	}
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive")
	}

	if !c.IsProduction() {
		return nil
	}
	missing := []string{}
	if c.AuthSecret == "" {
		missing = append(missing, "AUTH_SECRET")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	switch c.AIProvider {
	case "gemini":
		if c.GeminiTextKey == "" {
			missing = append(missing, "GOOGLE_API_KEY_TEXT")
		}
		if c.GeminiImageKey == "" {
			missing = append(missing, "GOOGLE_API_KEY_IMAGE")
		}
	case "openai":
		if c.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required production environment variables: %v", missing)
	}
	return nil
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
