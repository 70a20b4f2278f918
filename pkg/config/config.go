package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject         string
	FirebaseCredentialsJSON string
	FirebaseCredentialsPath string

	GeminiAPIKey     string
	GeminiModel      string
	AssistantTimeout time.Duration

	RedisAddr    string
	RedisChannel string

	RateLimitPerSecond int64
	AllowedOrigins     []string

	// The fixed "me" identity used when Firebase auth is not configured.
	MeID     string
	MeName   string
	MeAvatar string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FirebaseProject:         getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		AssistantTimeout: getEnvAsDuration("ASSISTANT_TIMEOUT", 30*time.Second),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisChannel: getEnv("REDIS_CHANNEL", "chat-events"),

		RateLimitPerSecond: getEnvAsInt64("RATE_LIMIT_PER_SECOND", 20),
		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS"),

		MeID:     getEnv("ME_ID", "me-777"),
		MeName:   getEnv("ME_NAME", "홍길동"),
		MeAvatar: getEnv("ME_AVATAR", "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=400&q=80"),
	}

	return config, nil
}

// UseFirebase reports whether Firestore storage and Firebase auth are configured.
func (c *Config) UseFirebase() bool {
	return c.FirebaseProject != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
