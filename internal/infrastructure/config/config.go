// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool

	// Local store (postgres)
	PostgresURI string

	// Remote mirror (mongodb)
	MongoURI     string
	MongoDB      string
	SyncInterval time.Duration

	// Notification gateway
	NotifyEndpoint string
	NotifyToken    string

	// Scheduling
	StaffRoster    []string
	AllowStageSkip bool

	// Metrics
	MetricsNamespace string

	// CORS
	FrontendURL string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		Debug:        getEnvAsBool("DEBUG", false),

		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=valet port=5432 sslmode=disable"),

		MongoURI:     getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "valet"),
		SyncInterval: time.Duration(getEnvAsInt("SYNC_INTERVAL", 60)) * time.Second,

		NotifyEndpoint: getEnv("NOTIFY_ENDPOINT", ""),
		NotifyToken:    getEnv("NOTIFY_TOKEN", ""),

		StaffRoster:    getEnvAsList("STAFF_ROSTER", "Alex,Jordan,Sam,Casey"),
		AllowStageSkip: getEnvAsBool("ALLOW_STAGE_SKIP", false),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "valet"),

		FrontendURL: getEnv("FRONTEND_URL", "*"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
