package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	DatabaseURL      string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	FacetCacheTTL    time.Duration
	SavedCarsTTL     time.Duration
	MetricsEnabled   bool
	APIRatePerMin    int
	ImageSearchRate  int
	ImageSearchBurst int

	GeminiAPIKey string
	GeminiModel  string
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./firebase-service-account.json"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		FacetCacheTTL:    time.Duration(getEnvAsInt64("FACET_CACHE_TTL_SECONDS", 300)) * time.Second,
		SavedCarsTTL:     time.Duration(getEnvAsInt64("SAVED_CARS_CACHE_TTL_SECONDS", 600)) * time.Second,
		MetricsEnabled:   getEnvAsBool("METRICS_ENABLED", true),
		APIRatePerMin:    getEnvAsInt("API_RATE_PER_MINUTE", 120),
		ImageSearchRate:  getEnvAsInt("IMAGE_SEARCH_PER_MINUTE", 10),
		ImageSearchBurst: getEnvAsInt("IMAGE_SEARCH_BURST", 3),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports every missing mandatory setting at once.
func (c *Config) Validate() error {
	var missing []string
	if c.FirebaseProject == "" {
		missing = append(missing, "FIREBASE_PROJECT_ID")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
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

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}
