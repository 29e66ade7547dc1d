package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all application configuration
type Config struct {
	Port   string
	GoEnv  string

	DatabaseURL string
	SQLitePath  string

	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	AllowedOrigins []string

	RateLimitWindow     time.Duration
	RateLimitMax        int
	RateLimitAuthWindow time.Duration
	RateLimitAuthMax    int

	RequireAdminForWaitingList bool
	MaxBodyBytes               int64
	SeedSampleData             bool
}

// Load reads configuration from the environment. It tries .env.<GO_ENV>
// first, then .env, and falls back to process environment variables.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	cfg := &Config{
		Port:                       getEnv("PORT", "8080"),
		GoEnv:                      getEnv("GO_ENV", "development"),
		DatabaseURL:                getEnv("DATABASE_URL", ""),
		SQLitePath:                 getEnv("SQLITE_PATH", "restaurant_booking.db"),
		JWTSecret:                  getEnv("JWT_SECRET", "restaurant_booking_dev_secret"),
		JWTExpiry:                  getDurationEnv("JWT_EXPIRY", 7*24*time.Hour),
		BcryptCost:                 getIntEnv("BCRYPT_COST", bcrypt.DefaultCost),
		AllowedOrigins:             splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimitWindow:            getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:               getIntEnv("RATE_LIMIT_MAX", 100),
		RateLimitAuthWindow:        getDurationEnv("RATE_LIMIT_AUTH_WINDOW", 15*time.Minute),
		RateLimitAuthMax:           getIntEnv("RATE_LIMIT_AUTH_MAX", 5),
		RequireAdminForWaitingList: getBoolEnv("REQUIRE_ADMIN_FOR_WAITING_LIST", false),
		MaxBodyBytes:               int64(getIntEnv("MAX_BODY_BYTES", 10<<20)),
		SeedSampleData:             getBoolEnv("SEED_SAMPLE_DATA", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration values that have no usable fallback.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Ignoring invalid integer for %s: %q", key, value)
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Ignoring invalid boolean for %s: %q", key, value)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Ignoring invalid duration for %s: %q", key, value)
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
