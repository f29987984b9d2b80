package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL      string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	DBMaxOpenConns   int
	DBMaxIdleConns   int

	// Redis
	RedisURL      string
	RedisPassword string
	CacheEnabled  bool

	// Server
	Port           string
	AllowedOrigins []string

	// Authentication
	JWTSecret string
	TokenTTL  time.Duration

	// Rate limiting
	RateLimitRPS        float64
	RateLimitBurst      int
	HighscoreLimitRPS   float64
	HighscoreLimitBurst int
}

func Load() *Config {
	return &Config{
		// Environment
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Database
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "balatro"),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "balatro_user"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "balatro_password"),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		DBMaxOpenConns:   getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getIntOrDefault("DB_MAX_IDLE_CONNS", 5),

		// Redis
		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		CacheEnabled:  getBoolOrDefault("CACHE_ENABLED", true),

		// Server
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		// Authentication
		JWTSecret: getEnvOrDefault("JWT_SECRET", "balatro-secret-key-change-in-production"),
		TokenTTL:  getDurationOrDefault("TOKEN_TTL", 24*time.Hour),

		// Rate limiting
		RateLimitRPS:        getFloatOrDefault("RATE_LIMIT_RPS", 20),
		RateLimitBurst:      getIntOrDefault("RATE_LIMIT_BURST", 40),
		HighscoreLimitRPS:   getFloatOrDefault("HIGHSCORE_RATE_LIMIT_RPS", 0.2),
		HighscoreLimitBurst: getIntOrDefault("HIGHSCORE_RATE_LIMIT_BURST", 3),
	}
}

func (c *Config) GetDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
