package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	// Redis configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate limiting configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Cleanup batch configuration. ExecutionDate is the single calendar
	// date (ISO, e.g. 2025-03-01) on which the scheduled sweep may run.
	CleanupExecutionDate string
	CleanupCron          string
	CleanupTimezone      string
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored elsewhere
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		// Defaults mirror production: check once a day at midnight Seoul time.
		CleanupExecutionDate: getEnv("CLEANUP_EXECUTION_DATE", ""),
		CleanupCron:          getEnv("CLEANUP_CRON", "0 0 0 * * *"),
		CleanupTimezone:      getEnv("CLEANUP_TIMEZONE", "Asia/Seoul"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Protected endpoints will reject all requests.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.CleanupExecutionDate == "" {
		log.Println("WARNING: CLEANUP_EXECUTION_DATE not configured. Cleanup job will never fire.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
