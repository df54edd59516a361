package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	LedgerAPIURL         string
	RedisURL             string
	JWTSecret            string
	SnapshotTTL          time.Duration
	SettleToleranceCents int64
	AppName              string
}

var AppConfig *Config

func Load() {
	godotenv.Load() // Load .env file if present

	AppConfig = &Config{
		Port:                 getEnv("PORT", "8080"),
		LedgerAPIURL:         getEnv("LEDGER_API_URL", "http://localhost:3000/api"),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		SnapshotTTL:          getDuration("SNAPSHOT_TTL", 30*time.Second),
		SettleToleranceCents: getInt64("SETTLE_TOLERANCE_CENTS", 1),
		AppName:              getEnv("APP_NAME", "SplitSight"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
