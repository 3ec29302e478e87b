package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings read from the environment
type Config struct {
	// DBType selects the driver: "postgres" or "sqlite"
	DBType string
	// DatabaseURL is the postgres connection string; ignored for sqlite
	DatabaseURL string
	// SQLitePath is the database file used when DBType is "sqlite"
	SQLitePath string

	Port string

	JWTSecret      string
	AccessTokenTTL time.Duration
	// RefreshThreshold: a token presented with less than this much lifetime
	// left gets silently reissued
	RefreshThreshold time.Duration

	TelegramBotToken string

	NotificationStartHour int
	NotificationEndHour   int
}

// Load reads .env (if present) and builds the configuration
func Load() *Config {
	// .env is optional: in production everything comes from real env vars
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DBType:                getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		SQLitePath:            getEnv("SQLITE_PATH", "data/kazlearn.db"),
		Port:                  getEnv("PORT", "8000"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		AccessTokenTTL:        time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		RefreshThreshold:      time.Duration(getEnvInt("TOKEN_REFRESH_THRESHOLD_MINUTES", 15)) * time.Minute,
		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		NotificationStartHour: getEnvInt("NOTIFICATION_START_HOUR", 8),
		NotificationEndHour:   getEnvInt("NOTIFICATION_END_HOUR", 22),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
