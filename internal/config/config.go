package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// History backends
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	BotToken      string
	TranslatorURL string
	Translation   TranslationConfig
	History       HistoryConfig
	Database      DatabaseConfig
	Redis         RedisConfig
}

// TranslationConfig holds defaults applied to new chats
type TranslationConfig struct {
	DefaultSourceLanguage string
	DefaultTargetLanguage string
	PreserveFormatting    bool
}

// HistoryConfig selects where translation history is persisted
type HistoryConfig struct {
	Backend string
	Key     string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	preserve, err := strconv.ParseBool(getEnv("PRESERVE_FORMATTING", "true"))
	if err != nil {
		return nil, fmt.Errorf("PRESERVE_FORMATTING must be a boolean: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		TranslatorURL: getEnv("TRANSLATOR_URL", "http://localhost:5000"),
		Translation: TranslationConfig{
			DefaultSourceLanguage: getEnv("DEFAULT_SOURCE_LANGUAGE", "en"),
			DefaultTargetLanguage: getEnv("DEFAULT_TARGET_LANGUAGE", "pt"),
			PreserveFormatting:    preserve,
		},
		History: HistoryConfig{
			Backend: strings.ToLower(getEnv("HISTORY_BACKEND", BackendPostgres)),
			Key:     getEnv("HISTORY_KEY", "translationHistory"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "techtranslator"),
			User:     getEnv("DB_USER", "techtranslator"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Prefix:   getEnv("REDIS_PREFIX", "techtranslator:"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	switch cfg.History.Backend {
	case BackendPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for the postgres history backend")
		}
	case BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("HISTORY_BACKEND must be one of postgres, redis, memory, got %q", cfg.History.Backend)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
