package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	StoreType       string // memory, sqlite, postgres, mysql, redis
	DatabasePath    string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogURL      string
	StaticFilesPath string
	AudioPath       string
	QuizWordCount   int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	// A .env file is optional
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	return &Config{
		ServerPort:      port,
		StoreType:       getEnv("STORE_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./spellbound.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CatalogURL:      getEnv("CATALOG_URL", "http://localhost:"+port+"/static/data"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		AudioPath:       getEnv("AUDIO_PATH", "./static/audio"),
		QuizWordCount:   getEnvInt("QUIZ_WORD_COUNT", 10),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
