package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN  string
	RedisURL     string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
	ServerPort   string
	CartTTL      int // seconds
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		DatabaseDSN:  getEnv("DATABASE_DSN", "portal:portal@tcp(localhost:3306)/portal_app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		ServerPort:   getEnv("PORT", "8080"),
		CartTTL:      getEnvAsInt("CART_TTL", 86400),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
