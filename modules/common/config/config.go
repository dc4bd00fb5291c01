package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment variable the server reads.
type Config struct {
	// Server
	Port string

	// Gemini API
	GeminiAPIKey string
	GeminiModel  string

	// Upload limit
	MaxUploadMB int

	// Generated image recompression
	WebPQuality int
}

var globalConfig *Config

// LoadConfig - load the .env file (if present) and environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	maxUploadMB := 10
	if sizeStr := os.Getenv("MAX_UPLOAD_MB"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 {
			maxUploadMB = parsed
		}
	}

	webpQuality := 80
	if qualityStr := os.Getenv("WEBP_QUALITY"); qualityStr != "" {
		if parsed, err := strconv.Atoi(qualityStr); err == nil && parsed > 0 && parsed <= 100 {
			webpQuality = parsed
		}
	}

	globalConfig = &Config{
		Port: getEnv("PORT", "8080"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),

		MaxUploadMB: maxUploadMB,
		WebPQuality: webpQuality,
	}

	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Port: %s", globalConfig.Port)
	log.Printf("   Gemini: %s", globalConfig.GeminiModel)
	log.Printf("   Upload limit: %d MB", globalConfig.MaxUploadMB)
	log.Printf("   WebP quality: %d", globalConfig.WebPQuality)

	return globalConfig, nil
}

// GetConfig - fetch the loaded configuration
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - check required environment variables
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// getEnv - read an environment variable with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MaxUploadBytes - upload ceiling in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
