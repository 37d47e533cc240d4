package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	ServerPort  string
	Environment string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis configuration
	RedisAddress string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Secret used to sign the OAuth state parameter
	SessionSecret string

	// Where the browser is sent back after login/logout
	FrontendAddress string

	// Client configuration
	ServerURL    string
	ClientDBPath string
}

// Global application configuration
var AppConfig Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Find .env file
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		// Try to find .env in parent directories
		envPath = filepath.Join("..", ".env")
		if _, err := os.Stat(envPath); os.IsNotExist(err) {
			envPath = filepath.Join("..", "..", ".env")
		}
	}

	// Load .env file if it exists
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	AppConfig = Config{
		ServerPort:         getEnv("PORT", "8080"),
		Environment:        getEnv("ENV", "development"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "mandalart"),
		RedisAddress:       getEnv("REDIS_ADDRESS", "localhost:6379"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		FrontendAddress:    getEnv("FRONTEND_ADDRESS", "http://localhost:3001"),
		ServerURL:          getEnv("SERVER_URL", "http://localhost:8080"),
		ClientDBPath:       getEnv("CLIENT_DB_PATH", defaultClientDBPath()),
	}
}

// ValidateServer checks settings the server cannot start without
func ValidateServer() {
	if AppConfig.GoogleClientID == "" || AppConfig.GoogleClientSecret == "" {
		log.Fatal("Google OAuth credentials not found. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}
	if AppConfig.SessionSecret == "" {
		log.Fatal("SESSION_SECRET not found. Set SESSION_SECRET")
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultClientDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mandalart", "client.sqlite")
}
