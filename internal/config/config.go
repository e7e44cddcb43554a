package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the backend
type Config struct {
	ListenAddr  string
	DBPath      string
	JWTSecret   string
	SerpAPIKey  string
	OllamaURL   string
	OllamaModel string
	CORSOrigin  string
}

// Load reads configuration from a .env file (if present) and the environment
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8000"),
		DBPath:      getEnv("DB_PATH", "./interviewer.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SerpAPIKey:  os.Getenv("SERPAPI_API_KEY"),
		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: getEnv("OLLAMA_MODEL", "mistral:latest"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:8501"),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	if cfg.SerpAPIKey == "" {
		return nil, errors.New("SERPAPI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
