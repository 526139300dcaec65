// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/preilly17/VacationSync-sub009/internal/amadeus"
	"github.com/preilly17/VacationSync-sub009/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config
	Amadeus    amadeus.Config
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables. It returns an AppConfig instance or an error if any
// variable is invalid.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	serverPort := getEnv("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	amadeusEnv := getEnv("AMADEUS_ENV", "prod")
	defaultBaseURL := "https://api.amadeus.com"
	if amadeusEnv != "prod" {
		defaultBaseURL = "https://test.api.amadeus.com"
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "vacationsync"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Amadeus: amadeus.Config{
			ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
			ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
			BaseURL:      getEnv("AMADEUS_BASE_URL", defaultBaseURL),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
