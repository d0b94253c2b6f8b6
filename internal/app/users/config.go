package users

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the user service process.
type Config struct {
	Port        string
	PostgresDSN string
}

// LoadConfig reads a .env file when present, then the environment, applying
// defaults.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Port:        envDefault("PORT", "3001"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
