package products

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the product service process.
type Config struct {
	Port        string
	PostgresDSN string
}

// LoadConfig reads a .env file when present, then the environment, applying
// defaults. Redis settings are read by the platform redis package.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Port:        envDefault("PORT", "3002"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
