package orders

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the order service process.
type Config struct {
	Port                   string
	PostgresDSN            string
	UserServiceURL         string
	ProductServiceURL      string
	NotificationServiceURL string
	TemporalAddress        string
	TemporalNamespace      string
	TemporalDisabled       bool
}

// LoadConfig reads a .env file when present, then the environment, applying
// defaults. Collaborator URLs default to the compose/Kubernetes service names.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Port:                   envDefault("PORT", "3003"),
		PostgresDSN:            strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		UserServiceURL:         envDefault("USER_SERVICE_URL", "http://user-service:3001"),
		ProductServiceURL:      envDefault("PRODUCT_SERVICE_URL", "http://product-service:3002"),
		NotificationServiceURL: envDefault("NOTIFICATION_SERVICE_URL", "http://notification-service:3004"),
		TemporalAddress:        envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:      envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:       isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
