package api

import (
	"os"
	"strings"

	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process. External
// collaborators (postgres, redis, Temporal, Supabase, Gemini) are all
// optional: missing credentials degrade to local-only mode.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	JWTSigningKey     string
	AdminEmail        string
}

// DefaultSigningKey keeps local development working without configuration.
// Production deployments must set JWT_SIGNING_KEY.
const DefaultSigningKey = "osart-dev-signing-key"

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() Config {
	return Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		JWTSigningKey:     envDefault("JWT_SIGNING_KEY", DefaultSigningKey),
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
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
