package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DevJWTSecret is the fallback signing key used when JWT_SECRET is unset.
// main logs a warning when it is in effect.
const DevJWTSecret = "dev_jwt_secret"

type Config struct {
	Port             string
	Env              string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	AdminEmail       string
	AdminPassword    string
	AdminCode        string
	SendgridAPIKey   string
	EmailSender      string
	ContactRecipient string
	PingMessage      string
}

// Load reads the environment, honoring a local .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8000"),
		Env:              getEnv("APP_ENV", "development"),
		MongoURI:         getEnv("MONGODB_URI", ""),
		MongoDB:          getEnv("MONGODB_DB", "medizo"),
		JWTSecret:        getEnv("JWT_SECRET", DevJWTSecret),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AdminCode:        getEnv("ADMIN_CODE", ""),
		SendgridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailSender:      getEnv("EMAIL_SENDER", ""),
		ContactRecipient: getEnv("CONTACT_RECIPIENT", ""),
		PingMessage:      getEnv("PING_MESSAGE", "ping"),
	}
}

// Production reports whether the app is running with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
