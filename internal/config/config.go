package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port   string
	AppEnv string

	// DatabaseURI comes from DATABASE with the <PASSWORD> placeholder
	// already substituted.
	DatabaseURI string
	DatabaseDB  string

	JWTSecret       string
	JWTExpiresIn    time.Duration
	JWTCookieExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	CORSOrigin string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	uri := strings.Replace(
		getEnv("DATABASE", "mongodb://localhost:27017"),
		"<PASSWORD>",
		os.Getenv("DATABASE_PASSWORD"),
		1,
	)

	return &Config{
		Port:        getEnv("PORT", "3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		DatabaseURI: uri,
		DatabaseDB:  getEnv("MONGO_DB", "gotours"),

		JWTSecret:       getEnv("JWT_SECRET", "dev-only-secret"),
		JWTExpiresIn:    getDuration("JWT_EXPIRES_IN", 90*24*time.Hour),
		JWTCookieExpiry: getDuration("JWT_COOKIE_EXPIRES_IN", 90*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getInt("SMTP_PORT", 25),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", "GoTours <hello@gotours.dev>"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}
}

// IsProduction reports whether the app runs with production error verbosity.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer in environment, using default")
	}
	return defaultValue
}

// getDuration accepts Go duration strings ("90m") and bare day counts ("90"),
// the latter matching the convention of the original deployment environment.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if days, err := strconv.Atoi(value); err == nil {
		return time.Duration(days) * 24 * time.Hour
	}
	log.Warn().Str("key", key).Str("value", value).Msg("invalid duration in environment, using default")
	return defaultValue
}
