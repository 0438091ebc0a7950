// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// DefaultJWTSecret is the development fallback signing secret. Running with
// it outside of dev is a known weakness; Load warns but does not refuse.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; every variable has an insecure development
// default so the service boots with nothing set.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBHost        string // database host address
	DBPort        string // database port number
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBName        string // database name
	JWTSecret     string // secret used to sign session tokens
	TokenTTLHours int    // session token time-to-live in hours
	BcryptCost    int    // bcrypt cost for password hashing
	AMQPURL       string // broker URL for audit events (empty disables them)
}

// Load reads configuration from the environment, falling back to the
// development defaults.
func Load() Config {
	cfg := Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "3000"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "3306"),
		DBUser:        getenv("DB_USER", "root"),
		DBPass:        os.Getenv("DB_PASS"),
		DBName:        getenv("DB_NAME", "sheet_music_db"),
		JWTSecret:     getenv("JWT_SECRET", DefaultJWTSecret),
		TokenTTLHours: getenvInt("TOKEN_TTL_HOURS", 24),
		BcryptCost:    getenvInt("BCRYPT_COST", 10),
		AMQPURL:       getenv("RABBITMQ_URL", os.Getenv("AMQP_URL")),
	}
	if cfg.JWTSecret == DefaultJWTSecret && cfg.Env != "dev" {
		log.Printf("WARNING: JWT_SECRET is the development default in env %q", cfg.Env)
	}
	return cfg
}

// getenv returns the value of key or fallback when unset or empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvInt is like getenv but parses the value as an integer. Unparseable
// values fall back rather than abort; boot should not fail on a typo here.
func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, s, fallback)
		return fallback
	}
	return n
}
