package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port    string
	GinMode string

	// Database
	DBDriver    string
	DatabaseURL string

	// Identity provider
	AuthProvider            string
	JWTSecret               string
	JWTIssuer               string
	FirebaseCredentialsFile string
	FirebaseProjectID       string

	PasswordHasher string

	// Change events; publishing is off when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment after applying a .env
// file from the working directory, if there is one. Variables already set
// in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "release"),

		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL: getEnv("DATABASE_URL", "pennywise.db"),

		AuthProvider:            getEnv("AUTH_PROVIDER", "jwt"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		JWTIssuer:               getEnv("JWT_ISSUER", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "PennyWise.json"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),

		PasswordHasher: getEnv("PASSWORD_HASHER", "sha256"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "pennywise"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate returns every configuration problem in a single error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains([]string{"debug", "release", "test"}, c.GinMode) {
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be debug, release or test", c.GinMode))
	}

	switch c.DBDriver {
	case "sqlite", "postgres":
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL cannot be empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be sqlite or postgres", c.DBDriver))
	}

	switch c.AuthProvider {
	case "jwt":
		if c.JWTSecret == "" {
			problems = append(problems, "JWT_SECRET is required when AUTH_PROVIDER is jwt")
		}
	case "firebase":
		if c.FirebaseCredentialsFile == "" {
			problems = append(problems, "FIREBASE_CREDENTIALS_FILE is required when AUTH_PROVIDER is firebase")
		} else if _, err := os.Stat(c.FirebaseCredentialsFile); err != nil {
			problems = append(problems, fmt.Sprintf("firebase credentials file not readable: %v", err))
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid AUTH_PROVIDER '%s': must be jwt or firebase", c.AuthProvider))
	}

	if !slices.Contains([]string{"sha256", "bcrypt"}, c.PasswordHasher) {
		problems = append(problems, fmt.Sprintf("invalid PASSWORD_HASHER '%s': must be sha256 or bcrypt", c.PasswordHasher))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP_EXCHANGE cannot be empty when AMQP_URL is set")
		}
	}

	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL '%s': must be debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
