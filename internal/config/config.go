// Package config loads the runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

type Config struct {
	// HTTP server
	Port             string
	APIURL           *url.URL
	CORSAllowOrigins []string
	EnablePprof      bool

	// Logging
	LogFormat string // "human" or "json". Empty means "decide by gin mode"

	// Database. When DBHost is set, postgresql is used instead of sqlite
	DataDir    string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	// Authentication
	JWTSecret string
	TokenTTL  time.Duration

	// AMQP event publishing. Disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// Domain
	Currency              currency.Unit
	EnforceBudgetOnUpdate bool

	// problems collects parse errors so that Validate can report them together
	problems []string
}

// Load reads the configuration from the environment.
//
// If a .env file exists in the working directory, it is loaded first.
// Variables already set in the environment take precedence.
func Load() Config {
	_ = godotenv.Load()

	c := Config{
		Port:                  getEnv("PORT", "8080"),
		LogFormat:             os.Getenv("LOG_FORMAT"),
		DataDir:               getEnv("DATA_DIR", filepath.Join(".", "data")),
		DBHost:                os.Getenv("DB_HOST"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		TokenTTL:              getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AMQPURL:               os.Getenv("AMQP_URL"),
		AMQPExchange:          getEnv("AMQP_EXCHANGE", "spendwise"),
		EnablePprof:           os.Getenv("ENABLE_PPROF") == "true",
		EnforceBudgetOnUpdate: getEnv("ENFORCE_BUDGET_ON_UPDATE", "true") == "true",
		CORSAllowOrigins:      strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
	}

	apiURL, err := url.Parse(getEnv("API_URL", "http://localhost:8080"))
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid API_URL: %v", err))
	}
	c.APIURL = apiURL

	unit, err := currency.ParseISO(getEnv("CURRENCY", "INR"))
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid CURRENCY %q: must be an ISO 4217 code", os.Getenv("CURRENCY")))
	}
	c.Currency = unit

	return c
}

// Validate returns an error listing every problem with the configuration.
func (c Config) Validate() error {
	problems := append([]string{}, c.problems...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be set and at least 16 characters long")
	}

	if c.TokenTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}

	if c.DBHost != "" && (c.DBUser == "" || c.DBName == "") {
		problems = append(problems, "DB_USER and DB_NAME are required when DB_HOST is set")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}

		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// SQLitePath is the path of the sqlite database file.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "spendwise.db")
}

// PostgresDSN is the connection URL for postgresql.
//
// The session timezone is always UTC.
func (c Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"TimeZone": []string{"UTC"}}.Encode(),
	}

	return dsn.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
