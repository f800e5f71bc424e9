package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Config holds every runtime setting the server needs. It is built once in
// main and handed to the components that need each piece; nothing reads the
// environment after startup.
type Config struct {
	Port          string  `yaml:"port"`
	DatabaseURL   string  `yaml:"database_url"`
	JWTSecret     string  `yaml:"jwt_secret"`
	StaticDir     string  `yaml:"static_dir"`
	ChatUpstream  string  `yaml:"chat_upstream"`
	ChatAPIKey    string  `yaml:"chat_api_key"`
	RequireDBAuth bool    `yaml:"require_db_auth"`
	AuthRateLimit float64 `yaml:"auth_rate_limit"`
	AuthRateBurst int     `yaml:"auth_rate_burst"`
}

// Load builds the config from an optional YAML file (CONFIG_FILE) with
// environment variables taking precedence. Database settings and the token
// secret have no fallback values; Validate fails when they are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          "3000",
		StaticDir:     "dist",
		AuthRateLimit: 5,
		AuthRateBurst: 10,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.StaticDir, "STATIC_DIR")
	setString(&cfg.ChatUpstream, "CHAT_UPSTREAM")
	setString(&cfg.ChatAPIKey, "CHAT_API_KEY")

	if v := os.Getenv("REQUIRE_DB_AUTH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUIRE_DB_AUTH: %w", err)
		}
		cfg.RequireDBAuth = b
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
		}
		cfg.AuthRateLimit = f
	}
	if v := os.Getenv("AUTH_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
		}
		cfg.AuthRateBurst = n
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = dsnFromParts()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database is not configured: set DATABASE_URL or DB_HOST/DB_NAME/DB_USER")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// dsnFromParts assembles a keyword/value DSN from the discrete DB_* variables
// the original deployment used. Returns "" when DB_HOST is unset.
func dsnFromParts() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s",
		host, port, os.Getenv("DB_NAME"), os.Getenv("DB_USER"))
	if pass := os.Getenv("DB_PASS"); pass != "" {
		dsn += " password=" + pass
	}
	return dsn
}
