package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/princinho/marketplace/utils"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config is read from the environment once at startup.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Origins  []string
	LogLevel string
	Env      string
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver       string
	URI          string
	DatabaseName string
	Timeout      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOST", "0.0.0.0"),
			Port:            getEnv("PORT", "8000"),
			ReadTimeout:     getEnvAsSeconds("READ_TIMEOUT_SECONDS", 15),
			WriteTimeout:    getEnvAsSeconds("WRITE_TIMEOUT_SECONDS", 15),
			ShutdownTimeout: getEnvAsSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10),
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
			URI:          getEnv("MONGODB_URI", os.Getenv("DATABASE_URL")),
			DatabaseName: getEnv("DATABASE_NAME", "marketplace"),
			Timeout:      getEnvAsSeconds("STORE_TIMEOUT_SECONDS", 5),
		},
		Origins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Env:      getEnv("APP_ENV", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Server.Port)
	}
	switch c.Store.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (must be mongo or memory)", c.Store.Driver)
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT_SECONDS must be positive")
	}
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// URISet reports whether a connection string was configured.
func (c *Config) URISet() bool {
	return c.Store.URI != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultValue int) time.Duration {
	n := defaultValue
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	return time.Duration(n) * time.Second
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	out := utils.SplitAndTrim(valueStr)
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
