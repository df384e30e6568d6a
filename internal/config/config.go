package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port       string
	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string // sqlite file
	// Site document
	ConfigKey string
	// Static gate for admin routes; empty disables the check
	AdminKey string
	// Client side
	EndpointURL    string
	LeadMirrorDir  string
	HTTPTimeoutSec string
	LogLevel       string
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		DBDriver:       getenv("DB_DRIVER", "postgres"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         getenv("DB_USER", "postgres"),
		DBPassword:     getenv("DB_PASSWORD", "postgres"),
		DBName:         getenv("DB_NAME", "site_db"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		DBPath:         getenv("DB_PATH", "site.db"),
		ConfigKey:      getenv("CONFIG_KEY", "site"),
		AdminKey:       getenv("ADMIN_KEY", ""),
		EndpointURL:    getenv("SITE_ENDPOINT_URL", ""),
		LeadMirrorDir:  getenv("LEAD_MIRROR_DIR", ".leads"),
		HTTPTimeoutSec: getenv("HTTP_TIMEOUT_SECONDS", "15"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
}

// HTTPTimeout parses HTTPTimeoutSec, falling back to 15s.
func (c *Config) HTTPTimeout() time.Duration {
	n, err := strconv.Atoi(c.HTTPTimeoutSec)
	if err != nil || n <= 0 {
		return 15 * time.Second
	}
	return time.Duration(n) * time.Second
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

// Logger builds the production zap logger; LOG_LEVEL=debug lowers the level.
func (c *Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if strings.EqualFold(c.LogLevel, "debug") {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}
