package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the somnus CLI.
type Config struct {
	// Username selects whose diary commands act on.
	Username string

	// DBPath is the SQLite file used when DatabaseURL is empty.
	DBPath string
	// DatabaseURL selects a PostgreSQL store instead of SQLite.
	DatabaseURL string

	TemplatePath string
	FontPath     string
	LayoutPath   string

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// DefaultConfig returns a Config with sensible defaults. The report cache
// is off until a Redis address is given.
func DefaultConfig() Config {
	return Config{
		Username:     defaultUsername(),
		DBPath:       defaultDBPath(),
		TemplatePath: filepath.Join("assets", "template.png"),
		LogLevel:     "warn",
		CacheTTL:     24 * time.Hour,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SOMNUS_USER"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("SOMNUS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = NormalizeDatabaseURL(v)
	}
	if v := os.Getenv("SOMNUS_TEMPLATE"); v != "" {
		cfg.TemplatePath = v
	}
	if v := os.Getenv("SOMNUS_FONT"); v != "" {
		cfg.FontPath = v
	}
	if v := os.Getenv("SOMNUS_LAYOUT"); v != "" {
		cfg.LayoutPath = v
	}
	if v := os.Getenv("SOMNUS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("SOMNUS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("SOMNUS_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("SOMNUS_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("SOMNUS_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}
	if v := os.Getenv("SOMNUS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
	return cfg
}

// UsePostgres reports whether the diary lives in PostgreSQL.
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// CacheEnabled reports whether rendered reports are cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// NormalizeDatabaseURL rewrites the short "postgres://" scheme, which some
// hosting providers emit, to the "postgresql://" form.
func NormalizeDatabaseURL(u string) string {
	if strings.HasPrefix(u, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(u, "postgres://")
	}
	return u
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "somnus.db"
	}
	return filepath.Join(home, ".somnus", "somnus.db")
}

func defaultUsername() string {
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	return "default"
}
