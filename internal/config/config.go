// Package config loads the service configuration from an optional YAML file,
// a .env file and ZALOGA_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/zaloga/internal/model"
)

type (
	// Config is the full service configuration.
	Config struct {
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Session  SessionConfig  `yaml:"session"`
		Tenancy  TenancyConfig  `yaml:"tenancy"`
		Auth     AuthConfig     `yaml:"auth"`
		Logger   LoggerConfig   `yaml:"logger"`
		Metrics  MetricsConfig  `yaml:"metrics"`
	}

	ServerConfig struct {
		Addr              string        `yaml:"addr"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
		ReadTimeout       time.Duration `yaml:"read_timeout"`
		WriteTimeout      time.Duration `yaml:"write_timeout"`
		IdleTimeout       time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
		CORS              CORSConfig    `yaml:"cors"`
	}

	// CORSConfig lists the browser origins allowed to call the API with
	// credentials.
	CORSConfig struct {
		AllowOrigins     []string `yaml:"allow_origins"`
		AllowCredentials bool     `yaml:"allow_credentials"`
	}

	DatabaseConfig struct {
		Path string `yaml:"path"`
	}

	// SessionConfig configures session cookies and where revoked session
	// IDs are kept. An empty secret is generated and stored in the database.
	SessionConfig struct {
		Secret     string        `yaml:"secret"`
		TTL        time.Duration `yaml:"ttl"`
		CookieName string        `yaml:"cookie_name"`
		Secure     bool          `yaml:"secure"`
		Revocation string        `yaml:"revocation"` // "sqlite" or "redis"
		Redis      RedisConfig   `yaml:"redis"`
	}

	RedisConfig struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	}

	TenancyConfig struct {
		Mode string `yaml:"mode"` // "multi" or "single"
	}

	AuthConfig struct {
		BcryptCost int `yaml:"bcrypt_cost"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
	}

	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Path      string    `yaml:"path"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}
)

// Revocation backends.
const (
	RevocationSQLite = "sqlite"
	RevocationRedis  = "redis"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":5555",
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			CORS: CORSConfig{
				AllowOrigins:     []string{"http://localhost:5173"},
				AllowCredentials: true,
			},
		},
		Database: DatabaseConfig{Path: "zaloga.sqlite3"},
		Session: SessionConfig{
			TTL:        7 * 24 * time.Hour,
			CookieName: "session",
			Revocation: RevocationSQLite,
			Redis:      RedisConfig{Addr: "localhost:6379", Prefix: "zaloga"},
		},
		Tenancy: TenancyConfig{Mode: model.TenancyMulti},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "zaloga",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(resolveEnv(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Tenancy.Mode {
	case model.TenancyMulti, model.TenancySingle:
	default:
		return fmt.Errorf("invalid tenancy mode %q (want multi or single)", c.Tenancy.Mode)
	}

	switch c.Session.Revocation {
	case RevocationSQLite:
	case RevocationRedis:
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("session.redis.addr is required for redis revocation")
		}
	default:
		return fmt.Errorf("invalid session revocation backend %q (want sqlite or redis)", c.Session.Revocation)
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Logger.Output == "file" && c.Logger.FilePath == "" {
		return fmt.Errorf("logger.file_path is required for file output")
	}
	return nil
}

var envPattern = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// resolveEnv replaces ${VAR} and ${VAR:default} placeholders in YAML content.
func resolveEnv(content []byte) []byte {
	return envPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := envPattern.FindSubmatch(match)
		if value, ok := os.LookupEnv(string(matches[1])); ok {
			return []byte(value)
		}
		return matches[2]
	})
}

func applyEnv(cfg *Config) {
	cfg.Database.Path = getEnv("ZALOGA_DB", cfg.Database.Path)
	cfg.Server.Addr = getEnv("ZALOGA_ADDR", cfg.Server.Addr)
	cfg.Tenancy.Mode = getEnv("ZALOGA_MODE", cfg.Tenancy.Mode)
	cfg.Session.Secret = getEnv("ZALOGA_SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.Secure = getEnvAsBool("ZALOGA_SESSION_SECURE", cfg.Session.Secure)
	cfg.Session.Revocation = getEnv("ZALOGA_SESSION_REVOCATION", cfg.Session.Revocation)
	cfg.Session.Redis.Addr = getEnv("ZALOGA_REDIS_ADDR", cfg.Session.Redis.Addr)
	cfg.Session.Redis.Password = getEnv("ZALOGA_REDIS_PASSWORD", cfg.Session.Redis.Password)
	cfg.Session.Redis.DB = getEnvAsInt("ZALOGA_REDIS_DB", cfg.Session.Redis.DB)
	cfg.Logger.Level = getEnv("ZALOGA_LOG_LEVEL", cfg.Logger.Level)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
