// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
	ShutdownGrace  time.Duration
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout time.Duration
	RunMigrations  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret string
	// TTL is configured in milliseconds through JWT_EXPIRATION_MS.
	TTL time.Duration
}

type CacheConfig struct {
	TeacherTTL time.Duration
}

// Load reads the .env file at envFile (ignored when missing) and then the process environment.
// Real environment variables take precedence over .env entries.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Debug(".env file not loaded", "path", envFile, "error", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")
	v.SetDefault("SHUTDOWN_GRACE", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "60s")
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_EXPIRATION_MS", 86400000)
	v.SetDefault("TEACHER_CACHE_TTL", "5m")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownGrace:  v.GetDuration("SHUTDOWN_GRACE"),
		},
		DB: DBConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
			RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    time.Duration(v.GetInt64("JWT_EXPIRATION_MS")) * time.Millisecond,
		},
		Cache: CacheConfig{
			TeacherTTL: v.GetDuration("TEACHER_CACHE_TTL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("JWT_SECRET environment variable is required")
	}
	if c.JWT.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").With("JWT_EXPIRATION_MS", c.JWT.TTL.Milliseconds()).Errorf("JWT_EXPIRATION_MS must be positive")
	}
	if c.DB.Name == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DB_NAME environment variable is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
