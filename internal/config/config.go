package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
)

const (
	StoreLocal    = "local"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Work     settings.WorkSettings
	Live     LiveConfig
	CORS     CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// StorageConfig selects where the snapshot lives.
type StorageConfig struct {
	Type         string
	BasePath     string
	SnapshotFile string

	// SeedDefaults seeds the default roster when no snapshot exists yet
	SeedDefaults bool
}

type LiveConfig struct {
	Interval  time.Duration
	Keepalive time.Duration
	Buffer    int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the environment, after applying a .env file if there is one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "timeclock"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEFAULT_EMPLOYEES", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEFAULT_EMPLOYEES: %w", err)
	}
	config.Storage = StorageConfig{
		Type:         strings.ToLower(getEnv("STORE_TYPE", StoreLocal)),
		BasePath:     getEnv("STORAGE_BASE_PATH", "./data"),
		SnapshotFile: getEnv("STORAGE_SNAPSHOT_FILE", "timeclock.json"),
		SeedDefaults: seed,
	}

	defaults := settings.Default()
	workHours, err := strconv.ParseFloat(getEnv("WORK_HOURS_PER_DAY", strconv.FormatFloat(defaults.WorkHoursPerDay, 'f', -1, 64)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOURS_PER_DAY: %w", err)
	}
	tolerance, err := strconv.Atoi(getEnv("WORK_TOLERANCE_MINUTES", strconv.Itoa(defaults.ToleranceMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_TOLERANCE_MINUTES: %w", err)
	}
	config.Work = settings.WorkSettings{
		WorkHoursPerDay:  workHours,
		ToleranceMinutes: tolerance,
		WorkStartTime:    getEnv("WORK_START_TIME", defaults.WorkStartTime),
	}

	interval, err := time.ParseDuration(getEnv("LIVE_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIVE_INTERVAL: %w", err)
	}
	keepalive, err := time.ParseDuration(getEnv("LIVE_KEEPALIVE", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIVE_KEEPALIVE: %w", err)
	}
	buffer, err := strconv.Atoi(getEnv("LIVE_BUFFER", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIVE_BUFFER: %w", err)
	}
	config.Live = LiveConfig{
		Interval:  interval,
		Keepalive: keepalive,
		Buffer:    buffer,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StoreLocal:
		if c.Storage.SnapshotFile == "" {
			return fmt.Errorf("STORAGE_SNAPSHOT_FILE is required for the local store")
		}
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_TYPE %q", c.Storage.Type)
	}

	if err := c.Work.Check(); err != nil {
		return err
	}
	if c.Live.Interval <= 0 {
		return fmt.Errorf("LIVE_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
