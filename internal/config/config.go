package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"accessiai/internal/common"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	configFileName = "config.toml"
	envPrefix      = "ACCESSIAI_"
)

// Storage backends understood by the container.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds application configuration
type Config struct {
	AppDataDir   string
	DatabasePath string

	StorageBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisPrefix    string

	// NotifierWorkers > 0 switches event delivery to a worker pool.
	NotifierWorkers int

	LogLevel string
	Logger   *slog.Logger
}

// fileConfig mirrors the optional config.toml in the app data directory.
type fileConfig struct {
	StorageBackend  *string `toml:"storage_backend"`
	RedisAddr       *string `toml:"redis_addr"`
	RedisPassword   *string `toml:"redis_password"`
	RedisDB         *int    `toml:"redis_db"`
	RedisPrefix     *string `toml:"redis_prefix"`
	NotifierWorkers *int    `toml:"notifier_workers"`
	LogLevel        *string `toml:"log_level"`
}

// New creates a new configuration instance rooted at the user's config directory
func New() *Config {
	return NewWithDir(getAppDataDir())
}

// NewWithDir creates a configuration whose data lives in dir
func NewWithDir(dir string) *Config {
	cfg := defaults(dir)
	cfg.setupDirectories()

	var problems []error
	if err := cfg.loadFile(filepath.Join(dir, configFileName)); err != nil {
		problems = append(problems, err)
	}
	if err := cfg.loadEnv(); err != nil {
		problems = append(problems, err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.setupLogger()
	for _, err := range problems {
		cfg.Logger.Warn("Ignoring invalid configuration", "error", err)
	}

	return cfg
}

func defaults(dir string) *Config {
	return &Config{
		AppDataDir:     dir,
		DatabasePath:   filepath.Join(dir, "database.sqlite3"),
		StorageBackend: BackendSQLite,
		RedisAddr:      "127.0.0.1:6379",
		RedisPrefix:    "accessiai:",
		LogLevel:       "info",
		Logger:         slog.Default(),
	}
}

func (c *Config) setupDirectories() {
	if err := os.MkdirAll(c.AppDataDir, common.DefaultDirPermissions); err != nil {
		c.Logger.Warn("Failed to create app data directory", "path", c.AppDataDir, "error", err)
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("parse %s at %d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}

	setString(&c.StorageBackend, fc.StorageBackend)
	setString(&c.RedisAddr, fc.RedisAddr)
	setString(&c.RedisPassword, fc.RedisPassword)
	setString(&c.RedisPrefix, fc.RedisPrefix)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.RedisDB != nil {
		c.RedisDB = *fc.RedisDB
	}
	if fc.NotifierWorkers != nil {
		c.NotifierWorkers = *fc.NotifierWorkers
	}
	return nil
}

// loadEnv reads .env from the working directory (if present) and then
// applies ACCESSIAI_* variables on top of the file configuration.
func (c *Config) loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v, ok := lookup("STORAGE_BACKEND"); ok {
		c.StorageBackend = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok {
		c.RedisAddr = v
	}
	if v, ok := lookup("REDIS_PASSWORD"); ok {
		c.RedisPassword = v
	}
	if v, ok := lookup("REDIS_PREFIX"); ok {
		c.RedisPrefix = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("DATABASE_PATH"); ok {
		c.DatabasePath = v
	}
	if v, ok := lookup("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", envPrefix, err)
		}
		c.RedisDB = n
	}
	if v, ok := lookup("NOTIFIER_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sNOTIFIER_WORKERS: %w", envPrefix, err)
		}
		c.NotifierWorkers = n
	}
	return nil
}

func (c *Config) setupLogger() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLevel(c.LogLevel)})
	c.Logger = slog.New(handler)
}

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func getAppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, common.AppName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, "."+strings.ToLower(common.AppName))
}
