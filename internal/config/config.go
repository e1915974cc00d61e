// Package config resolves consultas settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults
//  2. config.ini in the application directory
//  3. a .env file in the working directory
//  4. CONSULTAS_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// FileName is the ini file looked up in the application directory.
const FileName = "config.ini"

// Config holds every setting consultas reads at startup.
type Config struct {
	Storage StorageConfig `ini:"storage"`
	Auth    AuthConfig    `ini:"auth"`
	Log     LogConfig     `ini:"log"`
}

type StorageConfig struct {
	// Backend is "bolt" or "sqlite"
	Backend string `ini:"backend"`

	// Path of the database file; empty means <appdir>/consultas.<backend>
	Path string `ini:"path"`
}

type AuthConfig struct {
	User         string        `ini:"user"`
	PasswordHash string        `ini:"password_hash"`
	Secret       string        `ini:"session_secret"`
	SessionTTL   time.Duration `ini:"session_ttl"`
}

type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `ini:"level"`

	// File receives log output; empty means stderr
	File string `ini:"file"`
}

// Default returns the built-in configuration, before config.ini, .env and
// environment overrides are applied.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: "bolt"},
		Auth: AuthConfig{
			User:       "admin",
			Secret:     "consultas-local-session",
			SessionTTL: 12 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load resolves the configuration for appDir.
func Load(appDir string) (*Config, error) {
	cfg := Default()

	iniPath := filepath.Join(appDir, FileName)
	if _, err := os.Stat(iniPath); err == nil {
		if err := loadINI(iniPath, &cfg); err != nil {
			return nil, err
		}
	}

	// a missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.resolve(appDir); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadINI(path string, cfg *Config) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := f.MapTo(cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"CONSULTAS_BACKEND":        &cfg.Storage.Backend,
		"CONSULTAS_DB_PATH":        &cfg.Storage.Path,
		"CONSULTAS_USER":           &cfg.Auth.User,
		"CONSULTAS_PASSWORD_HASH":  &cfg.Auth.PasswordHash,
		"CONSULTAS_SESSION_SECRET": &cfg.Auth.Secret,
		"CONSULTAS_LOG_LEVEL":      &cfg.Log.Level,
		"CONSULTAS_LOG_FILE":       &cfg.Log.File,
	}

	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("CONSULTAS_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CONSULTAS_SESSION_TTL: %w", err)
		}

		cfg.Auth.SessionTTL = ttl
	}

	return nil
}

func (c *Config) resolve(appDir string) error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = "bolt"
	case "bolt", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.Path == "" {
		ext := map[string]string{"bolt": "bolt", "sqlite": "db"}[c.Storage.Backend]
		c.Storage.Path = filepath.Join(appDir, "consultas."+ext)
	}

	return nil
}
