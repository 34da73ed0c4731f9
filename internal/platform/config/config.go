package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FileName           = "ritual.yaml"
	DefaultSelfPackage = "com.example.ritual"
	DefaultHTTPAddr    = "127.0.0.1:8787"
)

type Config struct {
	DataDir      string `yaml:"-"`
	DBPath       string `yaml:"-"`
	VaultPath    string `yaml:"vault_path"`
	LogLevel     string `yaml:"log_level"`
	HTTPAddr     string `yaml:"http_addr"`
	SharedSecret string `yaml:"shared_secret"`
	SelfPackage  string `yaml:"self_package"`
}

// New returns the defaults for a data directory without touching the disk.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "ritual.db"),
		VaultPath:   filepath.Join(dataDir, "vault"),
		LogLevel:    "info",
		HTTPAddr:    DefaultHTTPAddr,
		SelfPackage: DefaultSelfPackage,
	}, nil
}

// Load layers ritual.yaml, then <dataDir>/.env, then RITUAL_* variables over
// the defaults. Missing files are fine; a malformed yaml file is not.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := godotenv.Load(filepath.Join(dataDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	overrideFromEnv(&cfg)

	if cfg.SelfPackage == "" {
		cfg.SelfPackage = DefaultSelfPackage
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("RITUAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RITUAL_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("RITUAL_SHARED_SECRET"); v != "" {
		cfg.SharedSecret = v
	}
	if v := os.Getenv("RITUAL_SELF_PACKAGE"); v != "" {
		cfg.SelfPackage = v
	}
	if v := os.Getenv("RITUAL_VAULT"); v != "" {
		cfg.VaultPath = v
	}
}
