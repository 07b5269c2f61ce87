package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file kept inside the data directory.
const FileName = "fintrack.yaml"

// Config is the client-side configuration. Everything beyond this file and
// the token pair lives server-side.
type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig controls client diagnostics.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a fintrack.yaml from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DataDir resolves the directory holding config, tokens, and the activity
// log. FINTRACK_DATA_DIR overrides the default ~/.fintrack.
func DataDir() (string, error) {
	if dir := os.Getenv("FINTRACK_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".fintrack"), nil
}

// Resolve loads the effective configuration: .env (if present), then the
// config file (defaults written on first run), then FINTRACK_* environment
// overrides. Returns the config and the data directory it lives in.
func Resolve() (*Config, string, error) {
	_ = gotenv.Load()

	dataDir, err := DataDir()
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	if url := os.Getenv("FINTRACK_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if level := os.Getenv("FINTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, dataDir, nil
}
