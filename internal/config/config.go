package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL    = "http://127.0.0.1:7420"
	DefaultLogLevel  = "info"
	DefaultDataDir   = ".litepad"
	configFileName   = ".litepad.toml"
	settingsDBName   = "litepad.db"
	imagesDirName    = "images"
	configDirEnvKey  = "LITEPAD_CONFIG_DIR"
	dataDirEnvKey    = "LITEPAD_DATA_DIR"
	apiURLEnvKey     = "LITEPAD_API_URL"
	logLevelEnvKey   = "LITEPAD_LOG_LEVEL"
)

// Config defines runtime configuration for litepad.
type Config struct {
	DataDir  string `toml:"data_dir"`
	APIURL   string `toml:"api_url"`
	LogLevel string `toml:"log_level"`
}

// Default returns default configuration values. DataDir stays empty here
// and is resolved against the home directory in Load.
func Default() Config {
	return Config{
		DataDir:  "",
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
	}
}

// ImagesRoot is the blob store directory under the data dir.
func (c *Config) ImagesRoot() string {
	return filepath.Join(c.DataDir, imagesDirName)
}

// SettingsDBPath is the settings store location under the data dir.
func (c *Config) SettingsDBPath() string {
	return filepath.Join(c.DataDir, settingsDBName)
}

// Load reads config from the config file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := overrideConfigPath()
	if explicit {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
			return nil, err
		}
	}

	if dataDir := strings.TrimSpace(os.Getenv(dataDirEnvKey)); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if apiURL := strings.TrimSpace(os.Getenv(apiURLEnvKey)); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if level := strings.TrimSpace(os.Getenv(logLevelEnvKey)); level != "" {
		cfg.LogLevel = level
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, DefaultDataDir)
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

// GlobalPath returns the path to the config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

var allowedKeys = []string{
	"data_dir",
	"api_url",
	"log_level",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "api_url":
		return c.APIURL, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	data[key] = value

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}
