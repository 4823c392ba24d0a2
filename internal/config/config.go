package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from yaml strings like "2s"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
	Backend struct {
		BaseURL    string `yaml:"base_url"`
		ChannelURL string `yaml:"channel_url"`
	} `yaml:"backend"`
	Channel struct {
		ReconnectAttempts int      `yaml:"reconnect_attempts"`
		ReconnectDelay    Duration `yaml:"reconnect_delay"`
	} `yaml:"channel"`
	Store struct {
		RefreshInterval Duration `yaml:"refresh_interval"`
		CachePath       string   `yaml:"cache_path"`
	} `yaml:"store"`
	Session struct {
		Path   string `yaml:"path"`
		Secret string `yaml:"secret"`
	} `yaml:"session"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Backend.BaseURL = "http://localhost:5000/api"
	cfg.Backend.ChannelURL = "ws://localhost:5000/events"
	cfg.Channel.ReconnectAttempts = 5
	cfg.Channel.ReconnectDelay = Duration(time.Second)
	cfg.Store.RefreshInterval = Duration(2 * time.Second)
	cfg.Store.CachePath = "maitred.db"
	cfg.Session.Path = "session.jwt"
	cfg.Session.Secret = "maitred-session-secret"
	return cfg
}

// Load reads the yaml config at path, then applies MAITRED_* environment
// overrides. A .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)

	if cfg.Channel.ReconnectAttempts < 0 {
		return nil, fmt.Errorf("channel.reconnect_attempts must not be negative")
	}
	if cfg.Store.RefreshInterval <= 0 {
		return nil, fmt.Errorf("store.refresh_interval must be positive")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MAITRED_API_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("MAITRED_CHANNEL_URL"); v != "" {
		cfg.Backend.ChannelURL = v
	}
	if v := os.Getenv("MAITRED_SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("MAITRED_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
