package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is used when Load is given a directory.
	DefaultConfigFile = "config.json"

	// EnvConfigPath overrides the config path passed on the command line.
	EnvConfigPath = "GATEFIELD_CONFIG"
)

// Config represents the complete application configuration.
type Config struct {
	mu   sync.RWMutex
	path string

	Network   NetworkConfig   `json:"network" yaml:"network"`
	Account   AccountConfig   `json:"account" yaml:"account"`
	API       APIConfig       `json:"api" yaml:"api"`
	MQTT      MQTTConfig      `json:"mqtt" yaml:"mqtt"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	DevServer DevServerConfig `json:"devserver" yaml:"devserver"`
}

// NetworkConfig holds the connection parameters of the protocol engine.
type NetworkConfig struct {
	GateHost             string `json:"gate_host" yaml:"gate_host"`
	GatePort             uint16 `json:"gate_port" yaml:"gate_port"`
	ConnectTimeoutSec    int    `json:"connect_timeout_sec" yaml:"connect_timeout_sec"`
	WriteTimeoutSec      int    `json:"write_timeout_sec" yaml:"write_timeout_sec"`
	MaxFrameSize         int    `json:"max_frame_size" yaml:"max_frame_size"`
	QueueCapacity        int    `json:"queue_capacity" yaml:"queue_capacity"`
	TickIntervalMs       int    `json:"tick_interval_ms" yaml:"tick_interval_ms"`
	HeartbeatIntervalSec int    `json:"heartbeat_interval_sec" yaml:"heartbeat_interval_sec"`
	AutoCharList         bool   `json:"auto_char_list" yaml:"auto_char_list"`
}

// ConnectTimeout bounds a single Gate or Field connect.
func (n NetworkConfig) ConnectTimeout() time.Duration {
	return time.Duration(n.ConnectTimeoutSec) * time.Second
}

func (n NetworkConfig) WriteTimeout() time.Duration {
	return time.Duration(n.WriteTimeoutSec) * time.Second
}

func (n NetworkConfig) TickInterval() time.Duration {
	return time.Duration(n.TickIntervalMs) * time.Millisecond
}

func (n NetworkConfig) HeartbeatInterval() time.Duration {
	return time.Duration(n.HeartbeatIntervalSec) * time.Second
}

// AccountConfig holds optional credentials for unattended login.
type AccountConfig struct {
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	AutoLogin   bool   `json:"auto_login" yaml:"auto_login"`
	CharacterID uint32 `json:"character_id" yaml:"character_id"`
}

// APIConfig holds the control API settings.
type APIConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled"`
	Host           string   `json:"host" yaml:"host"`
	Port           int      `json:"port" yaml:"port"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
	// Token, when set, must be sent as a bearer token on control routes.
	Token        string `json:"token" yaml:"token"`
	RateLimitRPS int    `json:"rate_limit_rps" yaml:"rate_limit_rps"`
}

// Addr returns host:port for the API listener.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// MQTTConfig holds MQTT broker settings.
type MQTTConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	BrokerURL   string `json:"broker_url" yaml:"broker_url"`
	Port        int    `json:"port" yaml:"port"`
	UseTLS      bool   `json:"use_tls" yaml:"use_tls"`
	ClientID    string `json:"client_id" yaml:"client_id"`
	TopicPrefix string `json:"topic_prefix" yaml:"topic_prefix"`
}

// JournalConfig controls the SQLite session journal.
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`
	Directory  string `json:"directory" yaml:"directory"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

// DevServerConfig configures the local gate and field servers.
type DevServerConfig struct {
	GateAddr        string            `json:"gate_addr" yaml:"gate_addr"`
	FieldAddr       string            `json:"field_addr" yaml:"field_addr"`
	FieldPublicHost string            `json:"field_public_host" yaml:"field_public_host"`
	Accounts        map[string]string `json:"accounts" yaml:"accounts"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			GateHost:             "127.0.0.1",
			GatePort:             7100,
			ConnectTimeoutSec:    10,
			WriteTimeoutSec:      10,
			MaxFrameSize:         8192,
			QueueCapacity:        4096,
			TickIntervalMs:       16,
			HeartbeatIntervalSec: 15,
			AutoCharList:         true,
		},
		API: APIConfig{
			Enabled:        true,
			Host:           "127.0.0.1",
			Port:           7180,
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimitRPS:   20,
		},
		MQTT: MQTTConfig{
			Enabled:     false,
			BrokerURL:   "localhost",
			Port:        1883,
			ClientID:    "gatefield",
			TopicPrefix: "gatefield",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "gatefield.db",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "gatefield",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Directory:  "logs",
			MaxSizeMB:  50,
			MaxBackups: 5,
		},
		DevServer: DevServerConfig{
			GateAddr:        "127.0.0.1:7100",
			FieldAddr:       "127.0.0.1:7101",
			FieldPublicHost: "127.0.0.1",
			Accounts:        map[string]string{"test": "test"},
		},
	}
}

// ResolvePath returns the path from GATEFIELD_CONFIG when set, else path.
func ResolvePath(path string) string {
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	return path
}

// Load reads the configuration at path, or at path/config.json when path is
// a directory. Files ending in .yaml or .yml are parsed as YAML, anything
// else as JSON. A missing file is created with defaults.
func Load(path string) (*Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultConfigFile)
	}

	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// file values overlay the defaults
	if err := unmarshal(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to its file, in the format its extension selects.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.path == "" {
		return fmt.Errorf("config has no path")
	}

	data, err := marshal(c.path, c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func marshal(path string, cfg *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// GetNetwork returns a copy of the network settings.
func (c *Config) GetNetwork() NetworkConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Network
}

// SetGate points the engine at a different gate server.
func (c *Config) SetGate(host string, port uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Network.GateHost = host
	c.Network.GatePort = port
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}
