package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Client holds all configuration for the roclient tool.
type Client struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// TickInterval is how often every client is polled
	TickInterval time.Duration `yaml:"tick_interval"`

	Network    NetworkConfig    `yaml:"network"`
	Login      LoginConfig      `yaml:"login"`
	CharServer CharServerConfig `yaml:"char_server"`
	Zone       ZoneConfig       `yaml:"zone"`
}

// NetworkConfig is shared by all three connections.
type NetworkConfig struct {
	ConnectTimeout   time.Duration `yaml:"connect_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	PollWait         time.Duration `yaml:"poll_wait"`
	MaxReceiveBuffer int           `yaml:"max_receive_buffer"` // bytes
}

// LoginConfig holds login server credentials.
type LoginConfig struct {
	Address       string        `yaml:"address"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	ClientVersion uint32        `yaml:"client_version"`
	ClientType    uint8         `yaml:"client_type"`
	Timeout       time.Duration `yaml:"timeout"`
}

// CharServerConfig selects the character server and the character.
type CharServerConfig struct {
	// ServerIndex picks an entry of the login server list
	ServerIndex int `yaml:"server_index"`
	// Address overrides the address from the server list when set
	Address           string        `yaml:"address"`
	Slot              uint8         `yaml:"slot"`
	KeepaliveInterval time.Duration `yaml:"keepalive_interval"`
}

// ZoneConfig tunes the zone client.
type ZoneConfig struct {
	AuthTimeout  time.Duration `yaml:"auth_timeout"`
	NameCacheTTL time.Duration `yaml:"name_cache_ttl"`
}

// DefaultClient returns Client config with sensible defaults.
func DefaultClient() Client {
	return Client{
		LogLevel:     "info",
		TickInterval: 16 * time.Millisecond,
		Network: NetworkConfig{
			ConnectTimeout:   30 * time.Second,
			WriteTimeout:     5 * time.Second,
			PollWait:         time.Millisecond,
			MaxReceiveBuffer: 1 << 20,
		},
		Login: LoginConfig{
			Address:       "127.0.0.1:6900",
			ClientVersion: 55,
			Timeout:       15 * time.Second,
		},
		CharServer: CharServerConfig{
			KeepaliveInterval: 12 * time.Second,
		},
		Zone: ZoneConfig{
			AuthTimeout:  30 * time.Second,
			NameCacheTTL: 5 * time.Minute,
		},
	}
}

// LoadClient loads client config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SlogLevel converts LogLevel to slog.Level. Unknown values mean info.
func (c Client) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
