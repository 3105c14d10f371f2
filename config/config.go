// Package config loads the server's TOML configuration file: a single
// [server] table with the resource limits and paths §5/§6 call for.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultMaxUploadBytes is the §5 resource limit: 1 GiB.
const DefaultMaxUploadBytes int64 = 1 << 30

// DefaultRequestTimeout is the §5 resource limit on synchronous handlers.
const DefaultRequestTimeout = 30 * time.Minute

// ServerConfig is the `[server]` table of the configuration file.
type ServerConfig struct {
	Port           string `toml:"port"`
	UploadDir      string `toml:"uploadDir"`
	MaxUploadBytes int64  `toml:"maxUploadBytes"`
	RequestTimeout string `toml:"requestTimeout"`
}

// Config is the top-level configuration document.
type Config struct {
	Server *ServerConfig
}

func defaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           "8080",
		UploadDir:      "uploads",
		MaxUploadBytes: DefaultMaxUploadBytes,
		RequestTimeout: DefaultRequestTimeout.String(),
	}
}

// RequestTimeoutDuration parses RequestTimeout, falling back to
// DefaultRequestTimeout if it is empty or malformed.
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return DefaultRequestTimeout
	}
	return d
}

// LoadConfig reads and decodes the TOML file at configPath. It decodes
// onto a raw map first and fills a typed struct field by field, so a
// config file missing the
// [server] table entirely still yields usable defaults rather than a zero
// value.
func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{Server: defaultServerConfig()}

	if serverMap, ok := rawConfig["server"].(map[string]any); ok {
		parseServerConfig(config.Server, serverMap)
	}

	return config, nil
}

func parseServerConfig(s *ServerConfig, m map[string]any) {
	if v, ok := m["port"].(string); ok {
		s.Port = v
	}
	if v, ok := m["uploadDir"].(string); ok {
		s.UploadDir = v
	}
	if v, ok := m["maxUploadBytes"].(int64); ok {
		s.MaxUploadBytes = v
	}
	if v, ok := m["requestTimeout"].(string); ok {
		s.RequestTimeout = v
	}
}
