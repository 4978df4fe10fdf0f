// ABOUTME: Connection settings for the council client: defaults, YAML files, overrides
// ABOUTME: Later sources win: defaults <- ~/.council/client.yaml <- ./.council.yaml <- flags

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults match the council server's own defaults.
const (
	DefaultHost = "localhost"
	DefaultPort = 9001
)

// Duration accepts "30s"-style strings in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds everything needed to reach the council server.
type Config struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	DialTimeout Duration `yaml:"dial_timeout"`
	CallTimeout Duration `yaml:"call_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		DialTimeout: Duration(5 * time.Second),
	}
}

// Addr returns the host:port dial string.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load builds the effective configuration. If explicitPath is non-empty only
// that file is read (and must exist); otherwise the user file then the
// project file are merged over the defaults. Missing default-location files
// are not an error.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	if explicitPath != "" {
		if err := mergeFile(&cfg, explicitPath, true); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeFile(&cfg, filepath.Join(home, ".council", "client.yaml"), false); err != nil {
			return Config{}, err
		}
	}
	if err := mergeFile(&cfg, ".council.yaml", false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// mergeFile overlays the settings found at path onto cfg. Fields absent from
// the file keep their current values.
func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("config %s: port %d out of range", path, cfg.Port)
	}
	return nil
}
