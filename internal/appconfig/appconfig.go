// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultSource is where the leaderboard document is read from.
	DefaultSource = "/leaderboard.yml"
	// DefaultRoot is the directory root-relative sources resolve against.
	DefaultRoot = "public"
	// DefaultOutput is where `render` writes the page.
	DefaultOutput = "leaderboard.html"
	// defaultRequestTimeout bounds a single leaderboard fetch.
	defaultRequestTimeout = 30 * time.Second
	// defaultScale is the number of pixels per score unit.
	defaultScale = 30.0
	defaultHost  = "127.0.0.1"
	defaultPort  = 8080
)

// Config represents the top-level application configuration.
type Config struct {
	Source         string  `json:"source" yaml:"source"`
	Root           string  `json:"root" yaml:"root"`
	Title          string  `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle       string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Scale          float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	Host           string  `json:"host,omitempty" yaml:"host,omitempty"`
	Port           int     `json:"port,omitempty" yaml:"port,omitempty"`
	Output         string  `json:"output,omitempty" yaml:"output,omitempty"`
	Format         string  `json:"format,omitempty" yaml:"format,omitempty"`
	TimeoutSeconds int     `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
	LogFile        string  `json:"logFile,omitempty" yaml:"logFile,omitempty"`
	Debug          bool    `json:"debug" yaml:"debug"`
	Strict         bool    `json:"strict" yaml:"strict"`
	ConfigPath     string  `json:"-" yaml:"-" mapstructure:"-"`
}

// Defaults returns a configuration with every default applied.
func Defaults() Config {
	return Config{
		Source:         DefaultSource,
		Root:           DefaultRoot,
		Scale:          defaultScale,
		Host:           defaultHost,
		Port:           defaultPort,
		Output:         DefaultOutput,
		Format:         "html",
		TimeoutSeconds: int(defaultRequestTimeout.Seconds()),
	}
}

// RequestTimeout returns the timeout for fetching the leaderboard, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScaleOrDefault returns the pixels-per-unit scale.
func (c Config) ScaleOrDefault() float64 {
	if c.Scale <= 0 {
		return defaultScale
	}
	return c.Scale
}

// SourceOrDefault returns the leaderboard source.
func (c Config) SourceOrDefault() string {
	if s := strings.TrimSpace(c.Source); s != "" {
		return s
	}
	return DefaultSource
}

// ListenAddr returns host:port for the HTTP server.
func (c Config) ListenAddr() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultHost
	}
	port := c.Port
	if port <= 0 {
		port = defaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "ccboard.log"
}

// Load reads the application configuration from the specified path. JSON and
// YAML are both accepted, chosen by extension. Missing keys take defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, err)
	}
	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	config := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, err
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return Config{}, err
		}
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}
	if config.Scale < 0 {
		return Config{}, fmt.Errorf("scale must be positive, got %v", config.Scale)
	}

	return config, nil
}
