// Package config loads server settings from an optional YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied before the file and environment are read.
const (
	DefaultPort              = 8080
	DefaultExtractorProvider = "http"
	DefaultExtractorURL      = "http://localhost:5002"
	DefaultExtractorTimeout  = 10 * time.Second
	DefaultExtractorModel    = "gemini-2.5-flash-lite"
)

// Config is the server configuration. Values from the environment override
// values read from the file.
type Config struct {
	Port        int             `yaml:"port"`
	DatabaseURL string          `yaml:"database_url"`
	Extractor   ExtractorConfig `yaml:"extractor"`
}

// ExtractorConfig selects and tunes the keyword extractor.
type ExtractorConfig struct {
	Provider string        `yaml:"provider"` // http, gemini or none
	URL      string        `yaml:"url"`
	Timeout  time.Duration `yaml:"timeout"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"-"` // only from GEMINI_API_KEY
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Port: DefaultPort,
		Extractor: ExtractorConfig{
			Provider: DefaultExtractorProvider,
			URL:      DefaultExtractorURL,
			Timeout:  DefaultExtractorTimeout,
			Model:    DefaultExtractorModel,
		},
	}
}

// LoadConfig reads a YAML file on top of Default. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// Load returns the configuration from path (if non-empty) with environment
// overrides applied, validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields with PORT, DATABASE_URL, EXTRACTOR_PROVIDER,
// EXTRACTOR_URL, EXTRACTOR_TIMEOUT, EXTRACTOR_MODEL and GEMINI_API_KEY when
// they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("EXTRACTOR_PROVIDER"); v != "" {
		c.Extractor.Provider = v
	}
	if v := os.Getenv("EXTRACTOR_URL"); v != "" {
		c.Extractor.URL = v
	}
	if v := os.Getenv("EXTRACTOR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid EXTRACTOR_TIMEOUT: %v", err)
		}
		c.Extractor.Timeout = d
	}
	if v := os.Getenv("EXTRACTOR_MODEL"); v != "" {
		c.Extractor.Model = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Extractor.APIKey = v
	}
	return nil
}

// Validate checks that the configuration has valid values. The database URL
// is not required here since the server may run on the in-memory store.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.Extractor.Timeout <= 0 {
		return fmt.Errorf("config error: 'extractor.timeout' must be positive")
	}

	switch c.Extractor.Provider {
	case "http":
		u, err := url.Parse(c.Extractor.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'extractor.url' must be an http(s) URL, got %q", c.Extractor.URL)
		}
	case "gemini":
		if c.Extractor.APIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required for the gemini extractor")
		}
	case "none":
	default:
		return fmt.Errorf("config error: unknown 'extractor.provider' %q (allowed: http, gemini, none)", c.Extractor.Provider)
	}

	return nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
