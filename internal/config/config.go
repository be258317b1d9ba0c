// Package config loads server configuration from an optional YAML file with
// environment-variable overrides. Defaults are filled in code so an empty
// configuration is always runnable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding file configuration.
const (
	EnvDataDir   = "BOOTSTRAPMCP_DATA_DIR"
	EnvLogLevel  = "BOOTSTRAPMCP_LOG_LEVEL"
	EnvRepoURL   = "BOOTSTRAPMCP_REPO_URL"
	EnvBranch    = "BOOTSTRAPMCP_BRANCH"
	EnvTransport = "BOOTSTRAPMCP_TRANSPORT"
	EnvHost      = "BOOTSTRAPMCP_HOST"
	EnvPort      = "BOOTSTRAPMCP_PORT"
)

// Database filenames inside the data directory.
const (
	docsDBName      = "bootstrap_docs.db"
	templatesDBName = "bootstrap_examples.db"
	repoDirName     = "bootstrap-repo"
)

// Config is the complete server configuration.
type Config struct {
	DataDir string        `yaml:"data_dir"`
	Repo    RepoConfig    `yaml:"repo"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Search  SearchConfig  `yaml:"search"`
}

// RepoConfig configures the upstream documentation repository.
type RepoConfig struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch"`
}

// ServerConfig configures the MCP transport.
type ServerConfig struct {
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
	Stderr    bool   `yaml:"stderr"`
}

// SearchConfig bounds query-service result sizes.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Repo: RepoConfig{
			URL:    "https://github.com/twbs/bootstrap.git",
			Branch: "main",
		},
		Server: ServerConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      8001,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
			Stderr:    true,
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".bootstrapmcp", "data")
}

// Load builds the configuration: defaults, then the YAML file at path if it
// exists, then environment overrides. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvRepoURL); v != "" {
		c.Repo.URL = v
	}
	if v := os.Getenv(EnvBranch); v != "" {
		c.Repo.Branch = v
	}
	if v := os.Getenv(EnvTransport); v != "" {
		c.Server.Transport = v
	}
	if v := os.Getenv(EnvHost); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks constraints that would otherwise fail deep inside the
// server.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", c.Server.Transport)
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("default search limit must be positive, got %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("max search limit %d below default %d", c.Search.MaxLimit, c.Search.DefaultLimit)
	}
	return nil
}

// DocsDBPath returns the documentation index location.
func (c *Config) DocsDBPath() string {
	return filepath.Join(c.DataDir, docsDBName)
}

// TemplatesDBPath returns the template index location.
func (c *Config) TemplatesDBPath() string {
	return filepath.Join(c.DataDir, templatesDBName)
}

// RepoPath returns the local checkout location.
func (c *Config) RepoPath() string {
	return filepath.Join(c.DataDir, repoDirName)
}
