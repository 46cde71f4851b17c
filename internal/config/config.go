// Package config loads runtime configuration from YAML with environment
// overrides. The admin credential lives here, not in source: either a
// plaintext password or a bcrypt hash, with the hash taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultSiteName     = "portfolio"
	defaultStoreBackend = "file"
	defaultStorePath    = "portfolio-data.json"
	defaultEnv          = "production"
)

// Config is the applied runtime configuration.
type Config struct {
	Env   string      `yaml:"env"` // "development" | "production"
	Site  SiteConfig  `yaml:"site"`
	Admin AdminConfig `yaml:"admin"`
	Store StoreConfig `yaml:"store"`
}

// SiteConfig names the site; the name prefixes export files.
type SiteConfig struct {
	Name string `yaml:"name"`
}

// AdminConfig is the single authorized identity. When PasswordHash is set
// it wins over Password.
type AdminConfig struct {
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// StoreConfig selects the persistence backend.
// Backend is one of "memory", "file", "sqlite", "redis". Path configures
// the file/sqlite backends, URL the redis backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	URL     string `yaml:"url"`
}

// Load reads the YAML file at path (missing file is fine, defaults apply)
// and then applies PORTFOLIO_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Env:   defaultEnv,
		Site:  SiteConfig{Name: defaultSiteName},
		Store: StoreConfig{Backend: defaultStoreBackend, Path: defaultStorePath},
	}

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Site.Name == "" {
		cfg.Site.Name = defaultSiteName
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = defaultStoreBackend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env string
		dst *string
	}{
		{"PORTFOLIO_ENV", &cfg.Env},
		{"PORTFOLIO_SITE_NAME", &cfg.Site.Name},
		{"PORTFOLIO_ADMIN_EMAIL", &cfg.Admin.Email},
		{"PORTFOLIO_ADMIN_PASSWORD", &cfg.Admin.Password},
		{"PORTFOLIO_ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash},
		{"PORTFOLIO_STORE_BACKEND", &cfg.Store.Backend},
		{"PORTFOLIO_STORE_PATH", &cfg.Store.Path},
		{"PORTFOLIO_STORE_URL", &cfg.Store.URL},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.dst = v
		}
	}
}

// StoreDSN returns the backend-specific locator for kv.Open.
func (c *Config) StoreDSN() string {
	switch c.Store.Backend {
	case "redis":
		return c.Store.URL
	default:
		return c.Store.Path
	}
}

// IsDev reports whether the environment is development.
func (c *Config) IsDev() bool { return c.Env == "development" }
