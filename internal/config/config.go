// Package config loads the settings used by the commands in this module from a
// YAML file, an optional .env file and FB_* environment variables.
package config

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	fbgraph "github.com/jamesprial/go-facebook-graph-wrapper"
	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/validation"
)

// Environment variables that override the file.
const (
	EnvClientID       = "FB_CLIENT_ID"
	EnvClientSecret   = "FB_CLIENT_SECRET"
	EnvRedirectURI    = "FB_REDIRECT_URI"
	EnvAccessToken    = "FB_ACCESS_TOKEN"
	EnvAPIVersion     = "FB_API_VERSION"
	EnvLocale         = "FB_LOCALE"
	EnvLogLevel       = "FB_LOG_LEVEL"
	EnvAppSecretProof = "FB_APPSECRET_PROOF"
)

// DefaultEnvFile is read when Load is not given env files.
const DefaultEnvFile = ".env"

// App identifies the Facebook app.
type App struct {
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	RedirectURI    string `yaml:"redirect_uri"`
	AppSecretProof bool   `yaml:"appsecret_proof"`
}

// RateLimit mirrors fbgraph.RateLimitConfig.
type RateLimit struct {
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	Burst             int     `yaml:"burst"`
}

// Graph holds the request settings.
type Graph struct {
	AccessToken string        `yaml:"access_token"`
	Version     string        `yaml:"version"`
	Locale      string        `yaml:"locale"`
	GraphURL    string        `yaml:"graph_url"`
	DialogURL   string        `yaml:"dialog_url"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   RateLimit     `yaml:"rate_limit"`
}

// Logging configures the console logger.
type Logging struct {
	Level string `yaml:"level"` // debug, info, warn, error, optionally with +N/-N
	Color *bool  `yaml:"color"` // nil means auto-detect
}

// Config is the full command configuration.
type Config struct {
	App     App     `yaml:"app"`
	Graph   Graph   `yaml:"graph"`
	Logging Logging `yaml:"logging"`
}

// Load builds a Config. Sources are applied in order, later ones winning:
//
//  1. the YAML file at path, when path is not empty
//  2. FB_* variables, with envFiles (or .env) loaded into the environment first
//  3. defaults for anything still unset
//
// A missing .env file is not an error; a missing YAML file is.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = loadFromYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		files = []string{DefaultEnvFile}
	}
	// godotenv never overrides variables already set in the process.
	if err := godotenv.Load(files...); err != nil {
		return errors.Wrap(err, "load env file")
	}
	return nil
}

func loadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", filename)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", filename)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setFromEnv(&c.App.ClientID, EnvClientID)
	setFromEnv(&c.App.ClientSecret, EnvClientSecret)
	setFromEnv(&c.App.RedirectURI, EnvRedirectURI)
	setFromEnv(&c.Graph.AccessToken, EnvAccessToken)
	setFromEnv(&c.Graph.Version, EnvAPIVersion)
	setFromEnv(&c.Graph.Locale, EnvLocale)
	setFromEnv(&c.Logging.Level, EnvLogLevel)

	if v := os.Getenv(EnvAppSecretProof); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvAppSecretProof)
		}
		c.App.AppSecretProof = b
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Graph.Version == "" {
		c.Graph.Version = fbgraph.DefaultVersion
	}
	if c.Graph.Timeout == 0 {
		c.Graph.Timeout = fbgraph.DefaultTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the values that can be checked without the network.
// Credentials are not required here; each client operation checks its own.
func (c *Config) Validate() error {
	if !validation.IsValidVersion(c.Graph.Version) {
		return errors.Errorf("graph.version %q must look like v2.9", c.Graph.Version)
	}
	if c.Graph.Locale != "" && !validation.IsValidLocale(c.Graph.Locale) {
		return errors.Errorf("graph.locale %q must look like en_US", c.Graph.Locale)
	}
	if c.Graph.Timeout < 0 {
		return errors.New("graph.timeout must not be negative")
	}
	if c.Graph.RateLimit.RequestsPerMinute < 0 || c.Graph.RateLimit.Burst < 0 {
		return errors.New("graph.rate_limit values must not be negative")
	}
	if c.App.AppSecretProof && c.App.ClientSecret == "" {
		return errors.New("app.appsecret_proof requires app.client_secret")
	}
	if _, err := internal.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() slog.Level {
	level, err := internal.ParseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ClientConfig converts c into a client configuration using logger.
func (c *Config) ClientConfig(logger *slog.Logger) *fbgraph.Config {
	return &fbgraph.Config{
		ClientID:       c.App.ClientID,
		ClientSecret:   c.App.ClientSecret,
		RedirectURI:    c.App.RedirectURI,
		AppSecretProof: c.App.AppSecretProof,
		AccessToken:    c.Graph.AccessToken,
		Version:        c.Graph.Version,
		Locale:         c.Graph.Locale,
		GraphURL:       c.Graph.GraphURL,
		DialogURL:      c.Graph.DialogURL,
		HTTPClient:     &http.Client{Timeout: c.Graph.Timeout},
		RateLimit: &fbgraph.RateLimitConfig{
			RequestsPerMinute: c.Graph.RateLimit.RequestsPerMinute,
			Burst:             c.Graph.RateLimit.Burst,
		},
		Logger: logger,
	}
}
