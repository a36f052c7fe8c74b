// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production points at the live booking service.
	Production Environment = "production"
)

// Config is the master configuration for the royalbus client.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// API configures the booking service connection.
	API APIConfig `yaml:"api"`

	// Payment configures the external payment page.
	Payment PaymentConfig `yaml:"payment"`

	// Session configures local session storage.
	Session SessionConfig `yaml:"session"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API     *APIConfig     `yaml:"api,omitempty"`
	Payment *PaymentConfig `yaml:"payment,omitempty"`
	Session *SessionConfig `yaml:"session,omitempty"`
}

// APIConfig configures the booking service connection.
type APIConfig struct {
	// BaseURL is the service origin; endpoint paths (all under /api/)
	// are appended to it.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`
}

// PaymentConfig configures the external payment page.
type PaymentConfig struct {
	// PageURL is the hosted payment page. The one-time payment token is
	// appended as the payment_token query parameter.
	PageURL string `yaml:"page_url"`
}

// SessionConfig configures local session storage.
type SessionConfig struct {
	// File is the session file path. Empty means the default location
	// under the user config directory.
	File string `yaml:"file"`
}

// Default returns the default configuration, pointed at the live
// service. A config file is only needed to override it.
func Default() *Config {
	return &Config{
		Environment: Production,
		API: APIConfig{
			BaseURL: "https://mahmoudali0.pythonanywhere.com",
			Timeout: "30s",
		},
		Payment: PaymentConfig{
			PageURL: "https://accept.paymob.com/api/acceptance/iframes/908347",
		},
	}
}

// Load loads configuration from the ROYALBUS_CONFIG environment
// variable. Unlike server-side tooling this client runs fine without a
// config file, so an unset variable yields the defaults rather than an
// error.
func Load() (*Config, error) {
	configPath := os.Getenv("ROYALBUS_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
	}

	if overrides.Payment != nil {
		if overrides.Payment.PageURL != "" {
			c.Payment.PageURL = overrides.Payment.PageURL
		}
	}

	if overrides.Session != nil {
		if overrides.Session.File != "" {
			c.Session.File = overrides.Session.File
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Session.File = expandVars(c.Session.File, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url is not an absolute URL: %s", c.API.BaseURL))
	}

	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("api.timeout is not a duration: %s", c.API.Timeout))
		}
	}

	if c.Payment.PageURL == "" {
		errs = append(errs, fmt.Errorf("payment.page_url is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequestTimeout returns the parsed API timeout, falling back to the
// default when the field is empty or malformed. Validate reports the
// malformed case; this accessor never fails.
func (c *Config) RequestTimeout() time.Duration {
	if c.API.Timeout == "" {
		return 30 * time.Second
	}
	timeout, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return timeout
}
