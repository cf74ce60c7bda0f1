package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvAuthTokenSecret = "ARBITER_AUTH_TOKEN_SECRET"
	EnvAuthTokenTTL    = "ARBITER_AUTH_TOKEN_TTL"
	EnvAuthCodeTTL     = "ARBITER_AUTH_CODE_TTL"
	EnvAuthMaxAttempts = "ARBITER_AUTH_MAX_ATTEMPTS"
)

// AuthConfig holds token signing and code verification parameters.
type AuthConfig struct {
	TokenSecret string `toml:"token_secret"`
	TokenTTL    string `toml:"token_ttl"`
	CodeTTL     string `toml:"code_ttl"`
	MaxAttempts int    `toml:"max_attempts"`
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *AuthConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// CodeTTLDuration returns CodeTTL as a time.Duration.
func (c *AuthConfig) CodeTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CodeTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.TokenSecret != "" {
		c.TokenSecret = overlay.TokenSecret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.CodeTTL != "" {
		c.CodeTTL = overlay.CodeTTL
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "720h"
	}
	if c.CodeTTL == "" {
		c.CodeTTL = "5m"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthTokenSecret); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv(EnvAuthTokenTTL); v != "" {
		c.TokenTTL = v
	}
	if v := os.Getenv(EnvAuthCodeTTL); v != "" {
		c.CodeTTL = v
	}
	if v := os.Getenv(EnvAuthMaxAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAttempts = n
		}
	}
}

func (c *AuthConfig) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret required (set %s)", EnvAuthTokenSecret)
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.CodeTTL); err != nil {
		return fmt.Errorf("invalid code_ttl: %w", err)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("invalid max_attempts: %d", c.MaxAttempts)
	}
	return nil
}
