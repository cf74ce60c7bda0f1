package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvArbiterAPIKey      = "ARBITER_OPENAI_API_KEY"
	EnvArbiterBaseURL     = "ARBITER_OPENAI_BASE_URL"
	EnvArbiterModel       = "ARBITER_OPENAI_MODEL"
	EnvArbiterTemperature = "ARBITER_OPENAI_TEMPERATURE"
)

// ArbiterConfig holds the model settings behind AI verdicts.
type ArbiterConfig struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ArbiterConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ArbiterConfig) Merge(overlay *ArbiterConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
}

func (c *ArbiterConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
}

func (c *ArbiterConfig) loadEnv() {
	if v := os.Getenv(EnvArbiterAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvArbiterBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvArbiterModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvArbiterTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = t
		}
	}
}

func (c *ArbiterConfig) validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid temperature: %f", c.Temperature)
	}
	return nil
}
