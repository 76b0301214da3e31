package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvExtractionBaseURL = "DOSSIER_EXTRACTION_BASE_URL"
	EnvExtractionTimeout = "DOSSIER_EXTRACTION_TIMEOUT"
)

// ExtractionConfig locates the external extraction service that turns
// uploaded source files into content blocks.
type ExtractionConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ExtractionConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExtractionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ExtractionConfig) Merge(overlay *ExtractionConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ExtractionConfig) loadDefaults() {
	if c.Timeout == "" {
		// Extraction walks every source file in the project; slow by nature.
		c.Timeout = "5m"
	}
}

func (c *ExtractionConfig) loadEnv() {
	if v := os.Getenv(EnvExtractionBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvExtractionTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ExtractionConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
