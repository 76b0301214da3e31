package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvClassificationBatchSize    = "DOSSIER_CLASSIFICATION_BATCH_SIZE"
	EnvClassificationStaleTimeout = "DOSSIER_CLASSIFICATION_STALE_TIMEOUT"
)

// ClassificationConfig tunes the background classification engine.
// BatchSize bounds the content sent to the model per call; StaleTimeout
// is how long a processing record may go without an update before a new
// run is allowed to take it over.
type ClassificationConfig struct {
	BatchSize    int    `toml:"batch_size"`
	StaleTimeout string `toml:"stale_timeout"`
}

// StaleTimeoutDuration returns StaleTimeout as a time.Duration.
func (c *ClassificationConfig) StaleTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.StaleTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ClassificationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassificationConfig) Merge(overlay *ClassificationConfig) {
	if overlay.BatchSize != 0 {
		c.BatchSize = overlay.BatchSize
	}
	if overlay.StaleTimeout != "" {
		c.StaleTimeout = overlay.StaleTimeout
	}
}

func (c *ClassificationConfig) loadDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = 4
	}
	if c.StaleTimeout == "" {
		c.StaleTimeout = "10m"
	}
}

func (c *ClassificationConfig) loadEnv() {
	if v := os.Getenv(EnvClassificationBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv(EnvClassificationStaleTimeout); v != "" {
		c.StaleTimeout = v
	}
}

func (c *ClassificationConfig) validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive")
	}
	if _, err := time.ParseDuration(c.StaleTimeout); err != nil {
		return fmt.Errorf("invalid stale_timeout: %w", err)
	}
	return nil
}
