package config_test

import (
	"testing"
	"time"

	"github.com/meridianlegal/dossier/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	var c config.ServerConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %q, want 0.0.0.0:8080", c.Addr())
	}
	if c.ReadTimeoutDuration() != time.Minute {
		t.Errorf("read timeout: got %v, want 1m", c.ReadTimeoutDuration())
	}
	if c.WriteTimeoutDuration() != 10*time.Minute {
		t.Errorf("write timeout: got %v, want 10m", c.WriteTimeoutDuration())
	}
	if c.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", c.ShutdownTimeoutDuration())
	}
}

func TestServerConfigEnvOverrides(t *testing.T) {
	t.Setenv("DOSSIER_SERVER_HOST", "127.0.0.1")
	t.Setenv("DOSSIER_SERVER_PORT", "9090")

	var c config.ServerConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.Addr() != "127.0.0.1:9090" {
		t.Errorf("addr: got %q, want 127.0.0.1:9090", c.Addr())
	}
}

func TestServerConfigInvalidPort(t *testing.T) {
	c := config.ServerConfig{Port: 99999}
	if err := c.Finalize(); err == nil {
		t.Error("finalize: got nil error for port 99999")
	}
}

func TestClassificationConfigDefaults(t *testing.T) {
	var c config.ClassificationConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.BatchSize != 4 {
		t.Errorf("batch size: got %d, want 4", c.BatchSize)
	}
	if c.StaleTimeoutDuration() != 10*time.Minute {
		t.Errorf("stale timeout: got %v, want 10m", c.StaleTimeoutDuration())
	}
}

func TestClassificationConfigEnvOverrides(t *testing.T) {
	t.Setenv("DOSSIER_CLASSIFICATION_BATCH_SIZE", "8")
	t.Setenv("DOSSIER_CLASSIFICATION_STALE_TIMEOUT", "2m")

	var c config.ClassificationConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.BatchSize != 8 {
		t.Errorf("batch size: got %d, want 8", c.BatchSize)
	}
	if c.StaleTimeoutDuration() != 2*time.Minute {
		t.Errorf("stale timeout: got %v, want 2m", c.StaleTimeoutDuration())
	}
}

func TestClassificationConfigInvalidBatchSize(t *testing.T) {
	c := config.ClassificationConfig{BatchSize: -1}
	if err := c.Finalize(); err == nil {
		t.Error("finalize: got nil error for negative batch size")
	}
}

func TestExtractionConfigDefaults(t *testing.T) {
	var c config.ExtractionConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.BaseURL != "" {
		t.Errorf("base url: got %q, want empty", c.BaseURL)
	}
	if c.TimeoutDuration() != 5*time.Minute {
		t.Errorf("timeout: got %v, want 5m", c.TimeoutDuration())
	}
}

func TestExtractionConfigEnvOverrides(t *testing.T) {
	t.Setenv("DOSSIER_EXTRACTION_BASE_URL", "http://extractor:5000")
	t.Setenv("DOSSIER_EXTRACTION_TIMEOUT", "30s")

	var c config.ExtractionConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.BaseURL != "http://extractor:5000" {
		t.Errorf("base url: got %q", c.BaseURL)
	}
	if c.TimeoutDuration() != 30*time.Second {
		t.Errorf("timeout: got %v, want 30s", c.TimeoutDuration())
	}
}

func TestAgentConfigDefaults(t *testing.T) {
	var c config.AgentConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c.Name != "default-agent" {
		t.Errorf("name: got %q, want default-agent", c.Name)
	}
	if c.Client == nil || c.Client.Provider == nil {
		t.Fatal("transport provider not populated")
	}
	if c.Client.Provider.Name != "ollama" {
		t.Errorf("provider: got %q, want ollama", c.Client.Provider.Name)
	}
	if c.Client.Provider.Model == nil {
		t.Error("model not populated")
	}
}

func TestAgentConfigEnvOverrides(t *testing.T) {
	t.Setenv("DOSSIER_AGENT_PROVIDER_NAME", "azure")
	t.Setenv("DOSSIER_AGENT_BASE_URL", "https://example.openai.azure.com")
	t.Setenv("DOSSIER_AGENT_MODEL_NAME", "gpt-4o")
	t.Setenv("DOSSIER_AGENT_TOKEN", "secret")
	t.Setenv("DOSSIER_AGENT_DEPLOYMENT", "dossier-prod")

	var c config.AgentConfig
	if err := c.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	provider := c.Client.Provider
	if provider.Name != "azure" {
		t.Errorf("provider: got %q, want azure", provider.Name)
	}
	if provider.BaseURL != "https://example.openai.azure.com" {
		t.Errorf("base url: got %q", provider.BaseURL)
	}
	if provider.Model.Name != "gpt-4o" {
		t.Errorf("model: got %q, want gpt-4o", provider.Model.Name)
	}
	if provider.Options["token"] != "secret" {
		t.Errorf("token option: got %v", provider.Options["token"])
	}
	if provider.Options["deployment"] != "dossier-prod" {
		t.Errorf("deployment option: got %v", provider.Options["deployment"])
	}
}

func TestConfigMerge(t *testing.T) {
	base := &config.Config{
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
	base.Server.Port = 8080
	base.Classification.BatchSize = 4

	overlay := &config.Config{ShutdownTimeout: "45s"}
	overlay.Server.Port = 9090

	base.Merge(overlay)

	if base.ShutdownTimeout != "45s" {
		t.Errorf("shutdown timeout: got %q, want 45s", base.ShutdownTimeout)
	}
	if base.Version != "0.1.0" {
		t.Errorf("version: got %q, want 0.1.0 (zero overlay preserves base)", base.Version)
	}
	if base.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", base.Server.Port)
	}
	if base.Classification.BatchSize != 4 {
		t.Errorf("batch size: got %d, want 4 (zero overlay preserves base)", base.Classification.BatchSize)
	}
}

func TestConfigEnv(t *testing.T) {
	var c config.Config

	if got := c.Env(); got != "local" {
		t.Errorf("env: got %q, want local", got)
	}

	t.Setenv("DOSSIER_ENV", "staging")
	if got := c.Env(); got != "staging" {
		t.Errorf("env: got %q, want staging", got)
	}
}
