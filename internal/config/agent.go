package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "DOSSIER_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "DOSSIER_AGENT_BASE_URL"
	EnvAgentToken        = "DOSSIER_AGENT_TOKEN"
	EnvAgentDeployment   = "DOSSIER_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "DOSSIER_AGENT_API_VERSION"
	EnvAgentAuthType     = "DOSSIER_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "DOSSIER_AGENT_MODEL_NAME"
)

// AgentConfig wraps the go-agents agent configuration with the service's
// three-phase finalize pattern.
type AgentConfig struct {
	gaconfig.AgentConfig
}

// Finalize applies go-agents defaults, environment variable overrides,
// and validation.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites configured fields from overlay.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	c.AgentConfig.Merge(&overlay.AgentConfig)
}

func (c *AgentConfig) loadDefaults() {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(&c.AgentConfig)
	c.AgentConfig = defaults
}

func (c *AgentConfig) loadEnv() {
	if c.Client == nil {
		c.Client = gaconfig.DefaultClientConfig()
	}
	if c.Client.Provider == nil {
		c.Client.Provider = gaconfig.DefaultProviderConfig()
	}
	provider := c.Client.Provider
	if provider.Options == nil {
		provider.Options = make(map[string]any)
	}
	if provider.Model == nil {
		provider.Model = gaconfig.DefaultModelConfig()
	}

	if v := os.Getenv(EnvAgentProviderName); v != "" {
		provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		provider.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func (c *AgentConfig) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Client == nil || c.Client.Provider == nil || c.Client.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Client.Provider.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
