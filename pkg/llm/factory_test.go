package llm

import (
	"testing"
	"time"

	"github.com/helmcode/dockerfile-ai/pkg/config"
	"github.com/helmcode/dockerfile-ai/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	return config.Config{
		Provider:          config.ProviderOpenAI,
		OpenAIAPIKey:      "sk-openai",
		AnthropicAPIKey:   "sk-ant",
		AzureEndpoint:     "https://example.openai.azure.com",
		AzureAPIKey:       "az-key",
		AzureDeploymentID: "gpt4o-deploy",
		Timeout:           time.Second,
	}
}

func TestFactory_Create(t *testing.T) {
	tests := []struct {
		provider  string
		wantType  Provider
		wantModel string
	}{
		{config.ProviderOpenAI, ProviderOpenAI, defaultOpenAIModel},
		{config.ProviderClaude, ProviderClaude, defaultClaudeModel},
		{config.ProviderAzure, ProviderAzure, "gpt4o-deploy"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Provider = tt.provider

			client, err := NewFactory().Create(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, client.Provider())
			assert.Equal(t, tt.wantModel, client.Model())
		})
	}
}

func TestNew_Overrides(t *testing.T) {
	client, err := New(baseConfig(), "CLAUDE", "claude-custom")

	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, client.Provider())
	assert.Equal(t, "claude-custom", client.Model())
}

func TestNew_EnvModel(t *testing.T) {
	cfg := baseConfig()
	cfg.OpenAIModel = "gpt-4o-mini"

	client, err := New(cfg, "", "")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.Model())
}

func TestNew_MissingCredential(t *testing.T) {
	cfg := baseConfig()
	cfg.OpenAIAPIKey = ""

	client, err := New(cfg, "", "")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Equal(t, errs.Config, errs.KindOf(err))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(baseConfig(), "gemini", "")

	require.Error(t, err)
	assert.Equal(t, errs.Config, errs.KindOf(err))
}

func TestFactory_GetAvailableProviders(t *testing.T) {
	assert.ElementsMatch(t, []Provider{ProviderOpenAI, ProviderClaude, ProviderAzure}, NewFactory().GetAvailableProviders())
}
