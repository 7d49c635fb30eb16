package llm

import (
	"fmt"
	"strings"

	"github.com/helmcode/dockerfile-ai/pkg/config"
	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = config.ProviderClaude
	ProviderOpenAI Provider = config.ProviderOpenAI
	ProviderAzure  Provider = config.ProviderAzure
)

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds the client selected by cfg. The configuration is validated
// first, so a missing credential fails here without any network traffic.
func (f *Factory) Create(cfg config.Config) (LLM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch Provider(cfg.Provider) {
	case ProviderOpenAI:
		model := firstNonEmpty(cfg.Model, cfg.OpenAIModel)
		return NewOpenAIWithConfig(cfg.OpenAIAPIKey, model, cfg.OpenAIBaseURL, cfg.Timeout), nil

	case ProviderClaude:
		model := firstNonEmpty(cfg.Model, cfg.ClaudeModel, defaultClaudeModel)
		return NewClaudeWithModel(cfg.AnthropicAPIKey, model).
			WithBaseURL(cfg.AnthropicBaseURL).
			WithTimeout(cfg.Timeout), nil

	case ProviderAzure:
		deployment := firstNonEmpty(cfg.Model, cfg.AzureDeploymentID)
		client, err := NewAzureOpenAI(cfg.AzureEndpoint, cfg.AzureAPIKey, deployment, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return client, nil

	default:
		return nil, errs.New(errs.Config, fmt.Sprintf("unsupported LLM provider: %s", cfg.Provider), nil)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderOpenAI, ProviderClaude, ProviderAzure}
}

// New creates an LLM from configuration, applying the optional provider and
// model overrides given on the command line.
func New(cfg config.Config, providerOverride, modelOverride string) (LLM, error) {
	if providerOverride != "" {
		cfg.Provider = strings.ToLower(providerOverride)
	}
	if modelOverride != "" {
		cfg.Model = modelOverride
	}
	return NewFactory().Create(cfg)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
