package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderAzure  = "azure"

	DefaultTimeout = 60 * time.Second
)

var (
	errUnknownProvider = errors.New("config: unsupported LLM_PROVIDER")
	errInvalidTimeout  = errors.New("config: ANALYZER_TIMEOUT must be positive")
)

// Config holds all tool configuration loaded from environment variables.
// Command-line flags are applied on top of it before Validate is called.
type Config struct {
	Provider string
	Model    string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	AnthropicAPIKey  string
	ClaudeModel      string
	AnthropicBaseURL string

	AzureEndpoint     string
	AzureAPIKey       string
	AzureDeploymentID string

	Timeout  time.Duration
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeModel:      os.Getenv("CLAUDE_MODEL"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),

		AzureEndpoint:     os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureAPIKey:       os.Getenv("AZURE_OPENAI_KEY"),
		AzureDeploymentID: os.Getenv("AZURE_OPENAI_DEPLOYMENT_ID"),

		Timeout:  getEnvAsDuration("ANALYZER_TIMEOUT", DefaultTimeout),
		LogLevel: getEnv("LOG_LEVEL", "WARN"),
	}
}

// Validate checks the provider selection, timeout and the credential the
// selected provider needs. It never touches the network.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errs.New(errs.Config, fmt.Sprintf("%v: got %s", errInvalidTimeout, c.Timeout), nil)
	}

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errs.New(errs.Config, "OPENAI_API_KEY environment variable not set", nil)
		}
	case ProviderClaude:
		if c.AnthropicAPIKey == "" {
			return errs.New(errs.Config, "ANTHROPIC_API_KEY environment variable not set", nil)
		}
	case ProviderAzure:
		var missing []string
		if c.AzureEndpoint == "" {
			missing = append(missing, "AZURE_OPENAI_ENDPOINT")
		}
		if c.AzureAPIKey == "" {
			missing = append(missing, "AZURE_OPENAI_KEY")
		}
		if c.AzureDeploymentID == "" {
			missing = append(missing, "AZURE_OPENAI_DEPLOYMENT_ID")
		}
		if len(missing) > 0 {
			return errs.New(errs.Config, fmt.Sprintf("environment variables not set: %s", strings.Join(missing, ", ")), nil)
		}
	default:
		return errs.New(errs.Config, fmt.Sprintf("%v: %q (supported: %s)", errUnknownProvider, c.Provider, strings.Join(Providers(), ", ")), nil)
	}

	return nil
}

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderOpenAI, ProviderClaude, ProviderAzure}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}
