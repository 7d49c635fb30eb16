package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

type AzureOpenAI struct {
	client       *azopenai.Client
	deploymentID string
}

// NewAzureOpenAI creates a client bound to one Azure OpenAI deployment.
// The deploymentID is used for every request. Retries are disabled so a
// failed request surfaces immediately.
func NewAzureOpenAI(endpoint, apiKey, deploymentID string, timeout time.Duration) (*AzureOpenAI, error) {
	return newAzureOpenAI(endpoint, apiKey, deploymentID, &http.Client{Timeout: timeout})
}

func newAzureOpenAI(endpoint, apiKey, deploymentID string, transport policy.Transporter) (*AzureOpenAI, error) {
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, &azopenai.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Transport: transport,
			Retry:     policy.RetryOptions{MaxRetries: -1},
		},
	})
	if err != nil {
		return nil, errs.New(errs.Config, "creating Azure OpenAI client", err)
	}
	return &AzureOpenAI{
		client:       client,
		deploymentID: deploymentID,
	}, nil
}

func (a *AzureOpenAI) Provider() Provider { return ProviderAzure }

func (a *AzureOpenAI) Model() string { return a.deploymentID }

// Chat sends a prompt to the deployment and returns the completion text.
func (a *AzureOpenAI) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.GetChatCompletions(
		ctx,
		azopenai.ChatCompletionsOptions{
			DeploymentName: to.Ptr(a.deploymentID),
			Messages: []azopenai.ChatRequestMessageClassification{
				&azopenai.ChatRequestUserMessage{
					Content: azopenai.NewChatRequestUserMessageContent(prompt),
				},
			},
			MaxTokens:   to.Ptr(int32(4000)),
			Temperature: to.Ptr(float32(0.2)),
		},
		nil,
	)
	if err != nil {
		return "", classifyAzureError(err)
	}

	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil && resp.Choices[0].Message.Content != nil {
		return *resp.Choices[0].Message.Content, nil
	}
	return "", emptyResponse(ProviderAzure)
}

func classifyAzureError(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return statusError(ProviderAzure, respErr.StatusCode, respErr.ErrorCode, err)
	}
	return transportError(ProviderAzure, fmt.Errorf("azure openai: %w", err))
}
