package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "io"
    "net/http"
    "time"
)

const (
    defaultClaudeModel   = "claude-sonnet-4-20250514"
    defaultClaudeBaseURL = "https://api.anthropic.com"
    anthropicVersion     = "2023-06-01"
)

type Claude struct {
    apiKey  string
    client  *http.Client
    model   string
    baseURL string
}

func NewClaude(apiKey string) *Claude {
    return NewClaudeWithModel(apiKey, defaultClaudeModel)
}

func NewClaudeWithModel(apiKey, model string) *Claude {
    return &Claude{
        apiKey:  apiKey,
        client:  &http.Client{Timeout: 60 * time.Second},
        model:   model,
        baseURL: defaultClaudeBaseURL,
    }
}

// WithBaseURL points the client at a different Messages API host.
func (c *Claude) WithBaseURL(baseURL string) *Claude {
    if baseURL != "" {
        c.baseURL = baseURL
    }
    return c
}

// WithTimeout bounds every request made by the client.
func (c *Claude) WithTimeout(timeout time.Duration) *Claude {
    if timeout > 0 {
        c.client.Timeout = timeout
    }
    return c
}

func (c *Claude) Provider() Provider { return ProviderClaude }

func (c *Claude) Model() string { return c.model }

func (c *Claude) Chat(ctx context.Context, prompt string) (string, error) {
    body := map[string]interface{}{
        "model": c.model,
        "messages": []map[string]string{{
            "role":    "user",
            "content": prompt,
        }},
        "max_tokens":  4000,
        "temperature": 0,
    }

    jsonBody, err := json.Marshal(body)
    if err != nil {
        return "", err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(jsonBody))
    if err != nil {
        return "", transportError(ProviderClaude, err)
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("x-api-key", c.apiKey)
    req.Header.Set("anthropic-version", anthropicVersion)

    resp, err := c.client.Do(req)
    if err != nil {
        return "", transportError(ProviderClaude, err)
    }
    defer resp.Body.Close()

    respBytes, err := io.ReadAll(resp.Body)
    if err != nil {
        return "", transportError(ProviderClaude, err)
    }

    // Minimal struct to pull out the content text.
    var claudeResp struct {
        Content []struct {
            Type string `json:"type"`
            Text string `json:"text"`
        } `json:"content"`
        Error struct {
            Type    string `json:"type"`
            Message string `json:"message"`
        } `json:"error"`
    }
    decodeErr := json.Unmarshal(respBytes, &claudeResp)

    if resp.StatusCode != http.StatusOK {
        detail := claudeResp.Error.Message
        if decodeErr != nil || detail == "" {
            detail = string(respBytes)
        }
        return "", statusError(ProviderClaude, resp.StatusCode, detail, nil)
    }
    if decodeErr != nil {
        return "", transportError(ProviderClaude, decodeErr)
    }
    if claudeResp.Error.Message != "" {
        return "", statusError(ProviderClaude, resp.StatusCode, claudeResp.Error.Message, nil)
    }

    var text bytes.Buffer
    for _, block := range claudeResp.Content {
        if block.Type == "" || block.Type == "text" {
            text.WriteString(block.Text)
        }
    }
    if text.Len() == 0 {
        return "", emptyResponse(ProviderClaude)
    }
    return text.String(), nil
}
