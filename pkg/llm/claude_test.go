package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaude_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body.Model)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "analyze this", body.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"Security Score: 80/100"}]}`))
	}))
	defer srv.Close()

	c := NewClaudeWithModel("sk-ant", "claude-test").WithBaseURL(srv.URL)

	got, err := c.Chat(context.Background(), "analyze this")

	require.NoError(t, err)
	assert.Equal(t, "Security Score: 80/100", got)
	assert.Equal(t, ProviderClaude, c.Provider())
	assert.Equal(t, "claude-test", c.Model())
}

func TestClaude_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind errs.Kind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, errs.Auth, "invalid x-api-key"},
		{"forbidden", http.StatusForbidden, `forbidden`, errs.Auth, "status 403"},
		{"server error", http.StatusInternalServerError, `oops`, errs.Network, "status 500"},
		{"empty content", http.StatusOK, `{"content":[]}`, errs.Network, "empty response"},
		{"bad json", http.StatusOK, `not json`, errs.Network, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClaude("sk-ant").WithBaseURL(srv.URL).Chat(context.Background(), "p")

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClaude_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClaude("sk-ant").WithBaseURL(url).Chat(context.Background(), "p")

	require.Error(t, err)
	assert.Equal(t, errs.Network, errs.KindOf(err))
}

func TestClaude_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClaude("sk-ant").WithBaseURL(srv.URL).Chat(ctx, "p")

	require.Error(t, err)
	assert.Equal(t, errs.Network, errs.KindOf(err))
	assert.Contains(t, err.Error(), "timed out")
}
