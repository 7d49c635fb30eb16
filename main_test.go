package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"ANTHROPIC_API_KEY", "AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_KEY",
		"AZURE_OPENAI_DEPLOYMENT_ID", "ANALYZER_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM ubuntu:latest\nRUN apt-get update\n"), 0644))
	return dir
}

func TestRun_MissingCredentialFailsBeforeNetwork(t *testing.T) {
	dir := setupEnv(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	t.Setenv("OPENAI_BASE_URL", srv.URL+"/v1")

	report := filepath.Join(dir, "report.md")
	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", filepath.Join(dir, "Dockerfile"), "--report", report}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "OPENAI_API_KEY")
	assert.Equal(t, int32(0), hits.Load())
	assert.NoFileExists(t, report)
}

func TestRun_NetworkFailure(t *testing.T) {
	dir := setupEnv(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", url+"/v1")

	report := filepath.Join(dir, "report.md")
	optimized := filepath.Join(dir, "Dockerfile.optimized")
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"analyze", filepath.Join(dir, "Dockerfile"),
		"--report", report,
		"--optimized-output", optimized,
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, strings.ToLower(stderr.String()), "network")
	assert.NoFileExists(t, report)
	assert.NoFileExists(t, optimized)
}

func TestRun_MissingDockerfile(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", filepath.Join(dir, "nope", "Dockerfile"), "--report", filepath.Join(dir, "r.md")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "read error")
}

func TestRun_Success(t *testing.T) {
	dir := setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Security Score: 85/100\nOptimization Score: 78/100\n\n## Optimized Dockerfile\n` + "```dockerfile\\nFROM ubuntu:22.04\\n```" + `"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL+"/v1")

	report := filepath.Join(dir, "report.md")
	optimized := filepath.Join(dir, "Dockerfile.optimized")
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"analyze", filepath.Join(dir, "Dockerfile"),
		"--report", report,
		"--optimized-output", optimized,
		"-o", "json",
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- Security Score: 85/100")
	data, err = os.ReadFile(optimized)
	require.NoError(t, err)
	assert.Equal(t, "FROM ubuntu:22.04", string(data))
	assert.Contains(t, stdout.String(), `"security_score": 85`)
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "dockerfile-ai version "+version+"\n", stdout.String())
}
