package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/helmcode/dockerfile-ai/pkg/llm"
	"github.com/helmcode/dockerfile-ai/pkg/model"
	"github.com/helmcode/dockerfile-ai/pkg/parser"
	"github.com/helmcode/dockerfile-ai/pkg/prompts"
)

type Analyzer struct {
	llm     llm.LLM
	logger  *slog.Logger
	timeout time.Duration
}

func NewWithLLM(l llm.LLM, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{llm: l, logger: logger}
}

// WithTimeout bounds the completion request. Zero leaves ctx untouched.
func (a *Analyzer) WithTimeout(timeout time.Duration) *Analyzer {
	a.timeout = timeout
	return a
}

// Analyze sends dockerfile to the model once and extracts an Analysis from
// the reply. Only the completion call can fail; a malformed reply yields an
// Analysis with defaults and warnings.
func (a *Analyzer) Analyze(ctx context.Context, dockerfile string) (*model.Analysis, error) {
	prompt := prompts.BuildAnalysisPrompt(dockerfile)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	a.logger.Debug("submitting prompt",
		"provider", a.llm.Provider(),
		"model", a.llm.Model(),
		"prompt_version", prompts.Version,
		"prompt_bytes", len(prompt))

	start := time.Now()
	rawResp, err := a.llm.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}
	a.logger.Debug("received response", "response_bytes", len(rawResp), "elapsed", time.Since(start))

	analysis := parser.ParseAnalysisResponse(rawResp)
	analysis.Provider = string(a.llm.Provider())
	analysis.Model = a.llm.Model()
	analysis.PromptVersion = prompts.Version

	for _, w := range analysis.Warnings {
		a.logger.Warn("incomplete model response", "warning", w)
	}

	return analysis, nil
}
