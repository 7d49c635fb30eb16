package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/helmcode/dockerfile-ai/pkg/analyzer"
	"github.com/helmcode/dockerfile-ai/pkg/config"
	"github.com/helmcode/dockerfile-ai/pkg/dockerfile"
	"github.com/helmcode/dockerfile-ai/pkg/formatter"
	"github.com/helmcode/dockerfile-ai/pkg/llm"
	"github.com/helmcode/dockerfile-ai/pkg/logger"
	"github.com/helmcode/dockerfile-ai/pkg/output"
)

var (
	analyzeReportPath    string
	analyzeOptimizedPath string
	analyzeLLMProvider   string
	analyzeLLMModel      string
	analyzeTimeout       time.Duration
	analyzeOutputFormat  string
	analyzeDockerignore  bool
	analyzeVerbose       bool
)

// newLLM builds the completion client; tests replace it with a fake.
var newLLM = llm.New

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [DOCKERFILE]",
		Short: "Analyze a Dockerfile for security and optimization issues with AI",
		Long: `Send a Dockerfile to an LLM for a security and optimization review, then write
a markdown report and an improved Dockerfile.

Examples:
  # Analyze ./Dockerfile with OpenAI (OPENAI_API_KEY)
  dockerfile-ai analyze

  # Analyze another file with Claude and a custom report path
  dockerfile-ai analyze build/Dockerfile --provider claude --report review.md

  # Print the report instead of writing it
  dockerfile-ai analyze --report -

  # Machine-readable summary
  dockerfile-ai analyze -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	// Flags
	cmd.Flags().StringVar(&analyzeReportPath, "report", output.DefaultReportPath, "Path of the markdown report (- for stdout)")
	cmd.Flags().StringVar(&analyzeOptimizedPath, "optimized-output", output.DefaultOptimizedPath, "Path of the optimized Dockerfile")
	cmd.Flags().StringVar(&analyzeLLMProvider, "provider", "", "LLM provider (openai, claude, azure). Defaults to LLM_PROVIDER or openai")
	cmd.Flags().StringVar(&analyzeLLMModel, "model", "", "LLM model or Azure deployment to use (overrides default)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", config.DefaultTimeout, "Timeout for the completion request")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&analyzeDockerignore, "dockerignore", false, "Write a default .dockerignore next to the Dockerfile if none exists")
	cmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := dockerfile.DefaultPath
	if len(args) > 0 {
		path = args[0]
	}

	stdout := cmd.OutOrStdout()
	status := cmd.ErrOrStderr()

	cfg := config.Load()
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = analyzeTimeout
	}
	if analyzeVerbose {
		cfg.LogLevel = "DEBUG"
	}

	runID := uuid.NewString()
	log := logger.New(status, cfg.LogLevel).With("run_id", runID)

	// Credentials are checked before anything touches the network.
	llmClient, err := newLLM(cfg, analyzeLLMProvider, analyzeLLMModel)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	printHeader(status, path, llmClient)

	content, err := dockerfile.Load(path)
	if err != nil {
		return err
	}
	printSuccess(status, fmt.Sprintf("Read %s (%d bytes)", path, len(content)))

	if analyzeDockerignore {
		ignorePath, wrote, err := dockerfile.WriteDefaultIgnore(filepath.Dir(path))
		if err != nil {
			return err
		}
		if wrote {
			printSuccess(status, fmt.Sprintf("Wrote default %s", ignorePath))
		}
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(status))
	s.Suffix = " Analyzing with AI..."
	s.Start()

	aiAnalyzer := analyzer.NewWithLLM(llmClient, log).WithTimeout(cfg.Timeout)
	analysis, err := aiAnalyzer.Analyze(cmd.Context(), content)
	if err != nil {
		s.Stop()
		return fmt.Errorf("AI analysis failed: %w", err)
	}

	s.Stop()
	printSuccess(status, "Analysis complete")
	analysis.RunID = runID

	writer := output.NewWriter(stdout)
	if err := writer.WriteReport(formatter.RenderMarkdown(analysis), analyzeReportPath); err != nil {
		return err
	}

	paths := formatter.Paths{}
	if analyzeReportPath != output.StdoutPath {
		paths.Report = analyzeReportPath
	}

	wrote, err := writer.WriteOptimized(analysis.OptimizedDockerfile, analyzeOptimizedPath)
	if err != nil {
		return err
	}
	if wrote && analyzeOptimizedPath != output.StdoutPath {
		paths.Optimized = analyzeOptimizedPath
	}
	if !wrote {
		log.Warn("no optimized Dockerfile in response, skipping write", "path", analyzeOptimizedPath)
	}

	if analyzeReportPath == output.StdoutPath && analyzeOutputFormat == formatter.FormatHuman {
		return nil
	}
	return formatter.DisplayResults(stdout, analysis, analyzeOutputFormat, paths)
}

func printHeader(w io.Writer, path string, llmClient llm.LLM) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🐳 Dockerfile AI Analyzer")
	fmt.Fprintf(w, "📝 Dockerfile: %s\n", path)
	fmt.Fprintf(w, "🤖 Provider: %s (%s)\n", llmClient.Provider(), llmClient.Model())
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}
