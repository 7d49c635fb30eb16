package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

const (
	DefaultReportPath    = "dockerfile_analysis_report.md"
	DefaultOptimizedPath = "Dockerfile.optimized"

	// StdoutPath sends the report to the writer's stdout instead of a file.
	StdoutPath = "-"
)

// Writer persists the generated report and optimized Dockerfile.
type Writer struct {
	stdout io.Writer
}

// NewWriter creates a Writer that prints to stdout when asked to.
func NewWriter(stdout io.Writer) *Writer {
	return &Writer{stdout: stdout}
}

// WriteReport writes report to path, or prints it when path is "-" or empty.
func (w *Writer) WriteReport(report, path string) error {
	if path == "" || path == StdoutPath {
		if _, err := io.WriteString(w.stdout, report); err != nil {
			return errs.New(errs.Write, "printing report", err)
		}
		return nil
	}
	return writeFile(path, report)
}

// WriteOptimized writes content to path only when content is non-empty.
// It reports whether a file was written.
func (w *Writer) WriteOptimized(content, path string) (bool, error) {
	if content == "" || path == "" {
		return false, nil
	}
	if path == StdoutPath {
		if _, err := io.WriteString(w.stdout, content); err != nil {
			return false, errs.New(errs.Write, "printing optimized Dockerfile", err)
		}
		return true, nil
	}
	if err := writeFile(path, content); err != nil {
		return false, err
	}
	return true, nil
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.New(errs.Write, fmt.Sprintf("creating directory %q", dir), err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errs.New(errs.Write, fmt.Sprintf("writing file %q", path), err)
	}
	return nil
}
