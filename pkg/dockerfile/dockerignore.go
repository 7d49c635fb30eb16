package dockerfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

const ignoreFileName = ".dockerignore"

// DefaultIgnoreEntries keeps VCS metadata, caches and virtualenvs out of the
// build context.
var DefaultIgnoreEntries = []string{
	".git",
	".gitignore",
	"Dockerfile",
	".dockerignore",
	"__pycache__",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	".Python",
	"env",
	"pip-log.txt",
	"pip-delete-this-directory.txt",
	".tox",
	".coverage",
	".coverage.*",
	"htmlcov",
	".pytest_cache",
	".env",
	".venv",
	"venv",
	"node_modules",
	"npm-debug.log",
}

// WriteDefaultIgnore writes DefaultIgnoreEntries to dir/.dockerignore unless
// the file already exists. It reports whether a file was written.
func WriteDefaultIgnore(dir string) (string, bool, error) {
	path := filepath.Join(dir, ignoreFileName)

	_, err := os.Stat(path)
	if err == nil {
		return path, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return path, false, errs.New(errs.Write, fmt.Sprintf("checking %s", path), err)
	}

	content := strings.Join(DefaultIgnoreEntries, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return path, false, errs.New(errs.Write, fmt.Sprintf("writing %s", path), err)
	}
	return path, true, nil
}
