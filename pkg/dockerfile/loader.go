// Package dockerfile reads the Dockerfile under analysis and manages the
// files that sit next to it.
package dockerfile

import (
	"fmt"
	"os"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

// DefaultPath is used when no Dockerfile argument is given.
const DefaultPath = "./Dockerfile"

// Load returns the verbatim contents of the file at path. Any text is
// accepted; nothing checks that it is valid Dockerfile syntax.
func Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.New(errs.Read, fmt.Sprintf("Dockerfile not found at path: %s", path), nil)
		}
		return "", errs.New(errs.Read, fmt.Sprintf("reading Dockerfile %q", path), err)
	}
	if info.IsDir() {
		return "", errs.New(errs.Read, fmt.Sprintf("%s is a directory, not a Dockerfile", path), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.New(errs.Read, fmt.Sprintf("reading Dockerfile %q", path), err)
	}
	return string(data), nil
}
