package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes fatal errors so the CLI can report them consistently.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// Config indicates missing or invalid configuration, such as an absent API key.
	Config
	// Read indicates the input Dockerfile could not be read.
	Read
	// Network indicates the completion request failed, timed out or returned a non-success status.
	Network
	// Auth indicates the completion service rejected the credential.
	Auth
	// Write indicates an output file could not be written.
	Write
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Read:
		return "read"
	case Network:
		return "network"
	case Auth:
		return "auth"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Status  int // HTTP status returned by the completion service, if any
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New returns an AppError of the given kind.
func New(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// KindOf reports the Kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
