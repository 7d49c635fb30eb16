package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/helmcode/dockerfile-ai/pkg/errs"
)

// statusError maps a non-success HTTP status to an Auth or Network error.
func statusError(provider Provider, status int, detail string, cause error) error {
	kind := errs.Network
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = errs.Auth
	}
	msg := fmt.Sprintf("%s API error (status %d)", provider, status)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &errs.AppError{Kind: kind, Status: status, Message: msg, Cause: cause}
}

// transportError wraps a failure that never produced an HTTP response.
func transportError(provider Provider, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.New(errs.Network, fmt.Sprintf("%s request timed out", provider), err)
	}
	return errs.New(errs.Network, fmt.Sprintf("%s request failed", provider), err)
}

func emptyResponse(provider Provider) error {
	return errs.New(errs.Network, fmt.Sprintf("empty response from %s", provider), nil)
}
