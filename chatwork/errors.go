package chatwork

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hook-notify/core"
)

// APIError is returned when Chatwork answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Errors     []string
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "chatwork: api error"
	}
	if len(e.Errors) == 0 {
		return fmt.Sprintf("chatwork: api error status %d", e.StatusCode)
	}
	return fmt.Sprintf("chatwork: api error status %d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
}

// FirstError returns the first error reported by the platform, if any.
func (e *APIError) FirstError() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0]
}

func clientError(message string, category goerrors.Category, code int, metadata map[string]any) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(clientTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func clientWrapError(source error, category goerrors.Category, message string, code int, metadata map[string]any) error {
	if source == nil {
		return clientError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(clientTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func clientTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ErrorBadInput
	case goerrors.CategoryExternal:
		return core.ErrorExternalFailure
	default:
		return core.ErrorInternal
	}
}
