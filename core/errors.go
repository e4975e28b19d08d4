package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput          = "NOTIFY_BAD_INPUT"
	ErrorConfiguration     = "NOTIFY_CONFIGURATION"
	ErrorDeliveryRejected  = "NOTIFY_DELIVERY_REJECTED"
	ErrorExternalFailure   = "NOTIFY_EXTERNAL_FAILURE"
	ErrorInternal          = "NOTIFY_INTERNAL_ERROR"
	ErrorUnsupportedEvent  = "NOTIFY_UNSUPPORTED_EVENT"
	ErrorTemplateUndefined = "NOTIFY_TEMPLATE_UNDEFINED"
)

const (
	MessageRequestBodyRequired = "request body required"
	MessageWebhookNotFound     = "webhook not found"
	MessageRoomUndefined       = "room undefined"
	MessageDeliveryRejected    = "chatwork request failure"
)

var ErrWebhookNotFound = errors.New("core: webhook not found")

func newError(message string, category goerrors.Category, code int, textCode string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// ValidationError reports an empty or undecodable inbound payload.
func ValidationError(message string, metadata map[string]any) error {
	return newError(message, goerrors.CategoryBadInput, http.StatusBadRequest, ErrorBadInput, metadata)
}

// ConfigurationError reports a missing webhook or a malformed room. It is
// surfaced to callers as a conflict.
func ConfigurationError(message string, metadata map[string]any) error {
	return newError(message, goerrors.CategoryConflict, http.StatusConflict, ErrorConfiguration, metadata)
}

// DeliveryRejectedError reports that the messaging platform refused the post.
// detail is the first error reported by the platform.
func DeliveryRejectedError(source error, detail string, metadata map[string]any) error {
	message := MessageDeliveryRejected
	if strings.TrimSpace(detail) != "" {
		message += ": " + strings.TrimSpace(detail)
	}
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryBadInput)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryBadInput, message)
	}
	err = err.WithCode(http.StatusBadRequest).WithTextCode(ErrorDeliveryRejected)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// UnsupportedEventError reports a GitHub event kind outside the
// pull_request / pull_request_review_comment union.
func UnsupportedEventError(kind string) error {
	return newError(
		"unsupported github event "+strings.TrimSpace(kind),
		goerrors.CategoryBadInput,
		http.StatusBadRequest,
		ErrorUnsupportedEvent,
		map[string]any{"event": strings.TrimSpace(kind)},
	)
}

func InternalError(message string, metadata map[string]any) error {
	return newError(message, goerrors.CategoryInternal, http.StatusInternalServerError, ErrorInternal, metadata)
}

func IsConfigurationError(err error) bool {
	return hasTextCode(err, ErrorConfiguration)
}

func IsValidationError(err error) bool {
	return hasTextCode(err, ErrorBadInput)
}

func IsUnsupportedEvent(err error) bool {
	return hasTextCode(err, ErrorUnsupportedEvent)
}

func IsDeliveryRejected(err error) bool {
	return hasTextCode(err, ErrorDeliveryRejected)
}

func hasTextCode(err error, textCode string) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == textCode
}

// MapError converts any error into a go-errors envelope with an HTTP status
// and a stable text code.
func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureEnvelope(rich)
	}
	if errors.Is(err, ErrWebhookNotFound) {
		return newError(MessageWebhookNotFound, goerrors.CategoryConflict, http.StatusConflict, ErrorConfiguration, nil)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureEnvelope(mapped)
}

func ensureEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryConflict, goerrors.CategoryNotFound:
		return ErrorConfiguration
	case goerrors.CategoryExternal:
		return ErrorExternalFailure
	default:
		return ErrorInternal
	}
}

func httpStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
