package core

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestConfigurationError_UsesConflictEnvelope(t *testing.T) {
	err := ConfigurationError(MessageWebhookNotFound, map[string]any{"service_key": "svc"})

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryConflict {
		t.Fatalf("expected conflict category, got %q", rich.Category)
	}
	if rich.Code != http.StatusConflict {
		t.Fatalf("expected %d code, got %d", http.StatusConflict, rich.Code)
	}
	if rich.TextCode != ErrorConfiguration {
		t.Fatalf("expected %q text code, got %q", ErrorConfiguration, rich.TextCode)
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error predicate to match")
	}
}

func TestValidationError_UsesBadRequestEnvelope(t *testing.T) {
	err := ValidationError(MessageRequestBodyRequired, nil)
	mapped := MapError(err)
	if mapped.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, mapped.Code)
	}
	if mapped.Message != MessageRequestBodyRequired {
		t.Fatalf("unexpected message %q", mapped.Message)
	}
	if !IsValidationError(err) {
		t.Fatalf("expected validation predicate to match")
	}
}

func TestDeliveryRejectedError_EmbedsPlatformDetail(t *testing.T) {
	source := stderrors.New("chatwork: status 401")
	err := DeliveryRejectedError(source, "Invalid API token", map[string]any{"room_id": "42"})

	if !IsDeliveryRejected(err) {
		t.Fatalf("expected delivery rejected predicate to match")
	}
	mapped := MapError(err)
	if mapped.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, mapped.Code)
	}
	if !strings.Contains(mapped.Message, "chatwork request failure: Invalid API token") {
		t.Fatalf("expected platform detail in message, got %q", mapped.Message)
	}
	if !stderrors.Is(err, source) {
		t.Fatalf("expected source error to remain in chain")
	}
}

func TestMapError_WebhookNotFoundSentinel(t *testing.T) {
	mapped := MapError(fmt.Errorf("sqlstore: lookup svc: %w", ErrWebhookNotFound))
	if mapped.TextCode != ErrorConfiguration {
		t.Fatalf("expected configuration text code, got %q", mapped.TextCode)
	}
	if mapped.Code != http.StatusConflict {
		t.Fatalf("expected conflict status, got %d", mapped.Code)
	}
}

func TestMapError_UnknownErrorsGetStableEnvelope(t *testing.T) {
	mapped := MapError(stderrors.New("boom"))
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.Code == 0 {
		t.Fatalf("expected http status on mapped error")
	}
	if strings.TrimSpace(mapped.TextCode) == "" {
		t.Fatalf("expected text code on mapped error")
	}
	if MapError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
