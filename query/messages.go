package query

import (
	"strings"
)

const (
	TypeGetWebhook   = "hook_notify.query.webhook.get"
	TypeListWebhooks = "hook_notify.query.webhook.list"
)

type GetWebhookMessage struct {
	ServiceKey string
}

func (GetWebhookMessage) Type() string { return TypeGetWebhook }

func (m GetWebhookMessage) Validate() error {
	if strings.TrimSpace(m.ServiceKey) == "" {
		return queryValidationError("service_key", "service key is required")
	}
	return nil
}

type ListWebhooksMessage struct {
	Limit  int
	Offset int
}

func (ListWebhooksMessage) Type() string { return TypeListWebhooks }

func (m ListWebhooksMessage) Validate() error {
	if m.Limit < 0 {
		return queryValidationError("limit", "limit must not be negative")
	}
	if m.Offset < 0 {
		return queryValidationError("offset", "offset must not be negative")
	}
	return nil
}
