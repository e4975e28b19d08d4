package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-hook-notify/core"
)

var (
	_ gocmd.Querier[GetWebhookMessage, core.WebhookConfig] = (*GetWebhookQuery)(nil)
	_ gocmd.Querier[ListWebhooksMessage, WebhookPage]      = (*ListWebhooksQuery)(nil)
)
