package sqlstore

import "github.com/goliatone/go-hook-notify/core"

var (
	_ core.WebhookConfigStore  = (*WebhookConfigStore)(nil)
	_ core.WebhookConfigWriter = (*WebhookConfigStore)(nil)
	_ core.WebhookConfigLister = (*WebhookConfigStore)(nil)
	_ core.WebhookConfigStore  = (*CachedWebhookConfigStore)(nil)
	_ core.WebhookConfigWriter = (*CachedWebhookConfigStore)(nil)
	_ core.WebhookConfigLister = (*CachedWebhookConfigStore)(nil)
)
