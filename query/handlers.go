package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-hook-notify/core"
)

type WebhookPage struct {
	Items  []core.WebhookConfig
	Total  int
	Limit  int
	Offset int
}

type GetWebhookQuery struct {
	store core.WebhookConfigStore
}

func NewGetWebhookQuery(store core.WebhookConfigStore) *GetWebhookQuery {
	return &GetWebhookQuery{store: store}
}

func (q *GetWebhookQuery) Query(ctx context.Context, msg GetWebhookMessage) (core.WebhookConfig, error) {
	if q == nil || q.store == nil {
		return core.WebhookConfig{}, queryDependencyError("query: webhook config store is required")
	}
	if err := msg.Validate(); err != nil {
		return core.WebhookConfig{}, err
	}
	return q.store.FindByServiceKey(ctx, strings.TrimSpace(msg.ServiceKey))
}

type ListWebhooksQuery struct {
	lister core.WebhookConfigLister
}

func NewListWebhooksQuery(lister core.WebhookConfigLister) *ListWebhooksQuery {
	return &ListWebhooksQuery{lister: lister}
}

func (q *ListWebhooksQuery) Query(ctx context.Context, msg ListWebhooksMessage) (WebhookPage, error) {
	if q == nil || q.lister == nil {
		return WebhookPage{}, queryDependencyError("query: webhook config lister is required")
	}
	if err := msg.Validate(); err != nil {
		return WebhookPage{}, err
	}
	items, total, err := q.lister.List(ctx, msg.Limit, msg.Offset)
	if err != nil {
		return WebhookPage{}, err
	}
	return WebhookPage{
		Items:  items,
		Total:  total,
		Limit:  msg.Limit,
		Offset: msg.Offset,
	}, nil
}
