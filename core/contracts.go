package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// WebhookConfigStore resolves tenant configuration by service key. A missing
// key must return an error matching ErrWebhookNotFound.
type WebhookConfigStore interface {
	FindByServiceKey(ctx context.Context, serviceKey string) (WebhookConfig, error)
}

type CreateWebhookInput struct {
	ServiceKey    string
	ChatworkToken string
	SlackToken    string
	Room          Room
}

// WebhookConfigWriter is implemented by stores that can register new webhooks.
type WebhookConfigWriter interface {
	Create(ctx context.Context, in CreateWebhookInput) (WebhookConfig, error)
}

// WebhookConfigLister pages through registered webhooks ordered by service
// key. total is the count ignoring limit and offset.
type WebhookConfigLister interface {
	List(ctx context.Context, limit int, offset int) (items []WebhookConfig, total int, err error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
