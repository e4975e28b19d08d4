package hooknotify

import (
	"io/fs"

	"github.com/goliatone/go-hook-notify/chatwork"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/webhooks"
	persistence "github.com/goliatone/go-persistence-bun"
)

type Option func(*serviceBuilder)

type serviceBuilder struct {
	logger            core.Logger
	loggerProvider    core.LoggerProvider
	metricsRecorder   core.MetricsRecorder
	persistenceClient *persistence.Client
	configStore       WebhookStore
	httpDoer          chatwork.HTTPDoer
	templates         fs.FS
	observers         []webhooks.OutcomeObserver
}

func WithLogger(logger core.Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *serviceBuilder) {
		b.metricsRecorder = recorder
	}
}

// WithPersistenceClient reuses an open client instead of opening one from
// the database config. The service does not close a client it did not open.
func WithPersistenceClient(client *persistence.Client) Option {
	return func(b *serviceBuilder) {
		b.persistenceClient = client
	}
}

// WithWebhookStore bypasses the SQL store entirely.
func WithWebhookStore(store WebhookStore) Option {
	return func(b *serviceBuilder) {
		b.configStore = store
	}
}

func WithHTTPDoer(doer chatwork.HTTPDoer) Option {
	return func(b *serviceBuilder) {
		b.httpDoer = doer
	}
}

// WithTemplates overrides embedded templates with <id>.tmpl files from fsys.
// It takes precedence over templates.dir.
func WithTemplates(fsys fs.FS) Option {
	return func(b *serviceBuilder) {
		b.templates = fsys
	}
}

func WithObserver(observers ...webhooks.OutcomeObserver) Option {
	return func(b *serviceBuilder) {
		b.observers = append(b.observers, observers...)
	}
}
