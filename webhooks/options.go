package webhooks

import (
	"time"

	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/events"
	"github.com/goliatone/go-hook-notify/recipients"
)

type Option func(*Notifier)

func WithLogger(logger core.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(n *Notifier) {
		n.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(n *Notifier) {
		if recorder != nil {
			n.metrics = recorder
		}
	}
}

func WithClassifier(classifier events.Classifier) Option {
	return func(n *Notifier) {
		if classifier != nil {
			n.classifier = classifier
		}
	}
}

func WithResolver(resolver recipients.Resolver) Option {
	return func(n *Notifier) {
		if resolver != nil {
			n.resolver = resolver
		}
	}
}

func WithObserver(observers ...OutcomeObserver) Option {
	return func(n *Notifier) {
		for _, observer := range observers {
			if observer != nil {
				n.observers = append(n.observers, observer)
			}
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}
