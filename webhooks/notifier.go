package webhooks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-hook-notify/chatwork"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/events"
	"github.com/goliatone/go-hook-notify/recipients"
)

type Composer interface {
	Compose(kind core.EventKind, event core.Event, room core.Room, receivers string) (core.OutboundMessage, error)
}

type Sender interface {
	Send(ctx context.Context, msg core.OutboundMessage, creds core.BotCredentials) (chatwork.PostMessageResponse, error)
}

type Notifier struct {
	store          core.WebhookConfigStore
	classifier     events.Classifier
	resolver       recipients.Resolver
	composer       Composer
	sender         Sender
	observers      []OutcomeObserver
	logger         core.Logger
	loggerProvider core.LoggerProvider
	metrics        core.MetricsRecorder
	now            func() time.Time
}

func NewNotifier(store core.WebhookConfigStore, composer Composer, sender Sender, opts ...Option) (*Notifier, error) {
	if store == nil {
		return nil, fmt.Errorf("webhooks: notifier requires a webhook config store")
	}
	if composer == nil {
		return nil, fmt.Errorf("webhooks: notifier requires a composer")
	}
	if sender == nil {
		return nil, fmt.Errorf("webhooks: notifier requires a sender")
	}
	n := &Notifier{
		store:      store,
		classifier: events.DefaultClassifier,
		resolver:   recipients.DefaultResolver,
		composer:   composer,
		sender:     sender,
		metrics:    core.NopMetricsRecorder{},
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	n.logger = core.ResolveLogger("hook-notify.webhooks", n.loggerProvider, n.logger)
	return n, nil
}

// Notify runs one webhook delivery through the notification lifecycle.
//
// A suppressed outcome is a success with no side effect. Configuration and
// delivery failures end in the failed state and return the error.
func (n *Notifier) Notify(ctx context.Context, serviceKey string, event core.Event) (outcome Outcome, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	serviceKey = strings.TrimSpace(serviceKey)
	outcome = Outcome{ServiceKey: serviceKey, DeliveryID: event.DeliveryID, StartedAt: n.now()}
	defer func() {
		outcome.FinishedAt = n.now()
		if err != nil {
			outcome.transition(StateFailed)
			outcome.Error = err.Error()
		}
		n.observe(ctx, outcome, err)
	}()

	if event.IsZero() {
		return outcome, core.ValidationError(core.MessageRequestBodyRequired, map[string]any{
			"service_key": serviceKey,
		})
	}
	outcome.transition(StateStart)

	config, err := n.resolveConfig(ctx, serviceKey)
	if err != nil {
		return outcome, err
	}
	room := *config.Room
	outcome.RoomID = room.RoomID
	outcome.transition(StateConfigResolved)

	kind := n.classifier.Classify(event)
	outcome.EventKind = kind
	outcome.transition(StateEventClassified)
	if kind == core.EventUnrecognized {
		outcome.transition(StateSuppressed)
		return outcome, nil
	}

	set := n.resolver.Resolve(kind, event, room.Members)
	outcome.Sender = set.Sender
	outcome.Receivers = set.Joined()
	outcome.transition(StateRecipientsResolved)
	if set.Empty() {
		outcome.transition(StateSuppressed)
		return outcome, nil
	}

	msg, err := n.composer.Compose(kind, event, room, outcome.Receivers)
	if err != nil {
		return outcome, err
	}
	outcome.Body = msg.Body
	outcome.transition(StateComposed)

	res, err := n.sender.Send(ctx, msg, config.Bot)
	if err != nil {
		return outcome, err
	}
	outcome.Response = res
	outcome.transition(StateDispatched)
	return outcome, nil
}

func (n *Notifier) resolveConfig(ctx context.Context, serviceKey string) (core.WebhookConfig, error) {
	if serviceKey == "" {
		return core.WebhookConfig{}, core.ConfigurationError(core.MessageWebhookNotFound, nil)
	}
	config, err := n.store.FindByServiceKey(ctx, serviceKey)
	if err != nil {
		if errors.Is(err, core.ErrWebhookNotFound) {
			return core.WebhookConfig{}, core.ConfigurationError(core.MessageWebhookNotFound, map[string]any{
				"service_key": serviceKey,
			})
		}
		return core.WebhookConfig{}, err
	}
	if err := config.Validate(); err != nil {
		return core.WebhookConfig{}, err
	}
	return config, nil
}
