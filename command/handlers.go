package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/webhooks"
)

type Notifier interface {
	Notify(ctx context.Context, serviceKey string, event core.Event) (webhooks.Outcome, error)
}

type NotifyCommand struct {
	notifier Notifier
}

func NewNotifyCommand(notifier Notifier) *NotifyCommand {
	return &NotifyCommand{notifier: notifier}
}

// Execute stores the webhooks.Outcome in the context result collector, when
// one is attached, on success and on failure.
func (c *NotifyCommand) Execute(ctx context.Context, msg NotifyMessage) error {
	if c == nil || c.notifier == nil {
		return commandDependencyError("command: notifier is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.notifier.Notify(ctx, msg.ServiceKey, msg.Event)
	storeResult(ctx, out)
	return err
}

type RegisterWebhookCommand struct {
	writer core.WebhookConfigWriter
}

func NewRegisterWebhookCommand(writer core.WebhookConfigWriter) *RegisterWebhookCommand {
	return &RegisterWebhookCommand{writer: writer}
}

func (c *RegisterWebhookCommand) Execute(ctx context.Context, msg RegisterWebhookMessage) error {
	if c == nil || c.writer == nil {
		return commandDependencyError("command: webhook config writer is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.writer.Create(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
