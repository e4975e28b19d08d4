package webhooks

import (
	"context"
	"time"

	"github.com/goliatone/go-hook-notify/core"
)

func (n *Notifier) observe(ctx context.Context, outcome Outcome, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	tags := map[string]string{
		"operation":  "notify",
		"status":     status,
		"state":      string(outcome.State),
		"event_kind": outcome.EventKind.String(),
	}
	n.metrics.IncCounter(ctx, "notify.notify.total", 1, core.CloneTags(tags))
	n.metrics.ObserveHistogram(
		ctx,
		"notify.notify.duration_ms",
		float64(outcome.FinishedAt.Sub(outcome.StartedAt)/time.Millisecond),
		core.CloneTags(tags),
	)

	fields := map[string]any{
		"service_key": outcome.ServiceKey,
		"delivery_id": outcome.DeliveryID,
		"state":       string(outcome.State),
		"event_kind":  outcome.EventKind.String(),
		"room_id":     outcome.RoomID,
		"sender":      outcome.Sender,
		"status":      status,
	}
	switch {
	case err != nil:
		fields["error"] = err.Error()
		core.LogError(ctx, n.logger, "notify failed", fields)
	case outcome.State == StateSuppressed:
		core.LogDebug(ctx, n.logger, "notify suppressed", fields)
	default:
		fields["message_id"] = outcome.Response.MessageID
		core.LogInfo(ctx, n.logger, "notify dispatched", fields)
	}

	for _, observer := range n.observers {
		observer.ObserveOutcome(ctx, outcome)
	}
}
