package webhooks

import (
	"context"
	"time"

	"github.com/goliatone/go-hook-notify/chatwork"
	"github.com/goliatone/go-hook-notify/core"
)

type State string

const (
	StateStart              State = "start"
	StateConfigResolved     State = "config_resolved"
	StateEventClassified    State = "event_classified"
	StateRecipientsResolved State = "recipients_resolved"
	StateSuppressed         State = "suppressed"
	StateComposed           State = "composed"
	StateDispatched         State = "dispatched"
	StateFailed             State = "failed"
)

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateSuppressed || s == StateDispatched || s == StateFailed
}

// Outcome describes how a single notification attempt ended.
type Outcome struct {
	ServiceKey  string                       `json:"service_key"`
	DeliveryID  string                       `json:"delivery_id,omitempty"`
	State       State                        `json:"state"`
	Transitions []State                      `json:"transitions"`
	EventKind   core.EventKind               `json:"event_kind"`
	Sender      string                       `json:"sender,omitempty"`
	Receivers   string                       `json:"receivers,omitempty"`
	RoomID      string                       `json:"room_id,omitempty"`
	Body        string                       `json:"body,omitempty"`
	Response    chatwork.PostMessageResponse `json:"response"`
	Error       string                       `json:"error,omitempty"`
	StartedAt   time.Time                    `json:"started_at"`
	FinishedAt  time.Time                    `json:"finished_at"`
}

func (o *Outcome) transition(state State) {
	o.State = state
	o.Transitions = append(o.Transitions, state)
}

// OutcomeObserver is notified after every Notify call. Implementations must
// not block.
type OutcomeObserver interface {
	ObserveOutcome(ctx context.Context, outcome Outcome)
}

type OutcomeObserverFunc func(ctx context.Context, outcome Outcome)

func (f OutcomeObserverFunc) ObserveOutcome(ctx context.Context, outcome Outcome) {
	f(ctx, outcome)
}
