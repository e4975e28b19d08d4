// Package dispatch delivers composed messages to Chatwork and applies the
// delivery error policy.
package dispatch

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-hook-notify/chatwork"
	"github.com/goliatone/go-hook-notify/core"
)

type Dispatcher struct {
	client         chatwork.MessagePoster
	logger         core.Logger
	loggerProvider core.LoggerProvider
	selfUnread     bool
}

type Option func(*Dispatcher)

func WithLogger(logger core.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(d *Dispatcher) {
		d.loggerProvider = provider
	}
}

// WithSelfUnread marks posted messages unread for the bot account itself.
func WithSelfUnread(selfUnread bool) Option {
	return func(d *Dispatcher) {
		d.selfUnread = selfUnread
	}
}

func NewDispatcher(client chatwork.MessagePoster, opts ...Option) *Dispatcher {
	d := &Dispatcher{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.logger = core.ResolveLogger("hook-notify.dispatch", d.loggerProvider, d.logger)
	return d
}

// Send posts msg once. Authorization and malformed-request rejections become
// a delivery rejected error carrying the platform's first error detail. Every
// other failure is returned as is. Nothing is retried.
func (d *Dispatcher) Send(
	ctx context.Context,
	msg core.OutboundMessage,
	creds core.BotCredentials,
) (chatwork.PostMessageResponse, error) {
	if d == nil || d.client == nil {
		return chatwork.PostMessageResponse{}, core.InternalError("dispatch: messaging client is required", nil)
	}

	res, err := d.client.PostMessage(ctx, creds.ChatworkToken.String(), msg.RoomID, msg.Body, d.selfUnread)
	if err == nil {
		return res, nil
	}

	var apiErr *chatwork.APIError
	if errors.As(err, &apiErr) && rejected(apiErr.StatusCode) {
		core.LogWarn(ctx, d.logger, "chatwork delivery rejected", map[string]any{
			"room_id":     msg.RoomID,
			"status_code": apiErr.StatusCode,
			"detail":      apiErr.FirstError(),
		})
		return chatwork.PostMessageResponse{}, core.DeliveryRejectedError(err, apiErr.FirstError(), map[string]any{
			"room_id":     strings.TrimSpace(msg.RoomID),
			"status_code": apiErr.StatusCode,
		})
	}
	return chatwork.PostMessageResponse{}, err
}

func rejected(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusBadRequest
}
