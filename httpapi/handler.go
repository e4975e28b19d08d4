package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-hook-notify/command"
	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/events"
	"github.com/goliatone/go-hook-notify/webhooks"
)

const (
	HeaderGitHubEvent    = "X-GitHub-Event"
	HeaderGitHubDelivery = "X-GitHub-Delivery"

	StateIgnored = "ignored"

	DefaultMaxBodyBytes int64 = 5 << 20
)

type Handler struct {
	notify         gocmd.Commander[command.NotifyMessage]
	stream         http.Handler
	health         func(ctx context.Context) error
	maxBodyBytes   int64
	logger         core.Logger
	loggerProvider core.LoggerProvider
}

type Option func(*Handler)

func WithLogger(logger core.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(h *Handler) {
		h.loggerProvider = provider
	}
}

// WithStream mounts a websocket handler on /ws.
func WithStream(stream http.Handler) Option {
	return func(h *Handler) {
		h.stream = stream
	}
}

// WithHealthCheck makes /healthz report 503 when check fails.
func WithHealthCheck(check func(ctx context.Context) error) Option {
	return func(h *Handler) {
		h.health = check
	}
}

func WithMaxBodyBytes(limit int64) Option {
	return func(h *Handler) {
		if limit > 0 {
			h.maxBodyBytes = limit
		}
	}
}

func NewHandler(notify gocmd.Commander[command.NotifyMessage], opts ...Option) (*Handler, error) {
	if notify == nil {
		return nil, core.InternalError("httpapi: notify command is required", nil)
	}
	h := &Handler{
		notify:       notify,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.logger = core.ResolveLogger("hook-notify.httpapi", h.loggerProvider, h.logger)
	return h, nil
}

type webhookResponse struct {
	State      string `json:"state"`
	ServiceKey string `json:"service_key,omitempty"`
	Event      string `json:"event,omitempty"`
	EventKind  string `json:"event_kind,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
}

type errorResponse struct {
	TextCode string `json:"text_code"`
	Message  string `json:"message"`
}

func (h *Handler) GitHubWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serviceKey := strings.TrimSpace(chi.URLParam(r, "serviceKey"))
	kind := strings.TrimSpace(r.Header.Get(HeaderGitHubEvent))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(ctx, w, core.ValidationError("request body too large", map[string]any{
				"limit": tooLarge.Limit,
			}))
			return
		}
		h.writeError(ctx, w, core.ValidationError("read request body: "+err.Error(), nil))
		return
	}

	event, err := events.Decode(kind, body)
	if err != nil {
		if core.IsUnsupportedEvent(err) {
			core.LogDebug(ctx, h.logger, "github event ignored", map[string]any{
				"service_key": serviceKey,
				"event":       kind,
			})
			writeJSON(w, http.StatusOK, webhookResponse{State: StateIgnored, ServiceKey: serviceKey, Event: kind})
			return
		}
		h.writeError(ctx, w, err)
		return
	}
	event.DeliveryID = strings.TrimSpace(r.Header.Get(HeaderGitHubDelivery))

	result := gocmd.NewResult[webhooks.Outcome]()
	err = h.notify.Execute(gocmd.ContextWithResult(ctx, result), command.NotifyMessage{
		ServiceKey: serviceKey,
		Event:      event,
	})
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	outcome, _ := result.Load()
	writeJSON(w, http.StatusOK, webhookResponse{
		State:      string(outcome.State),
		ServiceKey: outcome.ServiceKey,
		Event:      kind,
		EventKind:  outcome.EventKind.String(),
		MessageID:  outcome.Response.MessageID,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			core.LogWarn(r.Context(), h.logger, "health check failed", map[string]any{"error": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := core.MapError(err)
	fields := map[string]any{
		"text_code": mapped.TextCode,
		"status":    mapped.Code,
		"error":     err.Error(),
	}
	if mapped.Code >= http.StatusInternalServerError {
		core.LogError(ctx, h.logger, "webhook request failed", fields)
	} else {
		core.LogWarn(ctx, h.logger, "webhook request rejected", fields)
	}
	writeJSON(w, mapped.Code, errorResponse{TextCode: mapped.TextCode, Message: mapped.Message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
