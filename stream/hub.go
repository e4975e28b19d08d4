package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/webhooks"
	"github.com/gorilla/websocket"
)

const (
	MessageTypeOutcome   = "outcome"
	MessageTypeSubscribe = "subscribe"

	defaultQueueSize  = 16
	defaultClientSize = 32
)

type Message struct {
	Type    string           `json:"type"`
	Outcome webhooks.Outcome `json:"outcome"`
}

type broadcastMessage struct {
	serviceKey string
	data       []byte
}

type Hub struct {
	clients    map[*client]bool
	broadcast  chan broadcastMessage
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64

	upgrader       websocket.Upgrader
	clientBuffer   int
	logger         core.Logger
	loggerProvider core.LoggerProvider
}

type Option func(*Hub)

func WithLogger(logger core.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(h *Hub) {
		h.loggerProvider = provider
	}
}

// WithCheckOrigin replaces the default same-origin check of the upgrader.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(h *Hub) {
		h.upgrader.CheckOrigin = check
	}
}

func WithQueueSize(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.broadcast = make(chan broadcastMessage, size)
		}
	}
}

func WithClientBuffer(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.clientBuffer = size
		}
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:      make(map[*client]bool),
		broadcast:    make(chan broadcastMessage, defaultQueueSize),
		register:     make(chan *client),
		unregister:   make(chan *client),
		done:         make(chan struct{}),
		clientBuffer: defaultClientSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.logger = core.ResolveLogger("hook-notify.stream", h.loggerProvider, h.logger)
	return h
}

// Run serves registrations and broadcasts until ctx is done. All subscriber
// connections are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			h.drop(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
			h.count.Add(1)
		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				if !c.subscribedTo(message.serviceKey) {
					continue
				}
				select {
				case c.send <- message.data:
				default:
					core.LogWarn(ctx, h.logger, "stream subscriber dropped", map[string]any{
						"remote": c.remote,
					})
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// Clients returns the number of registered subscribers.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// ObserveOutcome implements webhooks.OutcomeObserver.
func (h *Hub) ObserveOutcome(ctx context.Context, outcome webhooks.Outcome) {
	data, err := json.Marshal(Message{Type: MessageTypeOutcome, Outcome: outcome})
	if err != nil {
		core.LogError(ctx, h.logger, "stream outcome encode failed", map[string]any{
			"error": err.Error(),
		})
		return
	}
	select {
	case h.broadcast <- broadcastMessage{serviceKey: outcome.ServiceKey, data: data}:
	default:
		core.LogWarn(ctx, h.logger, "stream queue full, outcome discarded", map[string]any{
			"service_key": outcome.ServiceKey,
			"state":       string(outcome.State),
		})
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		core.LogWarn(r.Context(), h.logger, "stream upgrade failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, h.clientBuffer),
		remote: conn.RemoteAddr().String(),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

var _ webhooks.OutcomeObserver = (*Hub)(nil)
