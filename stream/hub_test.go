package stream

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-hook-notify/core"
	"github.com/goliatone/go-hook-notify/webhooks"
	"github.com/gorilla/websocket"
)

func startHub(t *testing.T, opts ...Option) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(opts...)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", want, hub.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsOutcomeToSubscriber(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server)
	waitForClients(t, hub, 1)

	hub.ObserveOutcome(context.Background(), webhooks.Outcome{
		ServiceKey: "svc",
		State:      webhooks.StateDispatched,
		EventKind:  core.EventPullRequestOpened,
		RoomID:     "42",
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != MessageTypeOutcome {
		t.Fatalf("expected outcome message, got %q", msg.Type)
	}
	if msg.Outcome.ServiceKey != "svc" || msg.Outcome.State != webhooks.StateDispatched || msg.Outcome.RoomID != "42" {
		t.Fatalf("unexpected outcome %+v", msg.Outcome)
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server)
	waitForClients(t, hub, 1)

	_ = conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_ObserveDoesNotBlockWithoutRunLoop(t *testing.T) {
	hub := NewHub(WithQueueSize(1))
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			hub.ObserveOutcome(context.Background(), webhooks.Outcome{ServiceKey: "svc"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected publishing to return without a run loop")
	}
}

func TestClient_SubscriptionFilter(t *testing.T) {
	c := &client{}
	if !c.subscribedTo("any") {
		t.Fatalf("expected unfiltered client to receive every service key")
	}
	c.subscribe([]string{"svc-a"})
	if !c.subscribedTo("svc-a") || c.subscribedTo("svc-b") {
		t.Fatalf("expected filter to svc-a only")
	}
	c.subscribe(nil)
	if !c.subscribedTo("svc-b") {
		t.Fatalf("expected empty subscribe to clear the filter")
	}
}

func TestWatch_StopsAfterCallback(t *testing.T) {
	hub, server := startHub(t)
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	received := make(chan Message, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, url, []string{"svc-b"}, func(msg Message) error {
			// svc-a can slip through before the subscription is applied.
			if msg.Outcome.ServiceKey != "svc-b" {
				return nil
			}
			received <- msg
			return ErrStopWatching
		})
	}()
	waitForClients(t, hub, 1)

	deadline := time.After(2 * time.Second)
	for {
		hub.ObserveOutcome(context.Background(), webhooks.Outcome{ServiceKey: "svc-a", State: webhooks.StateSuppressed})
		hub.ObserveOutcome(context.Background(), webhooks.Outcome{ServiceKey: "svc-b", State: webhooks.StateDispatched})
		select {
		case msg := <-received:
			if msg.Outcome.State != webhooks.StateDispatched {
				t.Fatalf("unexpected outcome %+v", msg.Outcome)
			}
			if err := <-errCh; err != nil {
				t.Fatalf("watch: %v", err)
			}
			return
		case <-deadline:
			t.Fatalf("timed out waiting for outcome")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
