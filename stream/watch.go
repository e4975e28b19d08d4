package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

// Watch connects to a hub at url and calls fn for every outcome until ctx is
// done, the server closes the connection, or fn returns an error. An empty
// serviceKeys receives every outcome.
func Watch(ctx context.Context, url string, serviceKeys []string, fn func(Message) error) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("stream: connect %s: %w", url, err)
	}
	defer conn.Close()

	if len(serviceKeys) > 0 {
		if err := conn.WriteJSON(subscribeMessage{Type: MessageTypeSubscribe, ServiceKeys: serviceKeys}); err != nil {
			return fmt.Errorf("stream: subscribe: %w", err)
		}
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("stream: read: %w", err)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MessageTypeOutcome {
			continue
		}
		if err := fn(msg); err != nil {
			if errors.Is(err, ErrStopWatching) {
				return nil
			}
			return err
		}
	}
}

// ErrStopWatching ends Watch without an error when returned from fn.
var ErrStopWatching = errors.New("stream: stop watching")
