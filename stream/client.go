package stream

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type subscribeMessage struct {
	Type        string   `json:"type"`
	ServiceKeys []string `json:"service_keys"`
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	remote string

	mu          sync.RWMutex
	serviceKeys map[string]struct{}
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg subscribeMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MessageTypeSubscribe {
			continue
		}
		c.subscribe(msg.ServiceKeys)
	}
}

func (c *client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// subscribe narrows delivery to keys. An empty list restores delivery of
// every outcome.
func (c *client) subscribe(keys []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		c.serviceKeys = nil
		return
	}
	c.serviceKeys = make(map[string]struct{}, len(keys))
	for _, key := range keys {
		c.serviceKeys[key] = struct{}{}
	}
}

func (c *client) subscribedTo(serviceKey string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.serviceKeys) == 0 {
		return true
	}
	_, ok := c.serviceKeys[serviceKey]
	return ok
}
