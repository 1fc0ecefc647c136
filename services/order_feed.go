package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type feedClient struct {
	conn *websocket.Conn
}

// OrderFeed pushes every created order to connected kitchen/admin
// websocket clients. Write errors drop the client; the next broadcast
// simply skips it.
type OrderFeed struct {
	mu      sync.RWMutex
	clients map[*feedClient]struct{}
}

func NewOrderFeed() *OrderFeed {
	return &OrderFeed{clients: make(map[*feedClient]struct{})}
}

func (f *OrderFeed) Register(conn *websocket.Conn) *feedClient {
	c := &feedClient{conn: conn}
	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()
	return c
}

func (f *OrderFeed) Unregister(c *feedClient) {
	f.mu.Lock()
	delete(f.clients, c)
	f.mu.Unlock()
	_ = c.conn.Close()
}

// BroadcastOrder satisfies OrderBroadcaster.
func (f *OrderFeed) BroadcastOrder(view *OrderView) {
	msg, err := json.Marshal(view)
	if err != nil {
		return
	}

	f.mu.RLock()
	stale := make([]*feedClient, 0)
	for c := range f.clients {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			stale = append(stale, c)
		}
	}
	f.mu.RUnlock()

	for _, c := range stale {
		f.Unregister(c)
	}
}
