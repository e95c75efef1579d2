package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

const (
	feedWriteTimeout = 10 * time.Second
	feedPongTimeout  = 60 * time.Second
	feedPingPeriod   = 50 * time.Second

	// Slow clients that cannot drain this many pending events are
	// disconnected rather than allowed to block the feed.
	feedSendBuffer = 32
)

// FeedEvent is one change-feed message. A message per mutation, carrying
// the registry that changed and its new size; clients re-fetch the list
// they care about.
type FeedEvent struct {
	Kind content.Kind `json:"kind"`
	Size int          `json:"size"`
}

// FeedHub fans registry changes out to WebSocket clients.
type FeedHub struct {
	logger   *slog.Logger
	metrics  *Metrics
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*feedClient]struct{}
	closed  bool
}

type feedClient struct {
	conn *websocket.Conn
	send chan FeedEvent
}

func NewFeedHub(logger *slog.Logger, metrics *Metrics) *FeedHub {
	return &FeedHub{
		logger:  logger,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// Bind subscribes the hub to every registry in the catalog. Mutations
// from any source reach all connected clients.
func (h *FeedHub) Bind(c *content.Catalog) {
	bindRegistry(h, content.KindProps, c.Props)
	bindRegistry(h, content.KindEnvironments, c.Environments)
	bindRegistry(h, content.KindBlueprints, c.Blueprints)
}

func bindRegistry[T any](h *FeedHub, kind content.Kind, r *registry.Registry[T]) {
	r.Subscribe(func() {
		h.broadcast(FeedEvent{Kind: kind, Size: r.Len()})
	})
}

func (h *FeedHub) broadcast(ev FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			// Client is not keeping up. Drop it; closing send wakes
			// its write pump.
			delete(h.clients, c)
			close(c.send)
			h.metrics.feedClients.Dec()
		}
	}
}

// ServeHTTP upgrades the request and streams change events until the
// client disconnects or the hub closes.
func (h *FeedHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("feed upgrade failed", "error", err)
		return
	}

	c := &feedClient{conn: conn, send: make(chan FeedEvent, feedSendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.feedClients.Inc()

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards inbound messages. The feed is one-way; reads exist
// to process control frames and detect disconnects.
func (h *FeedHub) readPump(c *feedClient) {
	defer h.drop(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(feedPongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(feedPongTimeout))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *FeedHub) writePump(c *feedClient) {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("feed marshal failed", "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drop removes a client if it is still registered.
func (h *FeedHub) drop(c *feedClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.metrics.feedClients.Dec()
	}
	h.mu.Unlock()
	c.conn.Close()
}

// Close disconnects every client and rejects new connections.
func (h *FeedHub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		h.metrics.feedClients.Dec()
	}
	h.mu.Unlock()
}
