// Package realtime serves the live metrics feed over WebSockets.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	snapshotLimit = 100
)

type metricSource interface {
	List(ctx context.Context, limit int) ([]*models.Metric, error)
}

// client serializes writes to one connection; gorilla connections allow a
// single concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

type Hub struct {
	log      *slog.Logger
	metrics  metricSource
	upgrader websocket.Upgrader
	ping     time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(log *slog.Logger, metrics metricSource) *Hub {
	return &Hub{
		log:     log,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ping:    pingInterval,
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the connection until the client
// leaves or the hub is closed. New clients get the full metric list first.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}
	h.add(c)
	defer h.remove(c)
	log.Info("realtime client connected", "clients", h.ClientCount())

	h.sendMetrics(r.Context(), c)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn("websocket read error", "error", err)
				}
				return
			}
			var msg dto.RealtimeMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				log.Debug("ignoring malformed client message", "error", err)
				continue
			}
			if msg.Type == dto.MessageRequestMetrics {
				h.sendMetrics(r.Context(), c)
			}
		}
	}()

	ticker := time.NewTicker(h.ping)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readDone:
			log.Info("realtime client disconnected")
			return
		case <-h.done:
			c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// Broadcast sends msg to every connected client. Clients that fail the
// write are disconnected.
func (h *Hub) Broadcast(msg dto.RealtimeMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to encode realtime message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(websocket.TextMessage, data); err != nil {
			h.log.Warn("dropping realtime client", "error", err)
			h.remove(c)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) sendMetrics(ctx context.Context, c *client) {
	metrics, err := h.metrics.List(ctx, snapshotLimit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load metrics for realtime client", "error", err)
		return
	}
	data, err := json.Marshal(dto.RealtimeMessage{Type: dto.MessageMetricsUpdate, Data: metrics})
	if err != nil {
		return
	}
	if err := c.write(websocket.TextMessage, data); err != nil {
		h.remove(c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}
