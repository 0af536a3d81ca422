package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// ConnectionEstablished is sent to every client right after the upgrade
const ConnectionEstablished = "connection_established"

// ErrHubClosed is returned when publishing to a hub that has been shut down
var ErrHubClosed = errors.New("websocket hub is closed")

// Hub maintains connected websocket clients and broadcasts events to them.
// The client set is owned by the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	upgrader websocket.Upgrader
	gauge    prometheus.Gauge
	logger   logger.Logger

	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates a Hub. checkOrigin may be nil to accept any origin, gauge may be nil.
func NewHub(logger logger.Logger, gauge prometheus.Gauge, checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		gauge:  gauge,
		logger: logger,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns after Close
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.updateGauge()
			h.logger.Info("Websocket client connected: ", client.ID)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.logger.Info("Websocket client disconnected: ", client.ID)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.remove(client)
					h.logger.Warn("Dropped slow websocket client: ", client.ID)
				}
			}
		case <-h.quit:
			for client := range h.clients {
				h.remove(client)
			}
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.updateGauge()
}

func (h *Hub) updateGauge() {
	if h.gauge != nil {
		h.gauge.Set(float64(len(h.clients)))
	}
}

// Publish broadcasts event to every connected client
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Name, err)
	}

	select {
	case <-h.quit:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- message:
		return nil
	case <-h.quit:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the main loop and disconnects every client
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.quit) })
	<-h.done
	return nil
}

// ServeWS upgrades the request and attaches the connection to the hub
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade websocket: %w", err)
	}

	client := newClient(h, conn)

	// queued before registration so it always precedes broadcasts
	greeting, _ := json.Marshal(events.New(ConnectionEstablished, map[string]interface{}{"status": "connected"}))
	client.send <- greeting

	select {
	case h.register <- client:
	case <-h.quit:
		_ = conn.Close()
		return ErrHubClosed
	}

	go client.writePump()
	go client.readPump()
	return nil
}
