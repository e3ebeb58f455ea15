package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Topics carried on the change feed.
const (
	TopicTechnicians     = "technicians"
	TopicDrivers         = "drivers"
	TopicVehicles        = "vehicles"
	TopicPackageBookings = "packageBookings"
)

// Event tells subscribers that a collection changed.
type Event struct {
	Topic  string    `json:"topic"`
	Action string    `json:"action"` // "created", "updated", "deleted"
	ID     string    `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

const writeWait = 10 * time.Second

// Hub fans change events out to every connected websocket client.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan Event
	done      chan struct{}
	mu        sync.Mutex
}

func NewHub() *Hub {
	hub := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 100),
		done:      make(chan struct{}),
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return
		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"topic":    ev.Topic,
						"conn_ptr": fmt.Sprintf("%p", conn),
					}).Info("Dropping event client after failed write.")
					delete(h.clients, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client registered with event hub.")
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client unregistered from event hub.")
	}
}

// Clients returns the number of registered connections.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues ev for broadcast without blocking the caller.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithField("topic", ev.Topic).Warn("Event broadcast channel full, dropping message.")
	}
}

// Close stops the broadcast loop and closes every client connection.
func (h *Hub) Close() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
