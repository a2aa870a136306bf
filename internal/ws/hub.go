package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"go-rental-console/internal/poller"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is one connected console session. Cancel tears down every
// background task tied to the session (the pending-count poller); the hub
// invokes it on unregister so no timer outlives its session.
type Client struct {
	Conn       *websocket.Conn
	OperatorID uuid.UUID
	Cancel     context.CancelFunc
}

type Hub struct {
	Clients    map[*websocket.Conn]*Client
	Register   chan *Client
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client.Conn] = client
			h.mutex.Unlock()
			log.Printf("ws: session connected (operator %s)", client.OperatorID)

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if client, ok := h.Clients[conn]; ok {
				client.Cancel()
				delete(h.Clients, conn)
				conn.Close()
				log.Printf("ws: session closed (operator %s)", client.OperatorID)
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn, client := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Cancel()
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Send writes a message to a single session. Writes go through the hub
// mutex so they never interleave with broadcasts on the same connection.
func (h *Hub) Send(conn *websocket.Conn, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.Clients[conn]; !ok {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
		log.Printf("ws: send failed: %v", err)
	}
}

// BroadcastJSON marshals the payload and queues it for every session
func (h *Hub) BroadcastJSON(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws: marshal failed: %v", err)
		return
	}
	h.Broadcast <- msg
}

// SessionSink adapts one session's connection into the poller's output
// signals: badge refreshes on every observation, an alert message on each
// strict pending-count increase.
type SessionSink struct {
	hub  *Hub
	conn *websocket.Conn
}

func NewSessionSink(hub *Hub, conn *websocket.Conn) *SessionSink {
	return &SessionSink{hub: hub, conn: conn}
}

func (s *SessionSink) CountsUpdated(snapshot poller.Snapshot) {
	s.send("pending_counts", snapshot)
}

func (s *SessionSink) PendingIncrease(snapshot poller.Snapshot) {
	// The client plays the notification sound on this message.
	s.send("pending_alert", snapshot)
}

func (s *SessionSink) send(msgType string, snapshot poller.Snapshot) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":         msgType,
		"total":        snapshot.Total,
		"per_category": snapshot.PerCategory,
	})
	if err != nil {
		log.Printf("ws: marshal failed: %v", err)
		return
	}
	s.hub.Send(s.conn, msg)
}
