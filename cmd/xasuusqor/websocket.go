package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Mohameddacar/xasuusqor/internal/logging"
	"github.com/Mohameddacar/xasuusqor/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local-first backend, localhost clients only.
		return r.Host == "localhost" || r.Host == "localhost:8090" || r.Host == "127.0.0.1:8090"
	},
}

// wsClient is one connected WebSocket client.
type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *wsHub
}

// wsHub maintains client connections and broadcasts annotation lifecycle
// events. It satisfies services.Publisher.
type wsHub struct {
	clients    map[string]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	mu         sync.RWMutex
}

// wsEnvelope wraps every outbound message.
type wsEnvelope struct {
	Type      string      `json:"type"`
	EntryID   string      `json:"entry_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

var _ services.Publisher = (*wsHub)(nil)

func newWSHub() *wsHub {
	hub := &wsHub{
		clients:    make(map[string]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
	go hub.run()
	return hub
}

func (h *wsHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			logging.L().Debugw("websocket client connected", "client", client.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			logging.L().Debugw("websocket client disconnected", "client", client.id)

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full, drop the client.
					close(client.send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish broadcasts an event to all connected clients. Never blocks the
// caller; a full broadcast buffer drops the event.
func (h *wsHub) Publish(event services.Event) {
	envelope := wsEnvelope{
		Type:      event.Type,
		EntryID:   event.EntryID,
		Payload:   event.Payload,
		Timestamp: time.Now().Unix(),
	}
	bytes, err := json.Marshal(envelope)
	if err != nil {
		logging.L().Errorw("failed to marshal websocket event", "error", err)
		return
	}
	select {
	case h.broadcast <- bytes:
	default:
		logging.L().Warnw("websocket broadcast buffer full, dropping event", "type", event.Type)
	}
}

func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.L().Debugw("websocket read error", "error", err)
			}
			break
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWebSocket handles GET /ws connections.
func handleWebSocket(hub *wsHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.L().Warnw("websocket upgrade failed", "error", err)
			return
		}

		client := &wsClient{
			id:   time.Now().Format("20060102150405.000") + "-" + r.RemoteAddr,
			conn: conn,
			send: make(chan []byte, 256),
			hub:  hub,
		}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
