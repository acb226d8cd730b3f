package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

// ActivityEvent is pushed to connected staff/admin dashboards when roster
// or attendance data changes, feeding the recent-activity panel live.
type ActivityEvent struct {
	Kind  string    `json:"kind"` // "attendance", "student", "teacher"
	Title string    `json:"title"`
	At    time.Time `json:"at"`
}

// ActivityHub fans activity events out to connected dashboard clients.
type ActivityHub struct {
	register   chan *activityClient
	unregister chan *activityClient
	broadcast  chan []byte
	clients    map[*activityClient]struct{}
}

func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		register:   make(chan *activityClient),
		unregister: make(chan *activityClient),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[*activityClient]struct{}),
	}
}

func (h *ActivityHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				client.conn.Close()
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					delete(h.clients, client)
					close(client.send)
					client.conn.Close()
				}
			}
		}
	}
}

// Broadcast pushes an event to every connected client. Safe on a nil hub.
func (h *ActivityHub) Broadcast(ev ActivityEvent) {
	if h == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ws: failed to marshal activity event: %v", err)
		return
	}
	h.broadcast <- data
}

type activityClient struct {
	hub  *ActivityHub
	conn *websocket.Conn
	send chan []byte
}

func newActivityClient(hub *ActivityHub, conn *websocket.Conn) *activityClient {
	return &activityClient{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *activityClient) readPump() {
	defer func() {
		c.hub.unregister <- c
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// clients only listen; any read error drops the connection
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *activityClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
