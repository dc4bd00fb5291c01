package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Dev: allow every origin. Tighten to the gallery domain in production.
		return true
	},
}

// Event - message pushed to live-gallery clients
type Event struct {
	Type       string `json:"type"`
	PortraitID int    `json:"portraitId,omitempty"`
	ArtStyle   string `json:"artStyle,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Client - one connected gallery viewer
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts portrait lifecycle events to every connected client.
type Hub struct {
	mutex   sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// HandleWebSocket - upgrade the connection and register the client
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.addClient(client)

	go client.writePump()
	go client.readPump(h)
}

// PortraitCreated - notify every client that a portrait finished generating
func (h *Hub) PortraitCreated(portraitID int, artStyle string, createdAt string) {
	h.broadcast(Event{
		Type:       "portrait_created",
		PortraitID: portraitID,
		ArtStyle:   artStyle,
		CreatedAt:  createdAt,
	})
}

func (h *Hub) addClient(client *Client) {
	h.mutex.Lock()
	h.clients[client] = true
	clientCount := len(h.clients)
	h.mutex.Unlock()

	log.Printf("👤 Gallery client connected (Clients: %d)", clientCount)

	welcome := Event{Type: "connected", CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	if data, err := json.Marshal(welcome); err == nil {
		client.send <- data
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.clients[client]; exists {
		close(client.send)
		delete(h.clients, client)
		log.Printf("👋 Gallery client disconnected (Remaining: %d)", len(h.clients))
	}
}

func (h *Hub) broadcast(event Event) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.send <- messageBytes:
		default:
			// Slow consumer - drop the connection
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// readPump - drain inbound frames so pings/close are processed; the feed is
// one-directional, inbound payloads are ignored
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump - push queued events to the client
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
