package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub pushes notification events (new direct messages, new quiz shares) to
// connected users over websockets. A user can be connected from several
// tabs; every connection of the recipient gets the event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub      *Hub
	id       string
	socket   *websocket.Conn
	send     chan []byte
	userID   uint
	username string
}

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventNewMessage   = "new_message"
	EventNewQuizShare = "new_quiz_share"
)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client registered: %s (user %d: %s) - Total clients: %d", client.id, client.userID, client.username, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s (user %d: %s) - Total clients: %d", client.id, client.userID, client.username, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// NotifyUser sends an event to every connection the user currently holds.
// Users without an open connection simply miss the push and pick the data up
// on their next poll.
func (h *Hub) NotifyUser(userID uint, eventType string, payload interface{}) {
	event := Event{
		Type:    eventType,
		Payload: payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		if client.userID != userID {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the connection
			close(client.send)
			delete(h.clients, client)
		}
	}
}

func (h *Hub) IsUserConnected(userID uint) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.userID == userID {
			return true
		}
	}
	return false
}

func (h *Hub) RegisterClient(conn *websocket.Conn, userID uint, username string) *Client {
	client := &Client{
		hub:      h,
		id:       uuid.NewString(),
		socket:   conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		username: username,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("Error unmarshaling event: %v", err)
			continue
		}

		c.handleEvent(event)
	}
}

func (c *Client) writePump() {
	defer func() {
		c.socket.Close()
	}()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}

		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleEvent(event Event) {
	switch event.Type {
	case "ping":
		response := Event{
			Type:    "pong",
			Payload: "pong",
		}
		data, _ := json.Marshal(response)
		c.send <- data

	default:
		log.Printf("Unknown event type: %s from user %d (%s)", event.Type, c.userID, c.username)
	}
}
