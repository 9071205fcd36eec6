package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgGraphUpdated     MessageType = "graph_updated"
	MsgConditionUpdated MessageType = "condition_updated"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages editor WebSocket connections per paper. Every editor with a
// paper open receives graph change events so their dependency view stays
// current.
type Hub struct {
	// paperID -> connection set
	editors map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one editor WebSocket connection
type Connection struct {
	PaperID  string
	AuthorID string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast to a paper's editors
type BroadcastMessage struct {
	PaperID string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		editors:    make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.editors[conn.PaperID] == nil {
				h.editors[conn.PaperID] = make(map[*Connection]bool)
			}
			h.editors[conn.PaperID][conn] = true
			log.Printf("Editor %s connected to paper %s", conn.AuthorID, conn.PaperID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.editors[conn.PaperID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Editor %s disconnected from paper %s", conn.AuthorID, conn.PaperID)
				}
				if len(conns) == 0 {
					delete(h.editors, conn.PaperID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.editors[msg.PaperID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToPaper sends a message to every editor of a paper
// (implements service.Broadcaster)
func (h *Hub) BroadcastToPaper(paperID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		PaperID: paperID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
