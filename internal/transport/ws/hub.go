package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAssessmentStarted   MessageType = "assessment_started"
	MsgProgressUpdate      MessageType = "progress_update"
	MsgAssessmentCompleted MessageType = "assessment_completed"
	MsgWatcherJoined       MessageType = "watcher_joined"
	MsgWatcherLeft         MessageType = "watcher_left"
	MsgError               MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages watcher WebSocket connections per assessment
type Hub struct {
	// assessmentID -> watcherID -> conn
	watcherConns map[string]map[string]*Connection

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	AssessmentID string
	WatcherID    string
	Send         chan []byte
	Hub          *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	AssessmentID string
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watcherConns: make(map[string]map[string]*Connection),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watcherConns[conn.AssessmentID] == nil {
				h.watcherConns[conn.AssessmentID] = make(map[string]*Connection)
			}
			h.watcherConns[conn.AssessmentID][conn.WatcherID] = conn
			log.Printf("Watcher %s connected to assessment %s", conn.WatcherID, conn.AssessmentID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if watchers, ok := h.watcherConns[conn.AssessmentID]; ok {
				if existing, ok := watchers[conn.WatcherID]; ok && existing == conn {
					delete(watchers, conn.WatcherID)
					close(conn.Send)
					log.Printf("Watcher %s disconnected from assessment %s", conn.WatcherID, conn.AssessmentID)
				}
				if len(watchers) == 0 {
					delete(h.watcherConns, conn.AssessmentID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			if watchers, ok := h.watcherConns[msg.AssessmentID]; ok {
				for _, conn := range watchers {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
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

// BroadcastToWatchers sends a message to every watcher of an assessment
// (implements service.Broadcaster)
func (h *Hub) BroadcastToWatchers(assessmentID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		AssessmentID: assessmentID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
