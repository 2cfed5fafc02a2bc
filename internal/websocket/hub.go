package websocket

import (
	"context"
	"net/http"
	"sync"

	"swiftpost/internal/logger"
	"swiftpost/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Event types pushed to the browser
const (
	EventSession  = "session"
	EventNavigate = "navigate"
)

// Event is one message on the socket
type Event struct {
	Type  string            `json:"type"`
	Path  string            `json:"path,omitempty"`
	Query map[string]string `json:"query,omitempty"`
	User  *model.Usuario    `json:"user"`
}

// Client represents a single connected WebSocket client
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// Hub keeps the connected consoles and fans session and navigation events out to them.
// It also remembers the last session event so a console that connects late starts in sync.
type Hub struct {
	clients     map[*Client]bool
	broadcast   chan []byte
	register    chan *Client
	unregister  chan *Client
	mu          sync.Mutex
	lastSession []byte
	upgrader    websocket.Upgrader
	log         *logger.Logger
}

// NewHub initializes a hub. An empty allowedOrigins list accepts every origin.
func NewHub(log *logger.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		log:        log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(allowedOrigins) == 0 || origin == "" || lo.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Run dispatches events until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.lastSession != nil {
				client.Send <- h.lastSession
			}
			h.mu.Unlock()
			h.log.Debugw("websocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.log.Debugw("websocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for every connected client. It never blocks the caller;
// when the queue is full the event is dropped.
func (h *Hub) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorw("failed to encode websocket event", "type", ev.Type, "error", err)
		return
	}
	if ev.Type == EventSession {
		h.mu.Lock()
		h.lastSession = msg
		h.mu.Unlock()
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warnw("websocket queue full, dropping event", "type", ev.Type)
	}
}

// Navigate sends the consoles to another screen
func (h *Hub) Navigate(path string, query map[string]string) {
	h.Publish(Event{Type: EventNavigate, Path: path, Query: query})
}

// ForwardSessions pushes every current-user change from updates until the channel closes
func (h *Hub) ForwardSessions(updates <-chan *model.Usuario) {
	for user := range updates {
		h.Publish(Event{Type: EventSession, User: user})
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection so close frames are noticed
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warnw("websocket read failed", "error", err)
			}
			return
		}
	}
}

// ServeWs upgrades the request and attaches the client to the hub
func (h *Hub) ServeWs(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{Hub: h, Conn: conn, Send: make(chan []byte, 256)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
