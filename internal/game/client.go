package game

import (
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var ErrClientDisconnected = errors.New("client disconnected")

// Conn is the subset of *websocket.Conn the client uses. Tests swap in
// an in-memory implementation.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// Client owns one socket. Messages are processed on the read goroutine,
// one at a time, so each connection sees its own messages handled in
// order. Outbound traffic goes through a buffered channel drained by the
// write goroutine, which also runs the keepalive ping ticker.
type Client struct {
	id   string
	hub  *Hub
	conn Conn
	send chan []byte
	done chan struct{}

	// Set once on successful auth, read by the hub afterwards
	session atomic.Pointer[Session]

	closed int32
}

func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		id:   uuid.New().String(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, hub.sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Session() *Session {
	return c.session.Load()
}

func (c *Client) isClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// close marks the client closed and shuts the socket. Idempotent; the
// first caller wins and later calls are no-ops.
func (c *Client) close() {
	if atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		close(c.done)
		c.conn.Close()
		slog.Debug("Client closed", "clientID", c.id)
	}
}

func (c *Client) readPump() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "clientID", c.id, "error", err)
			} else {
				slog.Debug("WebSocket connection closed", "clientID", c.id, "error", err)
			}
			break
		}

		// Synchronous: message N is fully handled (registry mutation
		// plus broadcasts) before message N+1 is read.
		c.hub.HandleMessage(c, raw)
	}
}

// writePump drains the send queue and probes the peer with pings so dead
// sockets surface faster than a TCP timeout and idle proxies keep the
// connection open. The ticker stops as soon as the client closes.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Debug("Error writing message", "clientID", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("Error sending ping", "clientID", c.id, "error", err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// enqueue hands a message to the write goroutine. A send to a closed or
// backed-up client is dropped, never an error that aborts a broadcast.
func (c *Client) enqueue(message []byte) error {
	if c.isClosed() {
		return ErrClientDisconnected
	}

	select {
	case c.send <- message:
		return nil
	default:
		// Send buffer full: the peer has stopped draining, cut it loose
		slog.Warn("Send buffer full, closing client", "clientID", c.id)
		c.close()
		return ErrClientDisconnected
	}
}

func (c *Client) sendError(message string) {
	if err := c.enqueue(NewErrorMessage(message)); err != nil {
		slog.Debug("Dropped error reply", "clientID", c.id)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Game clients connect from arbitrary origins; auth happens in
		// the protocol, not at the HTTP layer.
		return true
	},
}

// ServeWS upgrades an HTTP request and starts the connection's pumps.
// The connection stays unauthenticated until its first valid auth
// message.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := NewClient(hub, conn)
	slog.Info("New WebSocket connection established", "clientID", client.id)

	go client.writePump()
	go client.readPump()
}
