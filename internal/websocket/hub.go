// Package feedws pushes community feed snapshots to connected websocket
// clients. The hub listens to the onboarding controller and fans every feed
// change out to all clients.
package feedws

import (
	"context"
	"encoding/json"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/saeid-a/FitJourney/internal/models"
	"github.com/saeid-a/FitJourney/internal/onboarding"
	"go.uber.org/zap"
)

const (
	MessagePosts = "posts"
	MessageError = "error"
)

type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	replies    chan reply
	done       chan struct{}
	source     postsSource
	logger     *zap.Logger
}

type postsSource interface {
	Posts() []models.CommunityPost
}

// feedActions are the feed mutations a client may request over the socket.
type feedActions interface {
	SharePost(body string) (models.CommunityPost, error)
	LikePost(id string) (models.CommunityPost, bool)
}

type conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Client struct {
	hub  *Hub
	conn conn
	send chan []byte
}

type reply struct {
	client  *Client
	payload []byte
}

type Message struct {
	Type      string                 `json:"type"`
	Posts     []models.CommunityPost `json:"posts,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

func NewHub(source postsSource, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		replies:    make(chan reply),
		done:       make(chan struct{}),
		source:     source,
		logger:     logger,
	}
}

func NewClient(hub *Hub, conn conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

// Run owns the client set until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			// New clients start from the current feed.
			if payload, err := encodeMessage(postsMessage(h.source.Posts())); err == nil {
				h.sendTo(client, payload)
			}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				h.sendTo(client, payload)
			}
		case r := <-h.replies:
			if _, ok := h.clients[r.client]; ok {
				h.sendTo(r.client, r.payload)
			}
		}
	}
}

// Register hands the client to the hub. Once the hub has stopped the
// client's send buffer is closed straight away so its write pump exits.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// OnChange runs under the controller lock, so it never blocks: when the
// broadcast queue is full the oldest queued snapshot makes room for this one.
func (h *Hub) OnChange(change onboarding.Change) {
	if change.Kind != onboarding.PostsChanged {
		return
	}
	payload, err := encodeMessage(postsMessage(change.Posts))
	if err != nil {
		h.logger.Error("feed hub encode posts", zap.Error(err))
		return
	}
	for {
		select {
		case h.broadcast <- payload:
			return
		default:
		}
		select {
		case <-h.broadcast:
			h.logger.Warn("feed hub broadcast queue full, dropping oldest snapshot", zap.Int("posts", len(change.Posts)))
		default:
		}
	}
}

// sendTo drops a client whose buffer is full.
func (h *Hub) sendTo(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		delete(h.clients, client)
		close(client.send)
	}
}

func postsMessage(posts []models.CommunityPost) *Message {
	return &Message{
		Type:      MessagePosts,
		Posts:     posts,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func encodeMessage(message *Message) ([]byte, error) {
	return json.Marshal(message)
}

// ReadPump applies like and share requests until the connection fails.
// The resulting snapshot reaches every client through OnChange.
func (c *Client) ReadPump(feed feedActions) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type   string `json:"type"`
			PostID string `json:"post_id"`
			Body   string `json:"body"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			c.writeError("invalid message payload")
			continue
		}

		switch incoming.Type {
		case "like":
			if _, ok := feed.LikePost(incoming.PostID); !ok {
				c.writeError("post not found")
			}
		case "share":
			if _, err := feed.SharePost(incoming.Body); err != nil {
				c.writeError(err.Error())
			}
		default:
			c.writeError("unsupported message type")
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// writeError goes through the hub, which alone closes the send buffer.
func (c *Client) writeError(message string) {
	payload, err := json.Marshal(Message{
		Type:      MessageError,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case c.hub.replies <- reply{client: c, payload: payload}:
	case <-c.hub.done:
	}
}
