package handlers

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	feedws "github.com/saeid-a/FitJourney/internal/websocket"
)

type FeedSocketHandler struct {
	hub  *feedws.Hub
	feed communityFeed
}

func NewFeedSocketHandler(hub *feedws.Hub, feed communityFeed) *FeedSocketHandler {
	return &FeedSocketHandler{hub: hub, feed: feed}
}

func (h *FeedSocketHandler) RequireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}
	return c.Next()
}

func (h *FeedSocketHandler) HandleWebSocket(conn *websocket.Conn) {
	client := feedws.NewClient(h.hub, conn)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.feed)
}
