package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitJourney/internal/models"
)

type communityFeed interface {
	Posts() []models.CommunityPost
	SharePost(body string) (models.CommunityPost, error)
	LikePost(id string) (models.CommunityPost, bool)
}

type CommunityHandler struct {
	feed communityFeed
}

func NewCommunityHandler(feed communityFeed) *CommunityHandler {
	return &CommunityHandler{feed: feed}
}

type sharePostRequest struct {
	Body string `json:"body"`
}

func (h *CommunityHandler) ListPosts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"posts": h.feed.Posts()})
}

func (h *CommunityHandler) SharePost(c *fiber.Ctx) error {
	var req sharePostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	post, err := h.feed.SharePost(req.Body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// LikePost has no per-user deduplication; every call adds one like.
func (h *CommunityHandler) LikePost(c *fiber.Ctx) error {
	post, ok := h.feed.LikePost(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	return c.JSON(fiber.Map{"post": post})
}
