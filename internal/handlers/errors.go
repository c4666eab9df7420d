package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitJourney/internal/onboarding"
)

// respondError maps controller errors onto HTTP statuses. Validation errors
// carry a message meant for the user, so it is returned as is.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, onboarding.ErrInvalidInput),
		errors.Is(err, onboarding.ErrPhotoType),
		errors.Is(err, onboarding.ErrPhotoTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, onboarding.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, onboarding.ErrClosed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Service is shutting down"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}
