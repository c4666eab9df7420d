package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitJourney/internal/onboarding"
)

type dashboardSource interface {
	Dashboard() onboarding.Dashboard
	CompleteWorkout() int
	ResetProfile()
}

type DashboardHandler struct {
	source dashboardSource
}

func NewDashboardHandler(source dashboardSource) *DashboardHandler {
	return &DashboardHandler{source: source}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(h.source.Dashboard())
}

func (h *DashboardHandler) CompleteWorkout(c *fiber.Ctx) error {
	h.source.CompleteWorkout()
	return c.JSON(fiber.Map{"stats": h.source.Dashboard().Stats})
}

// ResetProfile discards the profile and sends the wizard back to the
// landing page. Community posts survive.
func (h *DashboardHandler) ResetProfile(c *fiber.Ctx) error {
	h.source.ResetProfile()
	return c.SendStatus(fiber.StatusNoContent)
}
