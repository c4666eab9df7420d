package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitJourney/internal/models"
	"github.com/saeid-a/FitJourney/internal/onboarding"
)

type onboardingFlow interface {
	Snapshot() onboarding.State
	Draft() onboarding.BiometricsDraft
	Start() error
	SubmitName(raw string) error
	SelectGoal(goal models.Goal) error
	SubmitBiometrics(draft onboarding.BiometricsDraft) error
	UploadPhoto(up onboarding.PhotoUpload) (*onboarding.PhotoTicket, error)
	PhotoStatus() onboarding.PhotoStatus
	SelectActivityLevel(level models.ActivityLevel) error
	SelectExperienceLevel(level models.ExperienceLevel) error
	SelectTrainingLocation(location models.TrainingLocation) error
	SelectPlan(plan models.SubscriptionPlan) error
	ConfirmAndEnterDashboard() error
	Summary() onboarding.Summary
}

type OnboardingHandler struct {
	flow onboardingFlow
}

func NewOnboardingHandler(flow onboardingFlow) *OnboardingHandler {
	return &OnboardingHandler{flow: flow}
}

type nameRequest struct {
	Name string `json:"name"`
}

type goalRequest struct {
	Goal models.Goal `json:"goal"`
}

type activityRequest struct {
	ActivityLevel models.ActivityLevel `json:"activity_level"`
}

type experienceRequest struct {
	ExperienceLevel models.ExperienceLevel `json:"experience_level"`
}

type locationRequest struct {
	TrainingLocation models.TrainingLocation `json:"training_location"`
}

type planRequest struct {
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan"`
}

// GetState returns the current step together with the profile so far and
// the last biometrics form input.
func (h *OnboardingHandler) GetState(c *fiber.Ctx) error {
	return h.respondState(c)
}

func (h *OnboardingHandler) Start(c *fiber.Ctx) error {
	if err := h.flow.Start(); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) SubmitName(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SubmitName(req.Name); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) SelectGoal(c *fiber.Ctx) error {
	var req goalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SelectGoal(req.Goal); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

// SubmitBiometrics takes the form fields as text so the exact input can be
// kept for a retry when it is refused.
func (h *OnboardingHandler) SubmitBiometrics(c *fiber.Ctx) error {
	var req onboarding.BiometricsDraft
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SubmitBiometrics(req); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

// UploadPhoto accepts the picture and decodes it in the background. The
// result is polled through GetPhotoStatus.
func (h *OnboardingHandler) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is empty"})
	}
	if fileHeader.Size > onboarding.MaxPhotoBytes {
		return respondError(c, onboarding.ErrPhotoTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open photo file"})
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, onboarding.MaxPhotoBytes+1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read photo file"})
	}

	ticket, err := h.flow.UploadPhoto(onboarding.PhotoUpload{
		Data:     data,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"upload_id": ticket.ID(),
		"state":     onboarding.PhotoPending,
	})
}

func (h *OnboardingHandler) GetPhotoStatus(c *fiber.Ctx) error {
	return c.JSON(h.flow.PhotoStatus())
}

func (h *OnboardingHandler) SelectActivityLevel(c *fiber.Ctx) error {
	var req activityRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SelectActivityLevel(req.ActivityLevel); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) SelectExperienceLevel(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SelectExperienceLevel(req.ExperienceLevel); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) SelectTrainingLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SelectTrainingLocation(req.TrainingLocation); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) SelectPlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.flow.SelectPlan(req.SubscriptionPlan); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) Confirm(c *fiber.Ctx) error {
	if err := h.flow.ConfirmAndEnterDashboard(); err != nil {
		return respondError(c, err)
	}
	return h.respondState(c)
}

func (h *OnboardingHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.flow.Summary())
}

func (h *OnboardingHandler) respondState(c *fiber.Ctx) error {
	state := h.flow.Snapshot()
	return c.JSON(fiber.Map{
		"step":      state.Step,
		"step_name": state.Step.String(),
		"profile":   state.Profile,
		"draft":     h.flow.Draft(),
	})
}
