package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitJourney/internal/config"
	"github.com/saeid-a/FitJourney/internal/handlers"
	"github.com/saeid-a/FitJourney/internal/onboarding"
	feedws "github.com/saeid-a/FitJourney/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, ctrl *onboarding.Controller, hub *feedws.Hub) error {
	onboardingHandler := handlers.NewOnboardingHandler(ctrl)
	dashboardHandler := handlers.NewDashboardHandler(ctrl)
	communityHandler := handlers.NewCommunityHandler(ctrl)
	feedSocketHandler := handlers.NewFeedSocketHandler(hub, ctrl)

	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	v1 := app.Group("/api/v1")

	wizard := v1.Group("/onboarding")
	wizard.Get("", onboardingHandler.GetState)
	wizard.Post("/start", onboardingHandler.Start)
	wizard.Post("/name", onboardingHandler.SubmitName)
	wizard.Post("/goal", onboardingHandler.SelectGoal)
	wizard.Post("/biometrics", onboardingHandler.SubmitBiometrics)
	wizard.Post("/photo", onboardingHandler.UploadPhoto)
	wizard.Get("/photo", onboardingHandler.GetPhotoStatus)
	wizard.Post("/activity", onboardingHandler.SelectActivityLevel)
	wizard.Post("/experience", onboardingHandler.SelectExperienceLevel)
	wizard.Post("/location", onboardingHandler.SelectTrainingLocation)
	wizard.Post("/plan", onboardingHandler.SelectPlan)
	wizard.Post("/confirm", onboardingHandler.Confirm)
	wizard.Get("/summary", onboardingHandler.GetSummary)

	dashboard := v1.Group("/dashboard")
	dashboard.Get("", dashboardHandler.GetDashboard)
	dashboard.Post("/workouts/complete", dashboardHandler.CompleteWorkout)

	v1.Delete("/profile", dashboardHandler.ResetProfile)

	community := v1.Group("/community")
	community.Get("/posts", communityHandler.ListPosts)
	community.Post("/posts", communityHandler.SharePost)
	community.Post("/posts/:id/like", communityHandler.LikePost)

	v1.Use("/ws", feedSocketHandler.RequireUpgrade)
	v1.Get("/ws/community", websocket.New(feedSocketHandler.HandleWebSocket))

	return nil
}
