package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saeid-a/FitJourney/internal/catalog"
	"github.com/saeid-a/FitJourney/internal/config"
	"github.com/saeid-a/FitJourney/internal/logging"
	"github.com/saeid-a/FitJourney/internal/middleware"
	"github.com/saeid-a/FitJourney/internal/onboarding"
	"github.com/saeid-a/FitJourney/internal/persistence"
	"github.com/saeid-a/FitJourney/internal/routes"
	feedws "github.com/saeid-a/FitJourney/internal/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Open Storage
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeStore()
	logger.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	// 3. Restore State
	gateway := persistence.NewGateway(store, cfg.StorageTimeout, logger)
	state := onboarding.Restore(ctx, gateway, logger)
	logger.Info("state restored",
		zap.Stringer("step", state.Step),
		zap.Int("posts", len(state.Posts)),
	)

	subscriber := persistence.NewSubscriber(gateway, logger)
	ctrl := onboarding.New(catalog.MustDefault(), state,
		onboarding.WithListener(subscriber),
	)
	defer ctrl.Close()

	hub := feedws.NewHub(ctrl, logger)
	ctrl.Subscribe(hub)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		BodyLimit:             onboarding.MaxPhotoBytes + 1024*1024,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, ctrl, hub); err != nil {
		logger.Fatal("Failed to register routes", zap.Error(err))
	}

	// 5. Start Server
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		subscriber.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	err = g.Wait()

	// Photo decodes may still land after the listener stopped.
	ctrl.Close()
	subscriber.Flush(context.Background())

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
