package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"willeasy/internal/adapters/http/middleware"
	"willeasy/internal/adapters/http/routes"
	"willeasy/internal/config"
	"willeasy/internal/pkg/metrics"
	"willeasy/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	_ "willeasy/docs" // Swagger docs
)

// @title WillEasy API
// @version 1.0
// @description Will drafting service: accounts, signup with OTP, drafts and administrator review.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@willeasy.in

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	logger := newLogger(os.Getenv("APP_MODE"))

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Load configuration
	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}

	storage, err := config.OpenStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("close storage", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedFixtures {
		seeder := config.NewSeeder(storage.Accounts, storage.Wills, password.NewHasher(cfg.BcryptCost), logger)
		if err := seeder.Run(ctx); err != nil {
			logger.Warn("failed to seed fixtures", "error", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "WillEasy API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	svc := routes.Setup(app, storage, cfg, metrics.New(), logger)

	if err := svc.Cron.Start(); err != nil {
		return err
	}
	defer svc.Cron.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "mode", cfg.AppMode, "storage", cfg.StorageDriver)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}

func newLogger(mode string) *slog.Logger {
	if mode == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
