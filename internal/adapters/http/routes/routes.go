package routes

import (
	"log/slog"

	"willeasy/internal/adapters/http/handlers"
	"willeasy/internal/adapters/http/middleware"
	"willeasy/internal/config"
	"willeasy/internal/core/services"
	"willeasy/internal/pkg/idgen"
	"willeasy/internal/pkg/metrics"
	"willeasy/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
)

// Services are the long-lived services Setup builds; main starts and stops Cron
type Services struct {
	Accounts *services.AccountService
	Wills    *services.WillService
	Signup   *services.SignupService
	Sessions *services.SessionService
	Cron     *services.CronService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, storage *config.Storage, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Services {
	hasher := password.NewHasher(cfg.BcryptCost)

	// Initialize services
	accountService := services.NewAccountService(storage.Accounts, hasher, idgen.NewUUIDGenerator("user-"), m, logger)
	willService := services.NewWillService(storage.Wills, idgen.NewUUIDGenerator("will-"), m, logger)
	sessionService := services.NewSessionService(storage.Sessions, idgen.NewUUIDGenerator(""), cfg.JWT.Secret, cfg.JWT.SessionTTL, logger)
	otpService := services.NewOTPService(services.OTPConfig{
		Digits:      cfg.OTP.Digits,
		TTL:         cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
		FixedCode:   cfg.OTP.FixedCode,
	})
	signupService := services.NewSignupService(
		storage.Accounts,
		accountService,
		otpService,
		idgen.NewUUIDGenerator("signup-"),
		m,
		logger,
		cfg.OTP.ExposeCode,
	)
	cronService := services.NewCronService(sessionService, signupService, m, logger, cfg.PurgeSchedule)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, storage.DB)
	authHandler := handlers.NewAuthHandler(accountService, sessionService, cfg)
	signupHandler := handlers.NewSignupHandler(signupService, sessionService, cfg)
	willHandler := handlers.NewWillHandler(willService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, signupHandler, willHandler, sessionService, cfg)

	return &Services{
		Accounts: accountService,
		Wills:    willService,
		Signup:   signupService,
		Sessions: sessionService,
		Cron:     cronService,
	}
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	signupHandler *handlers.SignupHandler,
	willHandler *handlers.WillHandler,
	sessions services.SessionSlot,
	cfg *config.Config,
) {
	router.Get("/", healthHandler.APIInfo)

	requireAuth := middleware.AuthMiddleware(sessions)

	// Auth routes
	auth := router.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(cfg.RateLimit.Auth), authHandler.Login)
	auth.Post("/register", middleware.AuthRateLimiter(cfg.RateLimit.Auth), authHandler.Register)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", requireAuth, middleware.NoCacheHeaders(), authHandler.Me)

	// Signup wizard
	signup := router.Group("/signup", middleware.AuthRateLimiter(cfg.RateLimit.Auth))
	signup.Post("/start", signupHandler.Start)
	signup.Post("/verify", signupHandler.Verify)
	signup.Post("/complete", signupHandler.Complete)

	// Preparer routes
	wills := router.Group("/wills", requireAuth)
	wills.Get("/", middleware.NoCacheHeaders(), willHandler.ListMine)
	wills.Post("/", middleware.PreparerOnly(), willHandler.Create)

	// Administrator routes
	admin := router.Group("/admin", requireAuth, middleware.AdminOnly())
	admin.Get("/wills", middleware.NoCacheHeaders(), willHandler.ListAll)
	admin.Post("/wills/:id/status", willHandler.Advance)
}
