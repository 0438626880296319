package routes

import (
	"time"

	"github.com/aokimura/coursenavi/internal/config"
	"github.com/aokimura/coursenavi/internal/handlers"
	"github.com/aokimura/coursenavi/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	reviewHandler *handlers.ReviewHandler,
	scheduleHandler *handlers.ScheduleHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Client startup configuration (public)
	api.Get("/config", settingsHandler.GetConfig)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/token", authHandler.TokenSignIn)

	// Protected routes (JWT required) - apply middleware per route so the
	// public catalog stays reachable without a token
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)
	api.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Catalog browsing (public)
	api.Get("/courses", catalogHandler.ListCourses)
	api.Get("/courses/:id", catalogHandler.GetCourse)
	api.Get("/professors", catalogHandler.ListProfessors)
	api.Get("/professors/:id", catalogHandler.GetProfessor)

	// Reviews (protected)
	api.Post("/reviews", middleware.JWTProtected(cfg), reviewHandler.Submit)
	api.Post("/reviews/:id/report", middleware.JWTProtected(cfg), reviewHandler.Report)

	// Weekly schedule (protected)
	api.Get("/schedule", middleware.JWTProtected(cfg), scheduleHandler.Get)
	api.Put("/schedule", middleware.JWTProtected(cfg), scheduleHandler.Save)
	api.Delete("/schedule", middleware.JWTProtected(cfg), scheduleHandler.Remove)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/courses", catalogHandler.CreateCourse)
	admin.Post("/professors", catalogHandler.CreateProfessor)
	admin.Post("/courses/:id/professors/:profId", catalogHandler.LinkProfessor)
	admin.Get("/reports", reviewHandler.ListReports)
	admin.Put("/reports/:id", reviewHandler.ActionReport)
	admin.Put("/config/:key", settingsHandler.SetKey)
	admin.Delete("/config/:key", settingsHandler.DeleteKey)
}
