package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/api/http/handlers"
	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Jobs              *handlers.JobsHandler
	Resumes           *handlers.ResumesHandler
	CoverLetters      *handlers.CoverLettersHandler
	AI                *handlers.AIHandler
	Admin             *handlers.AdminHandler
	SessionMiddleware *auth.SessionMiddleware
	Cookies           *auth.CookieWriter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health/live", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Get("/csrf-token", cfg.Auth.CSRFToken)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", auth.CSRFGuard(cfg.Cookies), cfg.Auth.Login)

	// Everything below requires a verified session; state-changing verbs
	// additionally require the CSRF double-submit pair.
	protected := api.Group("", cfg.SessionMiddleware.Handle)
	protected.Post("/auth/logout", cfg.Auth.Logout)
	protected.Get("/auth/me", cfg.Auth.Me)

	protected.Get("/jobs", cfg.Jobs.List)
	protected.Post("/jobs", cfg.Jobs.Create)
	protected.Get("/jobs/:id", cfg.Jobs.Get)
	protected.Put("/jobs/:id", cfg.Jobs.Update)
	protected.Delete("/jobs/:id", cfg.Jobs.Delete)

	protected.Get("/resumes", cfg.Resumes.List)
	protected.Post("/resumes", cfg.Resumes.Create)
	protected.Get("/resumes/:id", cfg.Resumes.Get)
	protected.Put("/resumes/:id", cfg.Resumes.Update)
	protected.Delete("/resumes/:id", cfg.Resumes.Delete)

	protected.Get("/cover-letters", cfg.CoverLetters.List)
	protected.Post("/cover-letters", cfg.CoverLetters.Create)
	protected.Get("/cover-letters/:id", cfg.CoverLetters.Get)
	protected.Put("/cover-letters/:id", cfg.CoverLetters.Update)
	protected.Delete("/cover-letters/:id", cfg.CoverLetters.Delete)

	protected.Post("/ai/resume", cfg.AI.DraftResume)
	protected.Post("/ai/cover-letter", cfg.AI.DraftCoverLetter)

	protected.Get("/admin/metrics", auth.RequireRole(domain.RoleAdmin), cfg.Admin.Metrics)
}
