package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirebridge/placement-service/internal/api/http/handlers"
	"github.com/hirebridge/placement-service/internal/auth"
	"github.com/hirebridge/placement-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Partner        *handlers.PartnerHandler
	Company        *handlers.CompanyHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	partner := app.Group("/partner", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePartner))
	partner.Get("/jobs", cfg.Partner.ListJobs)
	partner.Get("/jobs/:id", cfg.Partner.GetJob)
	partner.Post("/candidates", cfg.Partner.SubmitCandidate)
	partner.Get("/candidates", cfg.Partner.ListCandidates)
	partner.Get("/candidates/:id", cfg.Partner.GetCandidate)
	partner.Get("/candidates/:id/notes", cfg.Partner.ListCandidateNotes)
	partner.Get("/payouts", cfg.Partner.ListPayouts)
	partner.Get("/payouts/:id", cfg.Partner.GetPayout)

	company := app.Group("/company", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCompany))
	company.Post("/jobs", cfg.Company.CreateJob)
	company.Get("/jobs", cfg.Company.ListJobs)
	company.Get("/jobs/:id", cfg.Company.GetJob)
	company.Post("/jobs/:id/activate", cfg.Company.ActivateJob)
	company.Post("/jobs/:id/pause", cfg.Company.PauseJob)
	company.Post("/jobs/:id/close", cfg.Company.CloseJob)
	company.Get("/candidates", cfg.Company.ListCandidates)
	company.Get("/candidates/:id", cfg.Company.GetCandidate)
	company.Patch("/candidates/:id/status", cfg.Company.UpdateCandidateStatus)
	company.Post("/candidates/:id/interviews", cfg.Company.ScheduleInterview)
	company.Patch("/candidates/:id/interviews/:interviewId", cfg.Company.RecordInterviewFeedback)
	company.Post("/candidates/:id/offer", cfg.Company.MakeOffer)
	company.Post("/candidates/:id/offer/response", cfg.Company.RespondToOffer)
	company.Post("/candidates/:id/joining", cfg.Company.ConfirmJoining)
	company.Post("/candidates/:id/notes", cfg.Company.AddNote)
	company.Get("/candidates/:id/notes", cfg.Company.ListCandidateNotes)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/candidates", cfg.Admin.ListCandidates)
	admin.Get("/candidates/:id", cfg.Admin.GetCandidate)
	admin.Put("/candidates/:id/status", cfg.Admin.ForceCandidateStatus)
	admin.Get("/payouts", cfg.Admin.ListPayouts)
	admin.Post("/payouts/:id/approve", cfg.Admin.ApprovePayout)
	admin.Post("/payouts/:id/process", cfg.Admin.ProcessPayout)
	admin.Post("/payouts/:id/hold", cfg.Admin.HoldPayout)
	admin.Post("/payouts/:id/reject", cfg.Admin.RejectPayout)
	admin.Post("/payouts/:id/complete", cfg.Admin.CompletePayout)
}
