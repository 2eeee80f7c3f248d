package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
)

// RouteConfig wires the handlers onto the fiber app.
type RouteConfig struct {
	App     *fiber.App
	Guard   *auth.Middleware
	Tickets *handlers.TicketsHandler
	Auth    *handlers.AuthHandler
	Ingest  *handlers.IngestHandler
	Reports *handlers.ReportsHandler
	Health  *handlers.HealthHandler
}

// Setup registers all routes. Submission, login and the machine webhooks
// are public; everything else requires a technician session.
func (rc *RouteConfig) Setup() {
	rc.App.Get("/health/live", rc.Health.Live)
	rc.App.Get("/health/ready", rc.Health.Ready)

	rc.App.Post("/tickets", rc.Tickets.Submit)
	rc.App.Post("/login", rc.Auth.Login)
	rc.App.Get("/logout", rc.Auth.Logout)

	rc.App.Post("/api/uptime-kuma", rc.Ingest.UptimeKuma)
	rc.App.Post("/api/tailscale", rc.Ingest.Tailscale)

	protected := rc.App.Group("", rc.Guard.RequireTechnician)
	protected.Get("/dashboard", rc.Tickets.Dashboard)
	protected.Get("/ticket/:ticket_number", rc.Tickets.Get)
	protected.Post("/ticket/:ticket_number/update_status/:ticket_status", rc.Tickets.UpdateStatus)
	protected.Post("/ticket/:ticket_number/append_note", rc.Tickets.AppendNote)
	protected.Get("/reports", rc.Reports.Summary)
	protected.Get("/reports/export/csv", rc.Reports.ExportCSV)
	protected.Get("/reports/export/excel", rc.Reports.ExportExcel)
}
