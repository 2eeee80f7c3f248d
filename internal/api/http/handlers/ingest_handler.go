package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// IngestHandler turns machine webhooks into tickets. tailscaleEmail is the
// operator address notified about tailnet events; empty means no email
// notification for those tickets.
type IngestHandler struct {
	tickets        *service.TicketService
	tailscaleEmail string
}

// NewIngestHandler constructs the handler.
func NewIngestHandler(tickets *service.TicketService, tailscaleEmail string) *IngestHandler {
	return &IngestHandler{tickets: tickets, tailscaleEmail: tailscaleEmail}
}

// UptimeKuma POST /api/uptime-kuma. Heartbeat status 0 (DOWN) opens a
// high-severity incident, status 2 (PENDING) a medium one. Everything else
// is acknowledged and dropped so the monitor does not retry.
func (h *IngestHandler) UptimeKuma(c *fiber.Ctx) error {
	var payload dto.UptimeKumaPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if payload.Heartbeat.Status == nil {
		return apperrors.NewValidationError("heartbeat status is required", nil)
	}

	var impact, urgency, state string
	switch *payload.Heartbeat.Status {
	case 0:
		impact, urgency, state = "High", "High", "DOWN"
	case 2:
		impact, urgency, state = "Medium", "Medium", "PENDING"
	default:
		return c.JSON(fiber.Map{
			"status": "ignored",
			"reason": fmt.Sprintf("status %d not tracked", *payload.Heartbeat.Status),
		})
	}

	monitor := payload.Monitor.Name
	if monitor == "" {
		monitor = "Unknown monitor"
	}
	message := fmt.Sprintf("Monitor %s is %s.\nURL: %s\nDetails: %s",
		monitor, state, payload.Monitor.URL, payload.Heartbeat.Msg)

	ticket, err := h.tickets.Create(c.UserContext(), service.TicketSubmission{
		RequestorName:  "Uptime Kuma",
		RequestorEmail: "",
		Subject:        fmt.Sprintf("%s %s Incident: %s", impact, state, monitor),
		Message:        message,
		RequestType:    "Incident",
		Impact:         impact,
		Urgency:        urgency,
	}, "uptime-kuma")
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"ticket": ticket.TicketNumber,
	})
}

// Tailscale POST /api/tailscale. The raw event payload is preserved in the
// ticket body, pretty printed so a technician can read it.
func (h *IngestHandler) Tailscale(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return apperrors.NewValidationError("empty payload", nil)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	pretty, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.Create(c.UserContext(), service.TicketSubmission{
		RequestorName:  "Tailscale",
		RequestorEmail: h.tailscaleEmail,
		Subject:        "Tailscale Notification",
		Message:        string(pretty),
		RequestType:    "Change",
		Impact:         "Medium",
		Urgency:        "Medium",
	}, "tailscale")
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"ticket": ticket.TicketNumber,
	})
}
