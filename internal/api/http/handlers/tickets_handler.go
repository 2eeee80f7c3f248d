package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/captcha"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// TicketsHandler serves the public submission endpoint and the technician
// ticket operations.
type TicketsHandler struct {
	tickets  *service.TicketService
	verifier *captcha.Verifier
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *service.TicketService, verifier *captcha.Verifier) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, verifier: verifier}
}

// Submit POST /tickets. Open to anonymous requestors; once the store write
// succeeds the submission is reported as successful regardless of what
// happens to downstream notifications.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if h.verifier != nil && h.verifier.Enabled() {
		if err := h.verifier.Verify(c.UserContext(), req.TurnstileToken, c.IP()); err != nil {
			if errors.Is(err, captcha.ErrVerificationFailed) {
				return apperrors.NewValidationError("CAPTCHA verification failed. Please try again.", nil)
			}
			return err
		}
	}

	if strings.TrimSpace(req.RequestorName) == "" ||
		strings.TrimSpace(req.RequestorEmail) == "" ||
		strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("requestor_name, requestor_email, ticket_subject and ticket_message are required", nil)
	}

	ticket, err := h.tickets.Create(c.UserContext(), service.TicketSubmission{
		RequestorName:  req.RequestorName,
		RequestorEmail: req.RequestorEmail,
		Subject:        req.Subject,
		Message:        req.Message,
		RequestType:    req.RequestType,
		Impact:         req.Impact,
		Urgency:        req.Urgency,
	}, "form")
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"ticket":  ticket.TicketNumber,
		"message": fmt.Sprintf("Ticket %s has been submitted successfully!", ticket.TicketNumber),
	})
}

// Dashboard GET /dashboard. Lists every ticket that is not closed.
func (h *TicketsHandler) Dashboard(c *fiber.Ctx) error {
	technician, _ := auth.TechnicianFromContext(c)
	tickets, err := h.tickets.Dashboard()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets, "technician": technician})
}

// Get GET /ticket/:ticket_number.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.Params("ticket_number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// UpdateStatus POST /ticket/:ticket_number/update_status/:ticket_status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	technician, ok := auth.TechnicianFromContext(c)
	if !ok {
		return apperrors.NewForbidden("technician session required")
	}

	ticketNumber := c.Params("ticket_number")
	ticket, err := h.tickets.UpdateStatus(c.UserContext(), ticketNumber, c.Params("ticket_status"), technician)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Ticket %s updated to %s.", ticket.TicketNumber, ticket.Status),
	})
}

// AppendNote POST /ticket/:ticket_number/append_note.
func (h *TicketsHandler) AppendNote(c *fiber.Ctx) error {
	var req dto.AppendNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.tickets.AppendNote(c.Params("ticket_number"), req.NoteContent); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Note added successfully."})
}
