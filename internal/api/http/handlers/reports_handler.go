package handlers

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/report"
	"github.com/spec-kit/helpdesk/internal/service"
)

// ReportsHandler serves the technician reporting views and exports.
type ReportsHandler struct {
	tickets *service.TicketService
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(tickets *service.TicketService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{tickets: tickets, logger: logger, now: time.Now}
}

// Summary GET /reports.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	tickets, err := h.tickets.All()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report.BuildSummary(tickets, h.now(), h.logger)})
}

// ExportCSV GET /reports/export/csv.
func (h *ReportsHandler) ExportCSV(c *fiber.Ctx) error {
	tickets, err := h.tickets.All()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, tickets); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(buf.Bytes())
}

// ExportExcel GET /reports/export/excel.
func (h *ReportsHandler) ExportExcel(c *fiber.Ctx) error {
	tickets, err := h.tickets.All()
	if err != nil {
		return err
	}

	buf, err := report.GenerateExcel(tickets)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.xlsx"`)
	return c.Send(buf.Bytes())
}
