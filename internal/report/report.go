package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// Summary aggregates ticket counts by status and by trailing submission
// window.
type Summary struct {
	TotalTickets int `json:"total_tickets"`
	Open         int `json:"open_tickets"`
	InProgress   int `json:"in_progress_tickets"`
	Closed       int `json:"closed_tickets"`
	Last7Days    int `json:"last_7_days"`
	Last14Days   int `json:"last_14_days"`
	Last30Days   int `json:"last_30_days"`
	Last60Days   int `json:"last_60_days"`
}

// BuildSummary computes the dashboard report. Tickets with malformed
// submission timestamps still count toward status totals but are left out
// of the time buckets.
func BuildSummary(tickets []domain.Ticket, now time.Time, logger *zap.Logger) Summary {
	summary := Summary{TotalTickets: len(tickets)}

	for _, ticket := range tickets {
		switch ticket.Status {
		case domain.TicketStatusOpen:
			summary.Open++
		case domain.TicketStatusInProgress:
			summary.InProgress++
		case domain.TicketStatusClosed:
			summary.Closed++
		}

		submittedAt, err := time.ParseInLocation(domain.TimestampLayout, ticket.SubmissionDate, now.Location())
		if err != nil {
			logger.Warn("invalid submission_date on ticket", zap.String("ticket_number", ticket.TicketNumber))
			continue
		}
		age := now.Sub(submittedAt)
		if age <= 60*24*time.Hour {
			summary.Last60Days++
		}
		if age <= 30*24*time.Hour {
			summary.Last30Days++
		}
		if age <= 14*24*time.Hour {
			summary.Last14Days++
		}
		if age <= 7*24*time.Hour {
			summary.Last7Days++
		}
	}

	return summary
}

var exportHeader = []string{
	"Ticket Number",
	"Subject",
	"Status",
	"Submission Date",
	"Closed By",
	"Closure Date",
}

// WriteCSV streams the full ticket collection as CSV.
func WriteCSV(w io.Writer, tickets []domain.Ticket) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, ticket := range tickets {
		row := []string{
			ticket.TicketNumber,
			ticket.Subject,
			string(ticket.Status),
			ticket.SubmissionDate,
			ticket.ClosedBy,
			ticket.ClosureDate,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

const excelSheet = "Tickets"

// GenerateExcel renders the ticket collection as an xlsx workbook.
func GenerateExcel(tickets []domain.Ticket) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, title := range exportHeader {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return nil, fmt.Errorf("header cell name: %w", cellErr)
		}
		if err := f.SetCellValue(excelSheet, cell, title); err != nil {
			return nil, fmt.Errorf("set header cell: %w", err)
		}
		if err := f.SetCellStyle(excelSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header cell: %w", err)
		}
	}

	for i, ticket := range tickets {
		values := []string{
			ticket.TicketNumber,
			ticket.Subject,
			string(ticket.Status),
			ticket.SubmissionDate,
			ticket.ClosedBy,
			ticket.ClosureDate,
		}
		for col, value := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, i+2)
			if cellErr != nil {
				return nil, fmt.Errorf("row cell name: %w", cellErr)
			}
			if err := f.SetCellValue(excelSheet, cell, value); err != nil {
				return nil, fmt.Errorf("set row cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
