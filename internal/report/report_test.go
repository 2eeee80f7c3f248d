package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func ticketSubmittedDaysAgo(now time.Time, number string, days int, status domain.TicketStatus) domain.Ticket {
	return domain.Ticket{
		TicketNumber:   number,
		Subject:        "subject",
		Status:         status,
		SubmissionDate: now.AddDate(0, 0, -days).Format(domain.TimestampLayout),
	}
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		ticketSubmittedDaysAgo(now, "TKT-2025-0001", 1, domain.TicketStatusOpen),
		ticketSubmittedDaysAgo(now, "TKT-2025-0002", 10, domain.TicketStatusInProgress),
		ticketSubmittedDaysAgo(now, "TKT-2025-0003", 20, domain.TicketStatusClosed),
		ticketSubmittedDaysAgo(now, "TKT-2025-0004", 45, domain.TicketStatusClosed),
		ticketSubmittedDaysAgo(now, "TKT-2025-0005", 90, domain.TicketStatusOpen),
	}

	summary := BuildSummary(tickets, now, zaptest.NewLogger(t))

	assert.Equal(t, 5, summary.TotalTickets)
	assert.Equal(t, 2, summary.Open)
	assert.Equal(t, 1, summary.InProgress)
	assert.Equal(t, 2, summary.Closed)
	assert.Equal(t, 1, summary.Last7Days)
	assert.Equal(t, 2, summary.Last14Days)
	assert.Equal(t, 3, summary.Last30Days)
	assert.Equal(t, 4, summary.Last60Days)
}

func TestBuildSummarySkipsMalformedDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{TicketNumber: "TKT-2025-0001", Status: domain.TicketStatusOpen, SubmissionDate: "yesterday"},
	}

	summary := BuildSummary(tickets, now, zaptest.NewLogger(t))

	assert.Equal(t, 1, summary.TotalTickets)
	assert.Equal(t, 1, summary.Open)
	assert.Zero(t, summary.Last60Days)
}

func TestWriteCSV(t *testing.T) {
	tickets := []domain.Ticket{
		{
			TicketNumber:   "TKT-2025-0001",
			Subject:        "Printer offline",
			Status:         domain.TicketStatusClosed,
			SubmissionDate: "2025-03-14 09:30:00",
			ClosedBy:       "alice",
			ClosureDate:    "2025-03-14 11:00:00",
		},
		{
			TicketNumber:   "TKT-2025-0002",
			Subject:        "VPN access",
			Status:         domain.TicketStatusOpen,
			SubmissionDate: "2025-03-15 08:00:00",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tickets))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Ticket Number", "Subject", "Status", "Submission Date", "Closed By", "Closure Date"}, rows[0])
	assert.Equal(t, []string{"TKT-2025-0001", "Printer offline", "Closed", "2025-03-14 09:30:00", "alice", "2025-03-14 11:00:00"}, rows[1])
	assert.Equal(t, []string{"TKT-2025-0002", "VPN access", "Open", "2025-03-15 08:00:00", "", ""}, rows[2])
}

func TestGenerateExcel(t *testing.T) {
	tickets := []domain.Ticket{
		{TicketNumber: "TKT-2025-0001", Subject: "Printer offline", Status: domain.TicketStatusOpen, SubmissionDate: "2025-03-14 09:30:00"},
	}

	buf, err := GenerateExcel(tickets)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Tickets", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ticket Number", header)

	number, err := f.GetCellValue("Tickets", "A2")
	require.NoError(t, err)
	assert.Equal(t, "TKT-2025-0001", number)
}
