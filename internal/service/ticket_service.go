package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/store"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// TicketSubmission carries the fields of a new ticket request, whether it
// came from the public form or a webhook integration.
type TicketSubmission struct {
	RequestorName  string
	RequestorEmail string
	Subject        string
	Message        string
	RequestType    string
	Impact         string
	Urgency        string
}

// TicketService implements ticket creation and mutation over the record
// store. Every operation is a fresh load, in-memory mutation and full save;
// events are published only after the store write succeeded, and their
// delivery never affects the outcome of the operation itself.
type TicketService struct {
	store      *store.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewTicketService builds the service.
func NewTicketService(st *store.Store, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *TicketService {
	return &TicketService{
		store:      st,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Create allocates a ticket number, persists the new ticket and announces
// it. source labels where the submission came from (form, uptime-kuma,
// tailscale).
func (s *TicketService) Create(ctx context.Context, submission TicketSubmission, source string) (*domain.Ticket, error) {
	now := s.now()
	number, err := s.store.NextTicketNumber(now)
	if err != nil {
		return nil, err
	}

	ticket := domain.Ticket{
		TicketNumber:   number,
		RequestorName:  submission.RequestorName,
		RequestorEmail: submission.RequestorEmail,
		Subject:        submission.Subject,
		Message:        submission.Message,
		RequestType:    submission.RequestType,
		Impact:         submission.Impact,
		Urgency:        submission.Urgency,
		Status:         domain.TicketStatusOpen,
		SubmissionDate: now.Format(domain.TimestampLayout),
		Notes:          []domain.Note{},
	}

	err = s.store.UpdateTickets(func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		return append(tickets, ticket), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_number", number),
		zap.String("source", source))
	s.metrics.RecordTicketCreated(source)

	s.publish(ctx, events.EventTicketCreated, &ticket)
	return &ticket, nil
}

// Dashboard returns every ticket that is not closed.
func (s *TicketService) Dashboard() ([]domain.Ticket, error) {
	tickets, err := s.store.Tickets()
	if err != nil {
		return nil, err
	}
	open := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if !ticket.IsClosed() {
			open = append(open, ticket)
		}
	}
	return open, nil
}

// All returns the full ticket collection.
func (s *TicketService) All() ([]domain.Ticket, error) {
	return s.store.Tickets()
}

// Get returns one ticket by number.
func (s *TicketService) Get(ticketNumber string) (*domain.Ticket, error) {
	tickets, err := s.store.Tickets()
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].TicketNumber == ticketNumber {
			return &tickets[i], nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
}

// AppendNote adds a technician note to a ticket.
func (s *TicketService) AppendNote(ticketNumber, note string) error {
	if note == "" {
		return apperrors.NewValidationError("note contents cannot be empty", nil)
	}

	found := false
	err := s.store.UpdateTickets(func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		for i := range tickets {
			if tickets[i].TicketNumber == ticketNumber {
				tickets[i].AppendNote(domain.NewNote(note))
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return tickets, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("note appended", zap.String("ticket_number", ticketNumber))
	return nil
}

// AppendEmailNote files an inbound email reply as a note. A reply against
// an unknown ticket number is dropped without error; reply matching is
// best-effort.
func (s *TicketService) AppendEmailNote(ticketNumber, body string) error {
	matched := false
	err := s.store.UpdateTickets(func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		for i := range tickets {
			if tickets[i].TicketNumber == ticketNumber {
				tickets[i].AppendNote(domain.NewEmailNote(body))
				matched = true
				break
			}
		}
		return tickets, nil
	})
	if err != nil {
		return err
	}
	if !matched {
		s.logger.Debug("email reply did not match any ticket", zap.String("ticket_number", ticketNumber))
	}
	return nil
}

// UpdateStatus transitions a ticket to a new status. Invalid status values
// are rejected before any mutation; closing records the technician and a
// closure timestamp.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketNumber, rawStatus, technician string) (*domain.Ticket, error) {
	status, err := domain.ParseTicketStatus(rawStatus)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": rawStatus})
	}

	var updated domain.Ticket
	err = s.store.UpdateTickets(func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		for i := range tickets {
			if tickets[i].TicketNumber == ticketNumber {
				tickets[i].SetStatus(status, technician, s.now())
				updated = tickets[i]
				return tickets, nil
			}
		}
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket status updated",
		zap.String("ticket_number", ticketNumber),
		zap.String("status", string(status)),
		zap.String("technician", technician))

	s.publish(ctx, events.EventTicketStatusChanged, &updated)
	return &updated, nil
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, ticket *domain.Ticket) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		TicketNumber:   ticket.TicketNumber,
		Subject:        ticket.Subject,
		Status:         string(ticket.Status),
		RequestorEmail: ticket.RequestorEmail,
		Timestamp:      s.now(),
	})
}
