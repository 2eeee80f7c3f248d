package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a ticket event emitted by services. Both creation and
// status changes carry the same semantic content: the ticket number, its
// subject and the status the ticket now has.
type Event struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	TicketNumber   string    `json:"ticket_number"`
	Subject        string    `json:"subject"`
	Status         string    `json:"status"`
	RequestorEmail string    `json:"requestor_email,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// IsNewTicket reports whether the event announces a freshly created ticket.
func (e Event) IsNewTicket() bool {
	return e.Type == EventTicketCreated
}
