package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the fixed format used for submission and closure
// timestamps in the store file. Timestamps are local time.
const TimestampLayout = "2006-01-02 15:04:05"

// TicketStatus enumerates lifecycle states for tickets. The canonical
// spellings below are what gets persisted; comparisons elsewhere are
// case-insensitive.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In-Progress"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ParseTicketStatus maps a raw value onto its canonical status, ignoring
// case. Unknown values return an error.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	for _, status := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed} {
		if strings.EqualFold(raw, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid ticket status %q", raw)
}

// Note is one entry in a ticket's note list. Technician notes are stored as
// plain JSON strings; notes appended from inbound email replies are stored
// as {"ticket_message": ...} objects. Both forms round-trip unchanged.
type Note struct {
	Message   string
	FromEmail bool
}

// NewNote builds a technician note.
func NewNote(message string) Note {
	return Note{Message: message}
}

// NewEmailNote builds a note originating from an inbound email reply.
func NewEmailNote(message string) Note {
	return Note{Message: message, FromEmail: true}
}

type wrappedNote struct {
	Message string `json:"ticket_message"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	if n.FromEmail {
		return json.Marshal(wrappedNote{Message: n.Message})
	}
	return json.Marshal(n.Message)
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		n.Message = plain
		n.FromEmail = false
		return nil
	}
	var wrapped wrappedNote
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("note is neither a string nor a message object: %w", err)
	}
	n.Message = wrapped.Message
	n.FromEmail = true
	return nil
}

// Ticket is a single support/incident/change record. The JSON field names
// are the on-disk schema of the ticket store file; ticket_number is assigned
// at creation and never changes.
type Ticket struct {
	TicketNumber   string       `json:"ticket_number"`
	RequestorName  string       `json:"requestor_name"`
	RequestorEmail string       `json:"requestor_email"`
	Subject        string       `json:"ticket_subject"`
	Message        string       `json:"ticket_message"`
	RequestType    string       `json:"request_type"`
	Impact         string       `json:"ticket_impact"`
	Urgency        string       `json:"ticket_urgency"`
	Status         TicketStatus `json:"ticket_status"`
	SubmissionDate string       `json:"submission_date"`
	Notes          []Note       `json:"ticket_notes"`
	ClosedBy       string       `json:"closed_by,omitempty"`
	ClosureDate    string       `json:"closure_date,omitempty"`
}

// IsClosed reports whether the ticket has reached its terminal state.
func (t *Ticket) IsClosed() bool {
	return strings.EqualFold(string(t.Status), string(TicketStatusClosed))
}

// SetStatus applies a status transition. Moving to Closed records the
// closing technician and a closure timestamp; any other transition leaves
// closure metadata untouched.
func (t *Ticket) SetStatus(status TicketStatus, technician string, now time.Time) {
	t.Status = status
	if status == TicketStatusClosed {
		t.ClosedBy = technician
		t.ClosureDate = now.Format(TimestampLayout)
	}
}

// AppendNote adds a note to the end of the ticket's note list.
func (t *Ticket) AppendNote(note Note) {
	t.Notes = append(t.Notes, note)
}
