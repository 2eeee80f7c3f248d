package notify

import (
	"context"
	"fmt"

	"github.com/spec-kit/helpdesk/internal/events"
)

// Mailer sends one outbound message. Implemented by internal/mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// EmailChannel emails the ticket requestor about ticket events. The subject
// embeds the ticket number so inbound replies can be matched back to the
// ticket.
type EmailChannel struct {
	enabled bool
	mailer  Mailer
}

// NewEmailChannel builds the channel. A nil mailer leaves the channel
// unconfigured regardless of the flag.
func NewEmailChannel(enabled bool, mailer Mailer) *EmailChannel {
	return &EmailChannel{enabled: enabled, mailer: mailer}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Enabled() bool { return e.enabled }

// Send delivers one ticket event to the requestor.
func (e *EmailChannel) Send(ctx context.Context, event events.Event) error {
	if e.mailer == nil || event.RequestorEmail == "" {
		return ErrNotConfigured
	}

	subject := fmt.Sprintf("%s - %s", event.TicketNumber, event.Subject)
	var body string
	if event.IsNewTicket() {
		body = fmt.Sprintf(
			"<p>Your ticket <strong>%s</strong> has been received.</p><p>Subject: %s</p><p>Reply to this email to add a note to your ticket.</p>",
			event.TicketNumber, event.Subject)
	} else {
		body = fmt.Sprintf(
			"<p>Your ticket <strong>%s</strong> has changed status to <strong>%s</strong>.</p><p>Subject: %s</p>",
			event.TicketNumber, event.Status, event.Subject)
	}
	return e.mailer.Send(ctx, event.RequestorEmail, subject, body)
}
