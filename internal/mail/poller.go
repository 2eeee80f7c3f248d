package mail

import (
	"io"
	"regexp"
	"strings"

	imap "github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	msgmail "github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

// ticketNumberPattern finds a ticket reference anywhere in a subject line,
// so reply prefixes like "Re:" or "FW:" don't matter. Matching ignores
// case.
var ticketNumberPattern = regexp.MustCompile(`(?i)TKT-\d{4}-\d+`)

// NoteAppender attaches an email reply body to a ticket as a note.
type NoteAppender interface {
	AppendEmailNote(ticketNumber, body string) error
}

// ReplyPoller scans the inbox for unseen replies and files them against
// their tickets. Everything here is best-effort: parse failures, unmatched
// subjects and delivery problems are logged (or silently skipped) and never
// propagate.
type ReplyPoller struct {
	cfg     config.EmailConfig
	tickets NoteAppender
	logger  *zap.Logger
}

// NewReplyPoller builds a poller.
func NewReplyPoller(cfg config.EmailConfig, tickets NoteAppender, logger *zap.Logger) *ReplyPoller {
	return &ReplyPoller{cfg: cfg, tickets: tickets, logger: logger}
}

// FetchReplies performs one inbox scan. Unseen messages whose subject
// carries a ticket number get their body appended to that ticket.
func (p *ReplyPoller) FetchReplies() {
	if !p.cfg.Enabled {
		p.logger.Debug("imap fetch skipped, email.enabled is false")
		return
	}

	addr := p.cfg.IMAPServer
	if !strings.Contains(addr, ":") {
		addr += ":993"
	}

	c, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		p.logger.Error("imap dial failed", zap.Error(err))
		return
	}
	defer func() { _ = c.Logout() }()

	if err := c.Login(p.cfg.Account, p.cfg.Password); err != nil {
		p.logger.Error("imap login failed", zap.Error(err))
		return
	}
	if _, err := c.Select("INBOX", false); err != nil {
		p.logger.Error("imap inbox select failed", zap.Error(err))
		return
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := c.Search(criteria)
	if err != nil {
		p.logger.Error("imap inbox search failed", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)
	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		p.handleMessage(body)
	}

	if err := <-done; err != nil {
		p.logger.Error("imap fetch failed", zap.Error(err))
	}
}

func (p *ReplyPoller) handleMessage(r io.Reader) {
	mr, err := msgmail.CreateReader(r)
	if err != nil {
		p.logger.Warn("failed to parse inbound email", zap.Error(err))
		return
	}

	subject, err := mr.Header.Subject()
	if err != nil {
		p.logger.Warn("failed to decode email subject", zap.Error(err))
		return
	}

	ticketNumber := MatchTicketNumber(subject)
	if ticketNumber == "" {
		return
	}

	body := extractBody(mr, p.logger)
	if body == "" {
		return
	}

	if err := p.tickets.AppendEmailNote(ticketNumber, body); err != nil {
		p.logger.Error("failed to append email reply",
			zap.String("ticket_number", ticketNumber),
			zap.Error(err))
		return
	}
	p.logger.Info("email reply filed against ticket", zap.String("ticket_number", ticketNumber))
}

// MatchTicketNumber extracts a normalized ticket number from a subject
// line, or "" when none is present.
func MatchTicketNumber(subject string) string {
	match := ticketNumberPattern.FindString(subject)
	if match == "" {
		return ""
	}
	return strings.ToUpper(match)
}

// extractBody prefers the text/plain part, falls back to text/html, and
// ignores attachments.
func extractBody(mr *msgmail.Reader, logger *zap.Logger) string {
	var plain, html string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("error reading email part", zap.Error(err))
			break
		}

		switch header := part.Header.(type) {
		case *msgmail.InlineHeader:
			contentType, _, typeErr := header.ContentType()
			if typeErr != nil {
				continue
			}
			data, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				logger.Warn("error decoding email part", zap.Error(readErr))
				continue
			}
			switch contentType {
			case "text/plain":
				if plain == "" {
					plain = string(data)
				}
			case "text/html":
				if html == "" {
					html = string(data)
				}
			}
		case *msgmail.AttachmentHeader:
			continue
		}
	}

	if body := strings.TrimSpace(plain); body != "" {
		return body
	}
	return strings.TrimSpace(html)
}
