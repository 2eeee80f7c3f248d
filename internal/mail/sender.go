package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

// Sender delivers outbound mail over SMTP with STARTTLS. Sending is gated
// by the global email flag: when disabled, Send is a logged no-op.
type Sender struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewSender builds a Sender.
func NewSender(cfg config.EmailConfig, logger *zap.Logger) *Sender {
	return &Sender{cfg: cfg, logger: logger}
}

// Send delivers one HTML message to a single recipient.
func (s *Sender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !s.cfg.Enabled {
		s.logger.Info("email skipped, email.enabled is false")
		return nil
	}

	client, err := gomail.NewClient(s.cfg.SMTPServer,
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Account),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Account); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	s.logger.Info("email sent", zap.String("to", to))
	return nil
}
