package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/notify"
)

// NotificationService bridges ticket events to the channel fan-out. It
// always reports success to the dispatcher; delivery problems stay inside
// the per-channel results.
type NotificationService struct {
	dispatcher events.Dispatcher
	notifier   *notify.Notifier
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifier *notify.Notifier, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketEvent)
}

func (n *NotificationService) handleTicketEvent(ctx context.Context, event events.Event) error {
	results := n.notifier.Notify(ctx, event)
	for channel, result := range results {
		n.logger.Debug("channel result",
			zap.String("channel", channel),
			zap.String("ticket_number", event.TicketNumber),
			zap.String("outcome", string(result.Outcome)),
			zap.String("reason", result.Reason))
	}
	return nil
}
