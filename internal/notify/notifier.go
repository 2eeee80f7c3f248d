package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
)

// Notifier fans a ticket event out to every configured channel. Channels
// fail independently: one channel's timeout, connection error or bad
// response is logged and recorded in the result map without touching the
// other channels, and Notify itself never returns an error. Callers treat
// delivery as best-effort and never roll back the ticket write that
// triggered it.
type Notifier struct {
	channels []Channel
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewNotifier builds the fan-out dispatcher over a fixed channel list.
func NewNotifier(channels []Channel, timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{channels: channels, timeout: timeout, logger: logger, metrics: metrics}
}

// Notify attempts delivery of the event on every enabled channel and
// returns the per-channel results.
func (n *Notifier) Notify(ctx context.Context, event events.Event) map[string]Result {
	results := make(map[string]Result, len(n.channels))

	for _, channel := range n.channels {
		name := channel.Name()

		if !channel.Enabled() {
			n.logger.Debug("channel disabled, skipping",
				zap.String("channel", name),
				zap.String("ticket_number", event.TicketNumber))
			results[name] = Result{Outcome: OutcomeSkipped, Reason: "disabled"}
			n.metrics.RecordNotification(name, string(OutcomeSkipped))
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
		err := channel.Send(sendCtx, event)
		cancel()

		switch {
		case err == nil:
			n.logger.Info("notification sent",
				zap.String("channel", name),
				zap.String("ticket_number", event.TicketNumber))
			results[name] = Result{Outcome: OutcomeSent}
			n.metrics.RecordNotification(name, string(OutcomeSent))
		case errors.Is(err, ErrNotConfigured):
			n.logger.Warn("channel enabled but not configured, skipping",
				zap.String("channel", name),
				zap.String("ticket_number", event.TicketNumber))
			results[name] = Result{Outcome: OutcomeSkipped, Reason: "not configured"}
			n.metrics.RecordNotification(name, string(OutcomeSkipped))
		default:
			n.logger.Error("notification delivery failed",
				zap.String("channel", name),
				zap.String("ticket_number", event.TicketNumber),
				zap.Error(err))
			results[name] = Result{Outcome: OutcomeFailed, Reason: err.Error()}
			n.metrics.RecordNotification(name, string(OutcomeFailed))
		}
	}

	return results
}
