package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/mail"
)

// StartReplyPoller runs the IMAP reply poller on a fixed interval until the
// context is canceled. One pass runs immediately on startup so a restart
// does not delay reply pickup by a full interval.
func StartReplyPoller(ctx context.Context, poller *mail.ReplyPoller, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	logger.Info("reply poller started", zap.Duration("interval", interval))
	poller.FetchReplies()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reply poller stopped")
			return
		case <-ticker.C:
			poller.FetchReplies()
		}
	}
}
