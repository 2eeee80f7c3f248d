package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
)

const (
	slackColorNew    = "#58B9FF"
	slackColorUpdate = "#FFFF00"
)

type slackAttachment struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type slackPayload struct {
	Username    string            `json:"username"`
	Attachments []slackAttachment `json:"attachments"`
}

// SlackChannel posts attachment messages to a Slack incoming webhook.
type SlackChannel struct {
	cfg     config.ChannelConfig
	botName string
	client  *http.Client
}

// NewSlackChannel builds the channel.
func NewSlackChannel(cfg config.ChannelConfig, botName string, client *http.Client) *SlackChannel {
	if client == nil {
		client = http.DefaultClient
	}
	return &SlackChannel{cfg: cfg, botName: botName, client: client}
}

func (s *SlackChannel) Name() string { return "slack" }

func (s *SlackChannel) Enabled() bool { return s.cfg.Enabled }

// Send delivers one ticket event.
func (s *SlackChannel) Send(ctx context.Context, event events.Event) error {
	if s.cfg.WebhookURL == "" {
		return ErrNotConfigured
	}

	title := fmt.Sprintf("Ticket %s updated — Status: %s", event.TicketNumber, event.Status)
	color := slackColorUpdate
	if event.IsNewTicket() {
		title = fmt.Sprintf("New Ticket %s: %s", event.TicketNumber, event.Subject)
		color = slackColorNew
	}

	payload := slackPayload{
		Username:    s.botName,
		Attachments: []slackAttachment{{Title: title, Color: color}},
	}
	return postJSON(ctx, s.client, s.cfg.WebhookURL, payload)
}
