package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
)

const (
	discordColorNew    = 0x58B9FF
	discordColorUpdate = 0xFFFF00
)

type discordEmbed struct {
	Title string `json:"title"`
	Color int    `json:"color"`
}

type discordPayload struct {
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

// DiscordChannel posts rich embeds to a Discord webhook.
type DiscordChannel struct {
	cfg     config.ChannelConfig
	botName string
	client  *http.Client
}

// NewDiscordChannel builds the channel.
func NewDiscordChannel(cfg config.ChannelConfig, botName string, client *http.Client) *DiscordChannel {
	if client == nil {
		client = http.DefaultClient
	}
	return &DiscordChannel{cfg: cfg, botName: botName, client: client}
}

func (d *DiscordChannel) Name() string { return "discord" }

func (d *DiscordChannel) Enabled() bool { return d.cfg.Enabled }

// Send delivers one ticket event. New tickets and updates get visually
// distinct embed colors.
func (d *DiscordChannel) Send(ctx context.Context, event events.Event) error {
	if d.cfg.WebhookURL == "" {
		return ErrNotConfigured
	}

	title := fmt.Sprintf("Ticket %s updated — Status: %s", event.TicketNumber, event.Status)
	color := discordColorUpdate
	if event.IsNewTicket() {
		title = fmt.Sprintf("New Ticket %s — %s", event.TicketNumber, event.Subject)
		color = discordColorNew
	}

	payload := discordPayload{
		Username: d.botName,
		Embeds:   []discordEmbed{{Title: title, Color: color}},
	}
	return postJSON(ctx, d.client, d.cfg.WebhookURL, payload)
}
