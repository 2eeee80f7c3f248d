package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the application.
type Metrics struct {
	TicketsCreated *prometheus.CounterVec
	Notifications  *prometheus.CounterVec
	LoginAttempts  *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

// NewMetrics registers and returns the application collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TicketsCreated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_tickets_created_total",
			Help: "Total number of tickets created",
		}, []string{"source"}), // source: form, uptime-kuma, tailscale
		Notifications: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_notifications_total",
			Help: "Notification delivery attempts by channel and outcome",
		}, []string{"channel", "outcome"}), // outcome: sent, skipped, failed
		LoginAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_login_attempts_total",
			Help: "Technician login attempts by outcome",
		}, []string{"outcome"}), // outcome: success, migrated, failure
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_http_requests_total",
			Help: "HTTP requests by path, method and status",
		}, []string{"path", "method", "status"}),
	}
}

// RecordNotification counts one channel delivery attempt.
func (m *Metrics) RecordNotification(channel, outcome string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, outcome).Inc()
}

// RecordLogin counts one login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

// RecordTicketCreated counts one ticket creation.
func (m *Metrics) RecordTicketCreated(source string) {
	if m == nil {
		return
	}
	m.TicketsCreated.WithLabelValues(source).Inc()
}
