package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates runtime configuration for the service. Non-secret
// values come from the YAML core configuration file; secrets come from the
// environment (optionally via a .env file).
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Email     EmailConfig
	Notify    NotifyConfig
	Turnstile TurnstileConfig
	Metrics   MetricsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name string
	Host string
	Port string
}

// StoreConfig holds the store file locations. All three are required.
type StoreConfig struct {
	TicketsFile   string
	EmployeesFile string
	CounterFile   string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session parameters. SessionSecret signs the session
// cookie and must be set in the environment.
type AuthConfig struct {
	SessionSecret   string
	SessionTTLHours int
	BcryptCost      int
}

// EmailConfig covers outbound SMTP and the inbound IMAP reply poller.
// Enabled is the single canonical flag gating both directions.
type EmailConfig struct {
	Enabled      bool
	Account      string
	Password     string
	IMAPServer   string
	SMTPServer   string
	SMTPPort     int
	PollInterval time.Duration
}

// ChannelConfig configures one chat webhook integration.
type ChannelConfig struct {
	Enabled    bool
	WebhookURL string
}

// NotifyConfig holds per-channel notification settings.
type NotifyConfig struct {
	BotName             string
	Discord             ChannelConfig
	Slack               ChannelConfig
	TimeoutSeconds      int
	TailscaleNotifyMail string
}

// TurnstileConfig controls CAPTCHA verification of public submissions.
type TurnstileConfig struct {
	Enabled   bool
	SiteKey   string
	SecretKey string
}

// MetricsConfig configures the monitoring side server.
type MetricsConfig struct {
	Port int
}

// Load reads the YAML core configuration named by CONFIG_PATH (default
// ./config.yaml) and overlays secrets from the environment. A missing
// config file or missing required secret is an operator error surfaced as a
// load failure, which the caller treats as fatal.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	v.SetDefault("app.name", "helpdesk")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("auth.session_ttl_hours", 12)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.poll_interval", "10m")
	v.SetDefault("notify.bot_name", "helpdesk-bot")
	v.SetDefault("notify.timeout_seconds", 5)
	v.SetDefault("turnstile.enabled", false)
	v.SetDefault("metrics.port", 9090)

	// Secrets and overrides bound from the environment; the viper key stays
	// the single source of truth for each value.
	_ = v.BindEnv("email.enabled", "HELPDESK_EMAIL_ENABLED")
	_ = v.BindEnv("email.password", "HELPDESK_EMAIL_PASSWORD")
	_ = v.BindEnv("auth.session_secret", "HELPDESK_SESSION_SECRET")
	_ = v.BindEnv("turnstile.secret_key", "HELPDESK_TURNSTILE_SECRET")
	_ = v.BindEnv("notify.tailscale_notify_email", "HELPDESK_TAILSCALE_NOTIFY_EMAIL")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Host: v.GetString("app.host"),
			Port: v.GetString("app.port"),
		},
		Store: StoreConfig{
			TicketsFile:   v.GetString("tickets_file"),
			EmployeesFile: v.GetString("employee_file"),
			CounterFile:   v.GetString("counter_file"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logging.level"),
		},
		Auth: AuthConfig{
			SessionSecret:   v.GetString("auth.session_secret"),
			SessionTTLHours: v.GetInt("auth.session_ttl_hours"),
			BcryptCost:      v.GetInt("auth.bcrypt_cost"),
		},
		Email: EmailConfig{
			Enabled:      v.GetBool("email.enabled"),
			Account:      v.GetString("email.account"),
			Password:     v.GetString("email.password"),
			IMAPServer:   v.GetString("email.imap_server"),
			SMTPServer:   v.GetString("email.smtp_server"),
			SMTPPort:     v.GetInt("email.smtp_port"),
			PollInterval: v.GetDuration("email.poll_interval"),
		},
		Notify: NotifyConfig{
			BotName: v.GetString("notify.bot_name"),
			Discord: ChannelConfig{
				Enabled:    v.GetBool("notify.discord.enabled"),
				WebhookURL: v.GetString("notify.discord.webhook_url"),
			},
			Slack: ChannelConfig{
				Enabled:    v.GetBool("notify.slack.enabled"),
				WebhookURL: v.GetString("notify.slack.webhook_url"),
			},
			TimeoutSeconds:      v.GetInt("notify.timeout_seconds"),
			TailscaleNotifyMail: v.GetString("notify.tailscale_notify_email"),
		},
		Turnstile: TurnstileConfig{
			Enabled:   v.GetBool("turnstile.enabled"),
			SiteKey:   v.GetString("turnstile.site_key"),
			SecretKey: v.GetString("turnstile.secret_key"),
		},
		Metrics: MetricsConfig{
			Port: v.GetInt("metrics.port"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Store.TicketsFile == "" || c.Store.EmployeesFile == "" {
		return errors.New("tickets_file and employee_file must be configured")
	}
	if c.Store.CounterFile == "" {
		return errors.New("counter_file must be configured")
	}
	if c.Auth.SessionSecret == "" {
		return errors.New("HELPDESK_SESSION_SECRET must be configured")
	}
	if c.Turnstile.Enabled && c.Turnstile.SecretKey == "" {
		return errors.New("HELPDESK_TURNSTILE_SECRET must be configured when turnstile is enabled")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// SessionTTL returns the bounded session lifetime.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// Timeout returns the per-channel delivery timeout.
func (n NotifyConfig) Timeout() time.Duration {
	if n.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(n.TimeoutSeconds) * time.Second
}
