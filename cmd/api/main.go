package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/helpdesk/internal/api/http"
	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/captcha"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/mail"
	"github.com/spec-kit/helpdesk/internal/notify"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/store"
	"github.com/spec-kit/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New(store.Paths{
		Tickets:   cfg.Store.TicketsFile,
		Employees: cfg.Store.EmployeesFile,
		Counter:   cfg.Store.CounterFile,
	}, logger)

	// Load both collections once at startup so a misconfigured file path
	// fails the process immediately instead of on the first request.
	if _, err := st.Tickets(); err != nil {
		logger.Fatal("ticket store is not readable", zap.Error(err))
	}
	if _, err := st.Employees(); err != nil {
		logger.Fatal("employee store is not readable", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	go observability.StartMonitoringServer(ctx, logger, registry, cfg.Metrics.Port)

	dispatcher := events.NewInMemoryDispatcher()

	sender := mail.NewSender(cfg.Email, logger)
	webhookClient := &http.Client{Timeout: cfg.Notify.Timeout()}
	channels := []notify.Channel{
		notify.NewDiscordChannel(cfg.Notify.Discord, cfg.Notify.BotName, webhookClient),
		notify.NewSlackChannel(cfg.Notify.Slack, cfg.Notify.BotName, webhookClient),
		notify.NewEmailChannel(cfg.Email.Enabled, sender),
	}
	notifier := notify.NewNotifier(channels, cfg.Notify.Timeout(), logger, metrics)

	notificationService := service.NewNotificationService(dispatcher, notifier, logger)
	notificationService.RegisterHandlers()

	ticketService := service.NewTicketService(st, dispatcher, logger, metrics)
	authService := service.NewAuthService(cfg.Auth, st, logger, metrics)
	verifier := captcha.NewVerifier(cfg.Turnstile, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: apihttp.NewErrorHandler(logger),
	})
	apihttp.RegisterMiddlewares(app, logger, metrics)

	routes := apihttp.RouteConfig{
		App:     app,
		Guard:   auth.NewMiddleware(authService.SessionManager()),
		Tickets: handlers.NewTicketsHandler(ticketService, verifier),
		Auth:    handlers.NewAuthHandler(authService),
		Ingest:  handlers.NewIngestHandler(ticketService, cfg.Notify.TailscaleNotifyMail),
		Reports: handlers.NewReportsHandler(ticketService, logger),
		Health:  handlers.NewHealthHandler(st),
	}
	routes.Setup()

	if cfg.Email.Enabled {
		poller := mail.NewReplyPoller(cfg.Email, ticketService, logger)
		go worker.StartReplyPoller(ctx, poller, cfg.Email.PollInterval, logger)
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server failed to shutdown cleanly", zap.Error(err))
	}
}
