package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/hours-bot/internal/config"
	"github.com/example/hours-bot/internal/conversation"
	httptransport "github.com/example/hours-bot/internal/http"
	"github.com/example/hours-bot/internal/logging"
	"github.com/example/hours-bot/internal/payroll"
	"github.com/example/hours-bot/internal/reminder"
	"github.com/example/hours-bot/internal/sheets"
	"github.com/example/hours-bot/internal/twilio"
)

func main() {
	logger := logging.New(slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	gateway, err := sheets.NewGateway(ctx, []byte(cfg.GoogleCredentials), cfg.SheetID, cfg.Worksheet, logger)
	if err != nil {
		logger.Error("failed to open spreadsheet", "error", err)
		os.Exit(1)
	}

	allowlist := map[string]conversation.Role{
		cfg.UserPhone: conversation.RoleStandard,
	}
	if cfg.AdminPhone != "" {
		allowlist[cfg.AdminPhone] = conversation.RoleAdmin
	}

	parser := payroll.NewParser(time.Now)
	controller := conversation.NewController(allowlist, parser, conversation.NewPendingStore(), gateway, logger)

	webhookMiddleware := []func(http.Handler) http.Handler{
		httptransport.Recoverer(logger),
	}
	if cfg.PublicURL != "" {
		webhookMiddleware = append(webhookMiddleware, httptransport.ValidateTwilioSignature(cfg.TwilioAuthToken, cfg.PublicURL, logger))
	} else {
		logger.Warn("HOURSBOT_PUBLIC_URL is unset, webhook signature validation disabled")
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Webhook:           httptransport.NewWebhookHandler(controller, logger),
		Health:            httptransport.NewHealthHandler(logger),
		WebhookMiddleware: webhookMiddleware,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	if cfg.ReminderTime != "" {
		messenger := twilio.NewMessenger(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioNumber, logger)
		nudge, err := reminder.New(messenger, cfg.UserPhone, cfg.ReminderTime, time.Now, logger)
		if err != nil {
			logger.Error("failed to configure reminder", "error", err)
			os.Exit(1)
		}
		go nudge.Run(ctx)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("hours bot listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
