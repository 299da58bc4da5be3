package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/gateway"
	"github.com/hustlehub/backend/internal/marketplace"
	"github.com/hustlehub/backend/internal/notify"
	"github.com/hustlehub/backend/internal/storage/postgres"
	"github.com/hustlehub/backend/internal/sweeper"
	"github.com/lmittmann/tint"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	appCfg, err := config.LoadAppConfig(ctx)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		logger.Error("failed to load database config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := postgres.ConnectDB(dbCfg, logger)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := postgres.NewStore(db)

	var gw gateway.Gateway
	switch appCfg.PaymentMode {
	case config.PaymentModeBypass:
		gw = gateway.NewBypassGateway()
	default:
		logger.Error("live payment mode has no provider configured; set PAYMENT_MODE=bypass")
		os.Exit(1)
	}

	var notifier notify.Notifier
	if appCfg.NotifyMode == "ses" {
		notifier, err = notify.NewSESNotifier(ctx, appCfg.AWSRegion, appCfg.NotifySender)
		if err != nil {
			logger.Error("failed to init SES notifier", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	service := marketplace.NewService(store, gw, notifier, logger, marketplace.Config{
		RequireOnboarding: appCfg.RequireOnboarding,
		AutoReleaseAfter:  appCfg.AutoReleaseAfter,
		CancelLockWindow:  appCfg.CancelLockWindow,
		HourlyAuthBuffer:  appCfg.HourlyAuthBuffer,
	})

	sw := sweeper.New(service, appCfg.SweepInterval, logger)
	sw.Start()
	logger.Info("sweeper active", slog.Duration("interval", appCfg.SweepInterval))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	sw.Stop()
	logger.Info("shutdown complete")
}
