package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/gateway"
	"github.com/hustlehub/backend/internal/marketplace"
	"github.com/hustlehub/backend/internal/notify"
	"github.com/hustlehub/backend/internal/storage/postgres"
	"github.com/hustlehub/backend/middleware"
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

	if err := postgres.MigrateModels(db, postgres.AllModels()...); err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := postgres.NewStore(db)

	var gw gateway.Gateway
	switch appCfg.PaymentMode {
	case config.PaymentModeBypass:
		gw = gateway.NewBypassGateway()
	default:
		// The live provider adapter plugs in here once credentials
		// and webhooks are wired for the deployment.
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
	handler := marketplace.NewHandler(service)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler(logger))

	api := router.Group("/api/v1")
	api.Use(marketplace.RequireActor(store))
	handler.Routes(api)

	srv := &http.Server{
		Addr:    ":" + appCfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("api listening", slog.String("port", appCfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("shutdown complete")
}
