package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// PaymentMode selects whether gateway calls hit the live provider or
// the in-process bypass used for staging and tests.
type PaymentMode string

const (
	PaymentModeLive   PaymentMode = "live"
	PaymentModeBypass PaymentMode = "bypass"
)

type AppConfig struct {
	Port              string        `env:"PORT,default=8080"`
	PaymentModeString string        `env:"PAYMENT_MODE,default=bypass"`
	PaymentMode       PaymentMode   `env:"-"`
	RequireOnboarding bool          `env:"REQUIRE_PAYEE_ONBOARDING,default=true"`
	AutoReleaseAfter  time.Duration `env:"AUTO_RELEASE_AFTER,default=48h"`
	CancelLockWindow  time.Duration `env:"CANCEL_LOCK_WINDOW,default=2h"`
	HourlyAuthBuffer  float64       `env:"HOURLY_AUTH_BUFFER,default=1.5"`
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL,default=5m"`
	NotifyMode        string        `env:"NOTIFY_MODE,default=log"`
	NotifySender      string        `env:"NOTIFY_SENDER,default=no-reply@hustlehub.app"`
	AWSRegion         string        `env:"AWS_REGION,default=us-east-1"`
}

func LoadAppConfig(ctx context.Context) (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	switch PaymentMode(cfg.PaymentModeString) {
	case PaymentModeLive, PaymentModeBypass:
		cfg.PaymentMode = PaymentMode(cfg.PaymentModeString)
	default:
		return nil, fmt.Errorf("PAYMENT_MODE must be %q or %q, got %q",
			PaymentModeLive, PaymentModeBypass, cfg.PaymentModeString)
	}

	if cfg.AutoReleaseAfter <= 0 {
		return nil, fmt.Errorf("AUTO_RELEASE_AFTER must be positive")
	}
	if cfg.CancelLockWindow < 0 {
		return nil, fmt.Errorf("CANCEL_LOCK_WINDOW must be non-negative")
	}
	if cfg.HourlyAuthBuffer < 1 {
		return nil, fmt.Errorf("HOURLY_AUTH_BUFFER must be at least 1")
	}
	if cfg.NotifyMode != "log" && cfg.NotifyMode != "ses" {
		return nil, fmt.Errorf("NOTIFY_MODE must be %q or %q, got %q", "log", "ses", cfg.NotifyMode)
	}

	return &cfg, nil
}
