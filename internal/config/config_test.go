package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, cfg *AppConfig)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, PaymentModeBypass, cfg.PaymentMode)
				assert.True(t, cfg.RequireOnboarding)
				assert.Equal(t, 48*time.Hour, cfg.AutoReleaseAfter)
				assert.Equal(t, 2*time.Hour, cfg.CancelLockWindow)
				assert.Equal(t, 1.5, cfg.HourlyAuthBuffer)
				assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
				assert.Equal(t, "log", cfg.NotifyMode)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"PORT":               "9090",
				"PAYMENT_MODE":       "live",
				"AUTO_RELEASE_AFTER": "24h",
				"NOTIFY_MODE":        "ses",
			},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, PaymentModeLive, cfg.PaymentMode)
				assert.Equal(t, 24*time.Hour, cfg.AutoReleaseAfter)
				assert.Equal(t, "ses", cfg.NotifyMode)
			},
		},
		{
			name:        "invalid payment mode",
			env:         map[string]string{"PAYMENT_MODE": "stripe"},
			wantErr:     true,
			errContains: "PAYMENT_MODE",
		},
		{
			name:        "invalid notify mode",
			env:         map[string]string{"NOTIFY_MODE": "carrier-pigeon"},
			wantErr:     true,
			errContains: "NOTIFY_MODE",
		},
		{
			name:        "auto release must be positive",
			env:         map[string]string{"AUTO_RELEASE_AFTER": "-1h"},
			wantErr:     true,
			errContains: "AUTO_RELEASE_AFTER",
		},
		{
			name:        "hourly buffer below one",
			env:         map[string]string{"HOURLY_AUTH_BUFFER": "0.5"},
			wantErr:     true,
			errContains: "HOURLY_AUTH_BUFFER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadAppConfig(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}
