package models

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

type Payment struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	JobID      uint `gorm:"not null;uniqueIndex"`
	CustomerID uint `gorm:"not null;index"`
	HustlerID  uint `gorm:"not null;index"`

	Amount      float64 `gorm:"not null"`
	Tip         float64 `gorm:"default:0"`
	FeeCustomer float64 `gorm:"default:0"`
	FeeHustler  float64 `gorm:"default:0"`
	Total       float64 `gorm:"not null"`

	// CapturedAmount is what actually moved at capture time; for
	// hourly jobs it can be below the authorized Total.
	CapturedAmount float64 `gorm:"default:0"`

	Status     config.PaymentStatus `gorm:"type:varchar(16);not null;index"`
	ProviderID string               `gorm:"type:varchar(128);not null"`

	RefundAmount float64 `gorm:"default:0"`
	RefundReason string  `gorm:"type:text"`
	ReceiptURL   string  `gorm:"type:varchar(512)"`

	// NeedsReconciliation is set when the job reached a terminal state
	// but the matching gateway call failed; ops resolves manually.
	NeedsReconciliation bool `gorm:"default:false;not null"`

	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
	CapturedAt *time.Time `gorm:""`
}
