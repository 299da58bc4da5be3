package models

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

type Payout struct {
	ID          uint                `gorm:"primaryKey;autoIncrement"`
	JobID       uint                `gorm:"not null;uniqueIndex"`
	HustlerID   uint                `gorm:"not null;index"`
	Amount      float64             `gorm:"not null"`
	PlatformFee float64             `gorm:"not null"`
	NetAmount   float64             `gorm:"not null"`
	Status      config.PayoutStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`
	ProviderID  string              `gorm:"type:varchar(128)"`
	CreatedAt   time.Time           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime"`
}
