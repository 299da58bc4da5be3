package models

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

type Offer struct {
	ID             uint               `gorm:"primaryKey;autoIncrement"`
	JobID          uint               `gorm:"not null;index:idx_offers_job_hustler,unique,where:status = 'PENDING'"`
	HustlerID      uint               `gorm:"not null;index:idx_offers_job_hustler,unique,where:status = 'PENDING'"`
	Note           string             `gorm:"type:text"`
	ProposedAmount *float64           `gorm:""`
	Status         config.OfferStatus `gorm:"type:varchar(16);not null;default:'PENDING';index"`
	CreatedAt      time.Time          `gorm:"autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime"`
}
