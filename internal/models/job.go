package models

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

// VerificationCode is the typed value object holding one of the two
// handshake codes. It replaces the free-form requirements blob the
// legacy schema stuffed codes into.
type VerificationCode struct {
	Code        string     `gorm:"type:varchar(8)"`
	GeneratedAt *time.Time `gorm:""`
	UsedAt      *time.Time `gorm:""`
}

// Dispute is the per-job dispute record. While Open is true the
// auto-release sweep skips the job.
type Dispute struct {
	Open       bool       `gorm:"default:false;not null"`
	OpenedBy   uint       `gorm:""`
	Reason     string     `gorm:"type:text"`
	OpenedAt   *time.Time `gorm:""`
	ResolvedAt *time.Time `gorm:""`
}

type Job struct {
	ID         uint  `gorm:"primaryKey;autoIncrement"`
	CustomerID uint  `gorm:"not null;index"`
	HustlerID  *uint `gorm:"index"`

	Title       string `gorm:"type:varchar(255);not null"`
	Category    string `gorm:"type:varchar(64);not null"`
	Description string `gorm:"type:text"`

	Address   string   `gorm:"type:varchar(255);not null"`
	Latitude  *float64 `gorm:""`
	Longitude *float64 `gorm:""`

	ScheduledDate  time.Time  `gorm:"not null"`
	ScheduledStart time.Time  `gorm:"not null"`
	ScheduledEnd   *time.Time `gorm:""`

	PayType        string  `gorm:"type:varchar(16);not null"`
	Amount         float64 `gorm:"not null"`
	HourlyRate     float64 `gorm:"default:0"`
	EstimatedHours float64 `gorm:"default:0"`
	ActualHours    float64 `gorm:"default:0"`

	Status config.JobStatus `gorm:"type:varchar(32);not null;default:'OPEN';index"`

	StartCode      VerificationCode `gorm:"embedded;embeddedPrefix:start_code_"`
	CompletionCode VerificationCode `gorm:"embedded;embeddedPrefix:completion_code_"`
	Dispute        Dispute          `gorm:"embedded;embeddedPrefix:dispute_"`

	StartedAt   *time.Time `gorm:""`
	CompletedAt *time.Time `gorm:"index"`
	ConfirmedAt *time.Time `gorm:""`
	CancelledAt *time.Time `gorm:""`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
