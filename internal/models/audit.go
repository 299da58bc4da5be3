package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is append-only. Rows record privileged financial actions
// (refund, void) for after-the-fact reconciliation and are never
// updated or deleted.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	ActorID   uint           `gorm:"not null;index"`
	Action    string         `gorm:"type:varchar(32);not null"`
	Resource  string         `gorm:"type:varchar(64);not null"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}
