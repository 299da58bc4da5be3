package models

import "time"

// User carries the marketplace-facing profile the engine needs:
// which sides of the market the account may act on (enabled by an
// explicit action at signup, never auto-escalated on read) and the
// external payout destination for hustlers.
type User struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name             string    `gorm:"type:varchar(255);not null"`
	CanActAsCustomer bool      `gorm:"default:false;not null"`
	CanActAsHustler  bool      `gorm:"default:false;not null"`
	PayoutAccountID  string    `gorm:"type:varchar(128)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}
