package models

import "time"

// Thread is the per-job messaging channel between the two parties.
// Created on the first offer, visible once the job is assigned.
type Thread struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	JobID      uint      `gorm:"not null;uniqueIndex"`
	CustomerID uint      `gorm:"not null"`
	HustlerID  uint      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ThreadID  uint      `gorm:"not null;index"`
	SenderID  uint      `gorm:"not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
