package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	JobID     uint      `gorm:"not null;index:idx_reviews_job_author,unique"`
	AuthorID  uint      `gorm:"not null;index:idx_reviews_job_author,unique"`
	SubjectID uint      `gorm:"not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
