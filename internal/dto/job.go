package dto

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

type JobCreateDTO struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Category       string     `json:"category" validate:"required"`
	Description    string     `json:"description"`
	Address        string     `json:"address" validate:"required"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	ScheduledDate  time.Time  `json:"scheduled_date" validate:"required"`
	ScheduledStart time.Time  `json:"scheduled_start" validate:"required"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	PayType        string     `json:"pay_type" validate:"required"`
	Amount         float64    `json:"amount" validate:"gte=0"`
	HourlyRate     float64    `json:"hourly_rate" validate:"gte=0"`
	EstimatedHours float64    `json:"estimated_hours" validate:"gte=0"`
}

type JobListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Mine     bool   `form:"mine"`
}

type JobDTO struct {
	ID             uint             `json:"id"`
	CustomerID     uint             `json:"customer_id"`
	HustlerID      *uint            `json:"hustler_id,omitempty"`
	Title          string           `json:"title"`
	Category       string           `json:"category"`
	Description    string           `json:"description,omitempty"`
	Address        string           `json:"address"`
	ScheduledDate  time.Time        `json:"scheduled_date"`
	ScheduledStart time.Time        `json:"scheduled_start"`
	ScheduledEnd   *time.Time       `json:"scheduled_end,omitempty"`
	PayType        string           `json:"pay_type"`
	Amount         float64          `json:"amount"`
	HourlyRate     float64          `json:"hourly_rate,omitempty"`
	EstimatedHours float64          `json:"estimated_hours,omitempty"`
	ActualHours    float64          `json:"actual_hours,omitempty"`
	Status         config.JobStatus `json:"status"`

	// StartCode is present only for the customer; CompletionCode only
	// for the hustler. Each party discloses theirs in person.
	StartCode      string `json:"start_code,omitempty"`
	CompletionCode string `json:"completion_code,omitempty"`

	DisputeOpen bool `json:"dispute_open"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Payment *PaymentDTO `json:"payment,omitempty"`
}

type StartJobDTO struct {
	Code string `json:"code" validate:"required"`
}

type CompleteJobDTO struct {
	ActualHours float64 `json:"actual_hours" validate:"gte=0"`
}

type ConfirmJobDTO struct {
	Code string  `json:"code" validate:"required"`
	Tip  float64 `json:"tip" validate:"gte=0"`
}

type CancelJobDTO struct {
	Reason string `json:"reason"`
}

type ReportIssueDTO struct {
	Reason string `json:"reason" validate:"required"`
}
