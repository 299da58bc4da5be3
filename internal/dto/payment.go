package dto

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

type PaymentDTO struct {
	ID             uint                 `json:"id"`
	JobID          uint                 `json:"job_id"`
	Amount         float64              `json:"amount"`
	Tip            float64              `json:"tip,omitempty"`
	FeeCustomer    float64              `json:"fee_customer"`
	FeeHustler     float64              `json:"fee_hustler"`
	Total          float64              `json:"total"`
	CapturedAmount float64              `json:"captured_amount,omitempty"`
	Status         config.PaymentStatus `json:"status"`
	RefundAmount   float64              `json:"refund_amount,omitempty"`
	RefundReason   string               `json:"refund_reason,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	CapturedAt     *time.Time           `json:"captured_at,omitempty"`
}

type PayoutDTO struct {
	ID          uint                `json:"id"`
	JobID       uint                `json:"job_id"`
	HustlerID   uint                `json:"hustler_id"`
	Amount      float64             `json:"amount"`
	PlatformFee float64             `json:"platform_fee"`
	NetAmount   float64             `json:"net_amount"`
	Status      config.PayoutStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

type MessageCreateDTO struct {
	Body string `json:"body" validate:"required,max=4000"`
}

type MessageDTO struct {
	ID        uint      `json:"id"`
	ThreadID  uint      `json:"thread_id"`
	SenderID  uint      `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewCreateDTO struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type ReviewDTO struct {
	ID        uint      `json:"id"`
	JobID     uint      `json:"job_id"`
	AuthorID  uint      `json:"author_id"`
	SubjectID uint      `json:"subject_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
