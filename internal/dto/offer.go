package dto

import (
	"time"

	"github.com/hustlehub/backend/internal/config"
)

type OfferCreateDTO struct {
	Note           string   `json:"note"`
	ProposedAmount *float64 `json:"proposed_amount,omitempty" validate:"omitempty,gt=0"`
}

type OfferDTO struct {
	ID             uint               `json:"id"`
	JobID          uint               `json:"job_id"`
	HustlerID      uint               `json:"hustler_id"`
	Note           string             `json:"note,omitempty"`
	ProposedAmount *float64           `json:"proposed_amount,omitempty"`
	Status         config.OfferStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}
