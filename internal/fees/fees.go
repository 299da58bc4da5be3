package fees

import (
	"math"

	"github.com/hustlehub/backend/common"
)

const (
	// PlatformRate is deducted from the hustler's side of the job amount.
	PlatformRate = 0.12
	// CustomerRate is added on top of the job amount at checkout.
	CustomerRate = 0.065
)

// Breakdown is the full fee split for one job amount. Tip passes
// through untouched and never enters the fee math.
type Breakdown struct {
	JobAmount     float64 `json:"job_amount"`
	PlatformFee   float64 `json:"platform_fee"`
	CustomerFee   float64 `json:"customer_fee"`
	HustlerPayout float64 `json:"hustler_payout"`
	Total         float64 `json:"total"`
	TipAmount     float64 `json:"tip_amount"`
}

// Calculate splits a job amount into platform fee, customer fee,
// hustler payout, and charge total. Each field is rounded half-up to
// two decimals independently from its own multiplication so rounding
// drift never accumulates across fields.
func Calculate(jobAmount float64, tipAmount float64) (Breakdown, error) {
	if math.IsNaN(jobAmount) || math.IsInf(jobAmount, 0) {
		return Breakdown{}, common.Validationf("job amount must be a number")
	}
	if jobAmount < 0 {
		return Breakdown{}, common.Validationf("job amount must not be negative")
	}
	if math.IsNaN(tipAmount) || math.IsInf(tipAmount, 0) || tipAmount < 0 {
		return Breakdown{}, common.Validationf("tip amount must be a non-negative number")
	}

	return Breakdown{
		JobAmount:     Round2(jobAmount),
		PlatformFee:   Round2(jobAmount * PlatformRate),
		CustomerFee:   Round2(jobAmount * CustomerRate),
		HustlerPayout: Round2(jobAmount - Round2(jobAmount*PlatformRate)),
		Total:         Round2(jobAmount + Round2(jobAmount*CustomerRate)),
		TipAmount:     Round2(tipAmount),
	}, nil
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ToCents converts a dollar amount to integer minor units for the
// gateway, which only speaks cents.
func ToCents(v float64) int64 {
	return int64(math.Floor(v*100 + 0.5))
}
