package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		jobAmount   float64
		tipAmount   float64
		want        Breakdown
		wantErr     bool
		errContains string
	}{
		{
			name:      "flat 100 dollar job",
			jobAmount: 100,
			want: Breakdown{
				JobAmount:     100.00,
				PlatformFee:   12.00,
				CustomerFee:   6.50,
				HustlerPayout: 88.00,
				Total:         106.50,
			},
		},
		{
			name:      "odd amount rounds each field independently",
			jobAmount: 33.33,
			want: Breakdown{
				JobAmount:     33.33,
				PlatformFee:   4.00,  // 3.9996 rounds half-up
				CustomerFee:   2.17,  // 2.16645
				HustlerPayout: 29.33, // 33.33 - 4.00
				Total:         35.50, // 33.33 + 2.17
			},
		},
		{
			name:      "tip passes through untouched",
			jobAmount: 50,
			tipAmount: 10,
			want: Breakdown{
				JobAmount:     50.00,
				PlatformFee:   6.00,
				CustomerFee:   3.25,
				HustlerPayout: 44.00,
				Total:         53.25,
				TipAmount:     10.00,
			},
		},
		{
			name:      "zero amount is allowed",
			jobAmount: 0,
			want:      Breakdown{},
		},
		{
			name:        "negative amount rejected",
			jobAmount:   -5,
			wantErr:     true,
			errContains: "must not be negative",
		},
		{
			name:        "NaN amount rejected",
			jobAmount:   math.NaN(),
			wantErr:     true,
			errContains: "must be a number",
		},
		{
			name:        "infinite amount rejected",
			jobAmount:   math.Inf(1),
			wantErr:     true,
			errContains: "must be a number",
		},
		{
			name:        "negative tip rejected",
			jobAmount:   100,
			tipAmount:   -1,
			wantErr:     true,
			errContains: "tip amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.jobAmount, tt.tipAmount)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Payout plus platform fee must reconstruct the job amount exactly;
// total minus customer fee likewise. Checked over a spread of awkward
// amounts since each field rounds independently.
func TestCalculate_SplitsReconcile(t *testing.T) {
	amounts := []float64{0.01, 0.99, 1, 19.99, 33.33, 66.67, 100, 123.45, 9999.99}

	for _, amount := range amounts {
		b, err := Calculate(amount, 0)
		require.NoError(t, err)

		assert.InDelta(t, b.JobAmount, b.HustlerPayout+b.PlatformFee, 0.001,
			"payout+fee must equal job amount for %v", amount)
		assert.InDelta(t, b.JobAmount, b.Total-b.CustomerFee, 0.001,
			"total-customer fee must equal job amount for %v", amount)
		assert.GreaterOrEqual(t, b.HustlerPayout, 0.0)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.9996, 4.00}, // 33.33 * 0.12
		{2.16645, 2.17},
		{12.004, 12.00},
		{12.006, 12.01},
		{0, 0},
		{99.999, 100.00},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(10650), ToCents(106.50))
	assert.Equal(t, int64(1), ToCents(0.01))
	assert.Equal(t, int64(0), ToCents(0))
	// 19.99 is not exactly representable; the half-up floor keeps it
	// from truncating to 1998.
	assert.Equal(t, int64(1999), ToCents(19.99))
}
