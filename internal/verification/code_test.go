package verification

import (
	"testing"
	"time"

	"github.com/hustlehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, length := range []int{StartCodeLength, CompletionCodeLength} {
		code, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestNewCode(t *testing.T) {
	now := time.Now()

	code, err := NewCode(StartCodeLength, now)
	require.NoError(t, err)

	assert.Len(t, code.Code, StartCodeLength)
	require.NotNil(t, code.GeneratedAt)
	assert.Equal(t, now, *code.GeneratedAt)
	assert.Nil(t, code.UsedAt)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234", "1234"},
		{"12-34", "1234"},
		{"12 34", "1234"},
		{" 1 2 3 4 ", "1234"},
		{"abcd", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestCheck(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		stored    models.VerificationCode
		submitted string
		want      Result
	}{
		{
			name:      "match",
			stored:    models.VerificationCode{Code: "1234", GeneratedAt: &now},
			submitted: "1234",
			want:      Match,
		},
		{
			name:      "match with separators",
			stored:    models.VerificationCode{Code: "1234", GeneratedAt: &now},
			submitted: "12-34",
			want:      Match,
		},
		{
			name:      "mismatch",
			stored:    models.VerificationCode{Code: "1234", GeneratedAt: &now},
			submitted: "9999",
			want:      Mismatch,
		},
		{
			name:      "not generated",
			stored:    models.VerificationCode{},
			submitted: "1234",
			want:      NotGenerated,
		},
		{
			name:      "already used",
			stored:    models.VerificationCode{Code: "1234", GeneratedAt: &now, UsedAt: &now},
			submitted: "1234",
			want:      AlreadyUsed,
		},
		{
			name:      "used beats mismatch",
			stored:    models.VerificationCode{Code: "1234", GeneratedAt: &now, UsedAt: &now},
			submitted: "0000",
			want:      AlreadyUsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.stored, tt.submitted))
		})
	}
}
