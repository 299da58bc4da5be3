// Package verification implements the two handshake codes of the job
// lifecycle: the 4-digit start code the customer reads to the hustler
// on site, and the 6-digit completion code the hustler hands back when
// the work is done.
package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hustlehub/backend/internal/models"
)

const (
	StartCodeLength      = 4
	CompletionCodeLength = 6
)

// Generate returns a uniform random numeric string of the given width.
// Leading zeros are allowed; "0042" is a valid 4-digit code.
func Generate(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}

// NewCode generates a fresh unused code value object.
func NewCode(length int, now time.Time) (models.VerificationCode, error) {
	code, err := Generate(length)
	if err != nil {
		return models.VerificationCode{}, err
	}
	return models.VerificationCode{Code: code, GeneratedAt: &now}, nil
}

// Normalize strips everything but digits so "12-34" and "12 34" both
// match a stored "1234".
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Check compares a submitted code against the stored value object.
// A missing stored code and a consumed code are distinct conditions
// from a plain mismatch so callers can report them separately.
type Result int

const (
	Match Result = iota
	Mismatch
	NotGenerated
	AlreadyUsed
)

func Check(stored models.VerificationCode, submitted string) Result {
	if stored.Code == "" {
		return NotGenerated
	}
	if stored.UsedAt != nil {
		return AlreadyUsed
	}
	if Normalize(submitted) != stored.Code {
		return Mismatch
	}
	return Match
}
