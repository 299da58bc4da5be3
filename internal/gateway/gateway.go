// Package gateway defines the escrow payment capability the lifecycle
// engine depends on. Amounts are integer minor units. Every call takes
// an idempotency key and must be safe to retry with the same key.
package gateway

import (
	"context"
	"fmt"
)

type Intent struct {
	IntentID string
}

type CallStatus struct {
	Status string
}

type Transfer struct {
	TransferID string
}

type Gateway interface {
	Preauthorize(ctx context.Context, amountCents int64, idempotencyKey string) (Intent, error)
	Capture(ctx context.Context, intentID string, amountCents int64, idempotencyKey string) (CallStatus, error)
	Void(ctx context.Context, intentID string, idempotencyKey string) (CallStatus, error)
	Refund(ctx context.Context, intentID string, amountCents int64, idempotencyKey string) (CallStatus, error)
	Transfer(ctx context.Context, destinationAccountID string, amountCents int64, idempotencyKey string) (Transfer, error)
}

// IdempotencyKey derives the stable key for a gateway call from the
// operation and the job it acts on. Retries and crash-recovery replays
// of the same transition reuse the same key, so the provider never
// double-charges, double-captures, or double-transfers.
func IdempotencyKey(op string, jobID uint) string {
	return fmt.Sprintf("%s:job:%d", op, jobID)
}

const (
	OpPreauthorize = "preauthorize"
	OpCapture      = "capture"
	OpVoid         = "void"
	OpRefund       = "refund"
	OpTransfer     = "transfer"
)
