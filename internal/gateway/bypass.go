package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// BypassGateway is the in-process gateway used when PAYMENT_MODE is
// "bypass" (staging, tests). It honors idempotency keys: a repeated
// call with a known key returns the original result without a second
// effect, mirroring the provider contract the engine relies on.
type BypassGateway struct {
	mu      sync.Mutex
	intents map[string]Intent   // idempotency key -> minted intent
	calls   map[string]struct{} // idempotency keys already applied
	xfers   map[string]Transfer
}

func NewBypassGateway() *BypassGateway {
	return &BypassGateway{
		intents: make(map[string]Intent),
		calls:   make(map[string]struct{}),
		xfers:   make(map[string]Transfer),
	}
}

var _ Gateway = (*BypassGateway)(nil)

func (g *BypassGateway) Preauthorize(ctx context.Context, amountCents int64, key string) (Intent, error) {
	if amountCents <= 0 {
		return Intent{}, fmt.Errorf("preauthorize amount must be positive, got %d", amountCents)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if intent, ok := g.intents[key]; ok {
		return intent, nil
	}
	intent := Intent{IntentID: "pi_bypass_" + uuid.NewString()}
	g.intents[key] = intent
	return intent, nil
}

func (g *BypassGateway) Capture(ctx context.Context, intentID string, amountCents int64, key string) (CallStatus, error) {
	if intentID == "" {
		return CallStatus{}, fmt.Errorf("capture requires an intent id")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[key] = struct{}{}
	return CallStatus{Status: "succeeded"}, nil
}

func (g *BypassGateway) Void(ctx context.Context, intentID string, key string) (CallStatus, error) {
	if intentID == "" {
		return CallStatus{}, fmt.Errorf("void requires an intent id")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[key] = struct{}{}
	return CallStatus{Status: "canceled"}, nil
}

func (g *BypassGateway) Refund(ctx context.Context, intentID string, amountCents int64, key string) (CallStatus, error) {
	if intentID == "" {
		return CallStatus{}, fmt.Errorf("refund requires an intent id")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[key] = struct{}{}
	return CallStatus{Status: "refunded"}, nil
}

func (g *BypassGateway) Transfer(ctx context.Context, destinationAccountID string, amountCents int64, key string) (Transfer, error) {
	if destinationAccountID == "" {
		return Transfer{}, fmt.Errorf("transfer requires a destination account")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if xfer, ok := g.xfers[key]; ok {
		return xfer, nil
	}
	xfer := Transfer{TransferID: "tr_bypass_" + uuid.NewString()}
	g.xfers[key] = xfer
	return xfer, nil
}
