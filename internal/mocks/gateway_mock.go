package mocks

import (
	"context"

	"github.com/hustlehub/backend/internal/gateway"
	"github.com/stretchr/testify/mock"
)

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) Preauthorize(ctx context.Context, amountCents int64, idempotencyKey string) (gateway.Intent, error) {
	args := m.Called(ctx, amountCents, idempotencyKey)

	intent, _ := args.Get(0).(gateway.Intent)
	return intent, args.Error(1)
}

func (m *GatewayMock) Capture(ctx context.Context, intentID string, amountCents int64, idempotencyKey string) (gateway.CallStatus, error) {
	args := m.Called(ctx, intentID, amountCents, idempotencyKey)

	status, _ := args.Get(0).(gateway.CallStatus)
	return status, args.Error(1)
}

func (m *GatewayMock) Void(ctx context.Context, intentID string, idempotencyKey string) (gateway.CallStatus, error) {
	args := m.Called(ctx, intentID, idempotencyKey)

	status, _ := args.Get(0).(gateway.CallStatus)
	return status, args.Error(1)
}

func (m *GatewayMock) Refund(ctx context.Context, intentID string, amountCents int64, idempotencyKey string) (gateway.CallStatus, error) {
	args := m.Called(ctx, intentID, amountCents, idempotencyKey)

	status, _ := args.Get(0).(gateway.CallStatus)
	return status, args.Error(1)
}

func (m *GatewayMock) Transfer(ctx context.Context, destinationAccountID string, amountCents int64, idempotencyKey string) (gateway.Transfer, error) {
	args := m.Called(ctx, destinationAccountID, amountCents, idempotencyKey)

	transfer, _ := args.Get(0).(gateway.Transfer)
	return transfer, args.Error(1)
}
