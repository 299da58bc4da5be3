package mocks

import (
	"context"

	"github.com/hustlehub/backend/internal/notify"
	"github.com/stretchr/testify/mock"
)

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(ctx context.Context, event notify.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
