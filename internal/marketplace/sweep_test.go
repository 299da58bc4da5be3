package marketplace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/gateway"
	"github.com/hustlehub/backend/internal/mocks"
	"github.com/hustlehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func overdueJob(id uint) models.Job {
	hustlerID := uint(2)
	completed := time.Now().Add(-72 * time.Hour)
	return models.Job{
		ID:          id,
		CustomerID:  1,
		HustlerID:   &hustlerID,
		Status:      config.JobStatusAwaitingConf,
		PayType:     config.PayTypeFlat,
		Amount:      100,
		CompletedAt: &completed,
	}
}

func TestService_ReleaseOverdue(t *testing.T) {
	t.Run("releases each overdue job and keeps going past failures", func(t *testing.T) {
		store := new(mocks.StoreMock)
		gw := new(mocks.GatewayMock)
		notifier := new(mocks.NotifierMock)

		store.On("ListOverdueJobs", mock.Anything, mock.Anything).
			Return([]models.Job{overdueJob(21), overdueJob(22)}, nil)

		// Job 21 releases cleanly.
		store.On("GetPaymentByJob", mock.Anything, uint(21)).Return(&models.Payment{
			ID: 31, JobID: 21, HustlerID: 2, Amount: 100, Total: 106.50,
			Status: config.PaymentStatusPreauthorized, ProviderID: "pi_21",
		}, nil)
		gw.On("Capture", mock.Anything, "pi_21", int64(10650), "capture:job:21").
			Return(gateway.CallStatus{Status: "succeeded"}, nil)
		store.On("Atomic", mock.Anything, mock.Anything).Return(nil)
		store.On("UpdateJobStatusIf", mock.Anything, uint(21), mock.Anything,
			config.JobStatusCompleted, mock.Anything).Return(true, nil)
		store.On("UpdatePaymentStatusIf", mock.Anything, uint(31), mock.Anything,
			config.PaymentStatusCaptured, mock.Anything).Return(true, nil)
		store.On("UpsertPayout", mock.Anything, mock.Anything).Return(nil)
		store.On("GetUser", mock.Anything, uint(2)).
			Return(&models.User{ID: 2, Email: "h@example.com", PayoutAccountID: "acct_h2"}, nil)
		gw.On("Transfer", mock.Anything, "acct_h2", mock.Anything, "transfer:job:21").
			Return(gateway.Transfer{TransferID: "tr_21"}, nil)

		// Job 22 has lost its payment row; the sweep logs and moves on.
		store.On("GetPaymentByJob", mock.Anything, uint(22)).
			Return(nil, errors.New("record not found"))
		allowNotifications(store, notifier)

		svc := newTestService(store, gw, notifier)
		released, err := svc.ReleaseOverdue(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, released)
		store.AssertExpectations(t)
		gw.AssertExpectations(t)
	})

	t.Run("already captured payment counts as released without a gateway call", func(t *testing.T) {
		store := new(mocks.StoreMock)
		gw := new(mocks.GatewayMock)
		notifier := new(mocks.NotifierMock)

		store.On("ListOverdueJobs", mock.Anything, mock.Anything).
			Return([]models.Job{overdueJob(21)}, nil)
		store.On("GetPaymentByJob", mock.Anything, uint(21)).Return(&models.Payment{
			ID: 31, JobID: 21, Status: config.PaymentStatusCaptured,
		}, nil)
		allowNotifications(store, notifier)

		svc := newTestService(store, gw, notifier)
		released, err := svc.ReleaseOverdue(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, released)
		gw.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty sweep", func(t *testing.T) {
		store := new(mocks.StoreMock)
		store.On("ListOverdueJobs", mock.Anything, mock.Anything).
			Return([]models.Job{}, nil)

		svc := newTestService(store, new(mocks.GatewayMock), new(mocks.NotifierMock))
		released, err := svc.ReleaseOverdue(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, released)
	})
}
