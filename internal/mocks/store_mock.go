package mocks

import (
	"context"
	"time"

	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/marketplace"
	"github.com/hustlehub/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type StoreMock struct {
	mock.Mock
}

// Atomic runs fn against the same mock unless an error is stubbed, so
// expectations set on the mock cover writes made inside transactions.
func (m *StoreMock) Atomic(ctx context.Context, fn func(marketplace.Store) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *StoreMock) CreateJob(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *StoreMock) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	args := m.Called(ctx, id)

	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *StoreMock) ListJobs(ctx context.Context, filter marketplace.JobFilter) ([]models.Job, error) {
	args := m.Called(ctx, filter)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *StoreMock) SaveJob(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *StoreMock) DeleteJob(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoreMock) UpdateJobStatusIf(ctx context.Context, id uint, from []config.JobStatus, to config.JobStatus, set map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, to, set)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) ListOverdueJobs(ctx context.Context, completedBefore time.Time) ([]models.Job, error) {
	args := m.Called(ctx, completedBefore)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *StoreMock) CreateOffer(ctx context.Context, offer *models.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *StoreMock) GetOffer(ctx context.Context, id uint) (*models.Offer, error) {
	args := m.Called(ctx, id)

	offer, _ := args.Get(0).(*models.Offer)
	return offer, args.Error(1)
}

func (m *StoreMock) ListOffersByJob(ctx context.Context, jobID uint) ([]models.Offer, error) {
	args := m.Called(ctx, jobID)

	offers, _ := args.Get(0).([]models.Offer)
	return offers, args.Error(1)
}

func (m *StoreMock) HasPendingOffer(ctx context.Context, jobID, hustlerID uint) (bool, error) {
	args := m.Called(ctx, jobID, hustlerID)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) CountOffers(ctx context.Context, jobID uint) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StoreMock) UpdateOfferStatusIf(ctx context.Context, id uint, from, to config.OfferStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) DeclineSiblingOffers(ctx context.Context, jobID, acceptedID uint) error {
	args := m.Called(ctx, jobID, acceptedID)
	return args.Error(0)
}

func (m *StoreMock) CreatePayment(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *StoreMock) GetPaymentByJob(ctx context.Context, jobID uint) (*models.Payment, error) {
	args := m.Called(ctx, jobID)

	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *StoreMock) UpdatePaymentStatusIf(ctx context.Context, id uint, from []config.PaymentStatus, to config.PaymentStatus, set map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, to, set)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) UpsertPayout(ctx context.Context, payout *models.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *StoreMock) GetPayoutByJob(ctx context.Context, jobID uint) (*models.Payout, error) {
	args := m.Called(ctx, jobID)

	payout, _ := args.Get(0).(*models.Payout)
	return payout, args.Error(1)
}

func (m *StoreMock) EnsureThread(ctx context.Context, thread *models.Thread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *StoreMock) GetThreadByJob(ctx context.Context, jobID uint) (*models.Thread, error) {
	args := m.Called(ctx, jobID)

	thread, _ := args.Get(0).(*models.Thread)
	return thread, args.Error(1)
}

func (m *StoreMock) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *StoreMock) ListMessages(ctx context.Context, threadID uint) ([]models.Message, error) {
	args := m.Called(ctx, threadID)

	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *StoreMock) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *StoreMock) ListReviewsByJob(ctx context.Context, jobID uint) ([]models.Review, error) {
	args := m.Called(ctx, jobID)

	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Error(1)
}

func (m *StoreMock) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *StoreMock) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
