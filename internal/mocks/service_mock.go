package mocks

import (
	"context"

	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/marketplace"
	"github.com/stretchr/testify/mock"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CreateJob(ctx context.Context, actor marketplace.Actor, in *dto.JobCreateDTO) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, in)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) GetJob(ctx context.Context, actor marketplace.Actor, id uint) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, id)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) ListJobs(ctx context.Context, actor marketplace.Actor, query dto.JobListQuery) ([]dto.JobDTO, error) {
	args := m.Called(ctx, actor, query)

	jobs, _ := args.Get(0).([]dto.JobDTO)
	return jobs, args.Error(1)
}

func (m *ServiceMock) DeleteJob(ctx context.Context, actor marketplace.Actor, id uint) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *ServiceMock) CreateOffer(ctx context.Context, actor marketplace.Actor, jobID uint, in *dto.OfferCreateDTO) (*dto.OfferDTO, error) {
	args := m.Called(ctx, actor, jobID, in)

	offer, _ := args.Get(0).(*dto.OfferDTO)
	return offer, args.Error(1)
}

func (m *ServiceMock) ListOffers(ctx context.Context, actor marketplace.Actor, jobID uint) ([]dto.OfferDTO, error) {
	args := m.Called(ctx, actor, jobID)

	offers, _ := args.Get(0).([]dto.OfferDTO)
	return offers, args.Error(1)
}

func (m *ServiceMock) AcceptOffer(ctx context.Context, actor marketplace.Actor, offerID uint) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, offerID)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) DeclineOffer(ctx context.Context, actor marketplace.Actor, offerID uint) (*dto.OfferDTO, error) {
	args := m.Called(ctx, actor, offerID)

	offer, _ := args.Get(0).(*dto.OfferDTO)
	return offer, args.Error(1)
}

func (m *ServiceMock) StartJob(ctx context.Context, actor marketplace.Actor, jobID uint, code string) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, jobID, code)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) CompleteJob(ctx context.Context, actor marketplace.Actor, jobID uint, actualHours float64) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, jobID, actualHours)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) ConfirmCompletion(ctx context.Context, actor marketplace.Actor, jobID uint, code string, tip float64) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, jobID, code, tip)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) CancelJob(ctx context.Context, actor marketplace.Actor, jobID uint, reason string) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, jobID, reason)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) ReportIssue(ctx context.Context, actor marketplace.Actor, jobID uint, reason string) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, jobID, reason)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) RegenerateStartCode(ctx context.Context, actor marketplace.Actor, jobID uint) (*dto.JobDTO, error) {
	args := m.Called(ctx, actor, jobID)

	job, _ := args.Get(0).(*dto.JobDTO)
	return job, args.Error(1)
}

func (m *ServiceMock) PostMessage(ctx context.Context, actor marketplace.Actor, jobID uint, body string) (*dto.MessageDTO, error) {
	args := m.Called(ctx, actor, jobID, body)

	msg, _ := args.Get(0).(*dto.MessageDTO)
	return msg, args.Error(1)
}

func (m *ServiceMock) ListMessages(ctx context.Context, actor marketplace.Actor, jobID uint) ([]dto.MessageDTO, error) {
	args := m.Called(ctx, actor, jobID)

	msgs, _ := args.Get(0).([]dto.MessageDTO)
	return msgs, args.Error(1)
}

func (m *ServiceMock) CreateReview(ctx context.Context, actor marketplace.Actor, jobID uint, in *dto.ReviewCreateDTO) (*dto.ReviewDTO, error) {
	args := m.Called(ctx, actor, jobID, in)

	review, _ := args.Get(0).(*dto.ReviewDTO)
	return review, args.Error(1)
}

func (m *ServiceMock) ReleaseOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
