package marketplace

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/hustlehub/backend/common"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/gateway"
	"github.com/hustlehub/backend/internal/models"
	"github.com/hustlehub/backend/internal/notify"
)

// Config is the slice of app configuration the engine consumes.
type Config struct {
	RequireOnboarding bool
	AutoReleaseAfter  time.Duration
	CancelLockWindow  time.Duration
	HourlyAuthBuffer  float64
}

// Service is the job lifecycle engine. Every mutation of a Job and its
// Payment goes through here; nothing else writes those rows.
type Service struct {
	store    Store
	gateway  gateway.Gateway
	notifier notify.Notifier
	logger   *slog.Logger
	cfg      Config

	// now is swappable so the time-based guards (cancel window,
	// 48h auto-release) are testable.
	now func() time.Time
}

func NewService(store Store, gw gateway.Gateway, notifier notify.Notifier, logger *slog.Logger, cfg Config) *Service {
	return &Service{
		store:    store,
		gateway:  gw,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

var _ ServiceInterface = (*Service)(nil)

// CreateJob validates the posting and persists it OPEN.
func (s *Service) CreateJob(ctx context.Context, actor Actor, in *dto.JobCreateDTO) (*dto.JobDTO, error) {
	if !actor.CanActAsCustomer {
		return nil, common.Forbiddenf("account is not enabled to post jobs")
	}
	if !slices.Contains(config.AllowedCategories, in.Category) {
		return nil, common.NewAPIError(http.StatusBadRequest, "invalid category", map[string]any{
			"provided": in.Category,
			"allowed":  config.AllowedCategories,
		})
	}
	if !slices.Contains(config.AllowedPayTypes, in.PayType) {
		return nil, common.NewAPIError(http.StatusBadRequest, "invalid pay type", map[string]any{
			"provided": in.PayType,
			"allowed":  config.AllowedPayTypes,
		})
	}
	if in.PayType == config.PayTypeFlat && in.Amount <= 0 {
		return nil, common.Validationf("flat jobs need a positive amount")
	}
	if in.PayType == config.PayTypeHourly && (in.HourlyRate <= 0 || in.EstimatedHours <= 0) {
		return nil, common.Validationf("hourly jobs need a positive hourly_rate and estimated_hours")
	}
	if in.ScheduledEnd != nil && !in.ScheduledEnd.After(in.ScheduledStart) {
		return nil, common.Validationf("scheduled_end must be after scheduled_start")
	}

	job := models.Job{
		CustomerID:     actor.ID,
		Title:          in.Title,
		Category:       in.Category,
		Description:    in.Description,
		Address:        in.Address,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		ScheduledDate:  in.ScheduledDate,
		ScheduledStart: in.ScheduledStart,
		ScheduledEnd:   in.ScheduledEnd,
		PayType:        in.PayType,
		Amount:         in.Amount,
		HourlyRate:     in.HourlyRate,
		EstimatedHours: in.EstimatedHours,
		Status:         config.JobStatusOpen,
	}
	if job.PayType == config.PayTypeHourly {
		job.Amount = job.HourlyRate * job.EstimatedHours
	}

	if err := s.store.CreateJob(ctx, &job); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create job")
	}

	return s.project(ctx, actor, &job), nil
}

func (s *Service) GetJob(ctx context.Context, actor Actor, id uint) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, actor, job), nil
}

func (s *Service) ListJobs(ctx context.Context, actor Actor, query dto.JobListQuery) ([]dto.JobDTO, error) {
	filter := JobFilter{
		Status:   config.JobStatus(query.Status),
		Category: query.Category,
	}
	if query.Mine {
		if actor.CanActAsCustomer {
			filter.CustomerID = actor.ID
		} else {
			filter.HustlerID = actor.ID
		}
	}

	jobs, err := s.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list jobs")
	}

	out := make([]dto.JobDTO, len(jobs))
	for i := range jobs {
		out[i] = *s.project(ctx, actor, &jobs[i])
	}
	return out, nil
}

// DeleteJob hard-deletes a posting, allowed only while it is OPEN and
// has never attracted an offer. Once money has moved the row only ever
// reaches soft terminal states.
func (s *Service) DeleteJob(ctx context.Context, actor Actor, id uint) error {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return err
	}
	if job.CustomerID != actor.ID {
		return common.Forbiddenf("only the job owner may delete it")
	}
	if job.Status != config.JobStatusOpen {
		return common.Conflictf("only open jobs can be deleted")
	}

	count, err := s.store.CountOffers(ctx, id)
	if err != nil {
		return common.Errf(http.StatusInternalServerError, "failed to check offers")
	}
	if count > 0 {
		return common.Conflictf("jobs with offers cannot be deleted, cancel instead")
	}

	if err := s.store.DeleteJob(ctx, id); err != nil {
		return common.Errf(http.StatusInternalServerError, "failed to delete job")
	}
	return nil
}

// loadJob translates a store miss into the API not-found error.
func (s *Service) loadJob(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, common.NotFoundf("job %d not found", id)
	}
	return job, nil
}

func (s *Service) isParticipant(job *models.Job, actor Actor) bool {
	if job.CustomerID == actor.ID {
		return true
	}
	return job.HustlerID != nil && *job.HustlerID == actor.ID
}

// project builds the caller-facing view of a job. Verification codes
// are disclosed only to the party who reads them out: start code to
// the customer, completion code to the hustler.
func (s *Service) project(ctx context.Context, actor Actor, job *models.Job) *dto.JobDTO {
	out := &dto.JobDTO{
		ID:             job.ID,
		CustomerID:     job.CustomerID,
		HustlerID:      job.HustlerID,
		Title:          job.Title,
		Category:       job.Category,
		Description:    job.Description,
		Address:        job.Address,
		ScheduledDate:  job.ScheduledDate,
		ScheduledStart: job.ScheduledStart,
		ScheduledEnd:   job.ScheduledEnd,
		PayType:        job.PayType,
		Amount:         job.Amount,
		HourlyRate:     job.HourlyRate,
		EstimatedHours: job.EstimatedHours,
		ActualHours:    job.ActualHours,
		Status:         job.Status,
		DisputeOpen:    job.Dispute.Open,
		StartedAt:      job.StartedAt,
		CompletedAt:    job.CompletedAt,
		ConfirmedAt:    job.ConfirmedAt,
		CancelledAt:    job.CancelledAt,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}

	if job.CustomerID == actor.ID && job.StartCode.UsedAt == nil {
		out.StartCode = job.StartCode.Code
	}
	if job.HustlerID != nil && *job.HustlerID == actor.ID && job.CompletionCode.UsedAt == nil {
		out.CompletionCode = job.CompletionCode.Code
	}

	if s.isParticipant(job, actor) {
		if payment, err := s.store.GetPaymentByJob(ctx, job.ID); err == nil && payment != nil {
			out.Payment = projectPayment(payment)
		}
	}

	return out
}

func projectPayment(p *models.Payment) *dto.PaymentDTO {
	return &dto.PaymentDTO{
		ID:             p.ID,
		JobID:          p.JobID,
		Amount:         p.Amount,
		Tip:            p.Tip,
		FeeCustomer:    p.FeeCustomer,
		FeeHustler:     p.FeeHustler,
		Total:          p.Total,
		CapturedAmount: p.CapturedAmount,
		Status:         p.Status,
		RefundAmount:   p.RefundAmount,
		RefundReason:   p.RefundReason,
		CreatedAt:      p.CreatedAt,
		CapturedAt:     p.CapturedAt,
	}
}

// notifyAsync fires a lifecycle notification without letting a
// delivery failure reach the transition that triggered it.
func (s *Service) notifyAsync(eventType notify.EventType, jobID uint, recipientID uint, data map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	go func() {
		defer cancel()

		recipient := ""
		if user, err := s.store.GetUser(ctx, recipientID); err == nil {
			recipient = user.Email
		}

		err := s.notifier.Notify(ctx, notify.Event{
			Type:      eventType,
			JobID:     jobID,
			Recipient: recipient,
			Data:      data,
		})
		if err != nil {
			s.logger.Warn("notification send failed",
				slog.String("type", string(eventType)),
				slog.Uint64("job_id", uint64(jobID)),
				slog.String("error", err.Error()),
			)
		}
	}()
}
