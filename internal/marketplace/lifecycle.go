package marketplace

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hustlehub/backend/common"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/fees"
	"github.com/hustlehub/backend/internal/gateway"
	"github.com/hustlehub/backend/internal/models"
	"github.com/hustlehub/backend/internal/notify"
	"github.com/hustlehub/backend/internal/verification"
	"gorm.io/datatypes"
)

// StartJob is the on-site handshake: the hustler submits the start
// code the customer read out, proving the handoff happened.
func (s *Service) StartJob(ctx context.Context, actor Actor, jobID uint, code string) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.HustlerID == nil || *job.HustlerID != actor.ID {
		return nil, common.Forbiddenf("only the assigned hustler may start this job")
	}
	// A replayed code reports as used even after the job moved on,
	// so the check runs before the status guard.
	check := verification.Check(job.StartCode, code)
	if check == verification.AlreadyUsed {
		return nil, common.Conflictf("start code was already used")
	}
	if job.Status != config.JobStatusAssigned {
		return nil, common.Conflictf("job is not awaiting start")
	}

	switch check {
	case verification.NotGenerated:
		return nil, common.Conflictf("no start code has been generated for this job")
	case verification.Mismatch:
		return nil, common.Validationf("start code does not match")
	}

	now := s.now()
	flipped, err := s.store.UpdateJobStatusIf(ctx, job.ID,
		[]config.JobStatus{config.JobStatusAssigned}, config.JobStatusInProgress,
		map[string]any{
			"started_at":         now,
			"start_code_used_at": now,
		})
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to start job")
	}
	if !flipped {
		return nil, common.Conflictf("job is not awaiting start")
	}

	s.notifyAsync(notify.EventJobStarted, job.ID, job.CustomerID, nil)

	return s.GetJob(ctx, actor, job.ID)
}

// CompleteJob moves the job to AWAITING_CONFIRMATION and mints the
// 6-digit completion code the hustler hands to the customer. Hourly
// jobs record the hours actually worked.
func (s *Service) CompleteJob(ctx context.Context, actor Actor, jobID uint, actualHours float64) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.HustlerID == nil || *job.HustlerID != actor.ID {
		return nil, common.Forbiddenf("only the assigned hustler may complete this job")
	}
	if job.Status != config.JobStatusAssigned && job.Status != config.JobStatusInProgress {
		return nil, common.Conflictf("job is not in progress")
	}
	if actualHours > 0 && job.PayType != config.PayTypeHourly {
		return nil, common.Validationf("actual_hours only applies to hourly jobs")
	}

	now := s.now()
	completionCode, err := verification.NewCode(verification.CompletionCodeLength, now)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to generate completion code")
	}

	flipped, err := s.store.UpdateJobStatusIf(ctx, job.ID,
		[]config.JobStatus{config.JobStatusAssigned, config.JobStatusInProgress},
		config.JobStatusAwaitingConf,
		map[string]any{
			"completed_at":                 now,
			"actual_hours":                 actualHours,
			"completion_code_code":         completionCode.Code,
			"completion_code_generated_at": completionCode.GeneratedAt,
			"completion_code_used_at":      nil,
		})
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to complete job")
	}
	if !flipped {
		return nil, common.Conflictf("job is not in progress")
	}

	s.notifyAsync(notify.EventJobCompleted, job.ID, job.CustomerID, nil)

	return s.GetJob(ctx, actor, job.ID)
}

// ConfirmCompletion is the customer's side of the completion
// handshake: a matching code captures the escrowed funds and pays the
// hustler out. A repeat call on an already-confirmed job succeeds
// without touching the gateway again.
func (s *Service) ConfirmCompletion(ctx context.Context, actor Actor, jobID uint, code string, tip float64) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != actor.ID {
		return nil, common.Forbiddenf("only the job owner may confirm completion")
	}

	if job.Status == config.JobStatusCompleted {
		return s.GetJob(ctx, actor, job.ID)
	}
	if job.Status != config.JobStatusAwaitingConf {
		return nil, common.Conflictf("job is not awaiting confirmation")
	}
	if job.Dispute.Open {
		return nil, common.Conflictf("payment release is frozen while a dispute is open")
	}

	switch verification.Check(job.CompletionCode, code) {
	case verification.NotGenerated:
		return nil, common.Conflictf("no completion code has been generated for this job")
	case verification.AlreadyUsed:
		return nil, common.Conflictf("completion code was already used")
	case verification.Mismatch:
		return nil, common.Validationf("completion code does not match")
	}

	if err := s.release(ctx, job, tip); err != nil {
		return nil, err
	}

	if job.HustlerID != nil {
		s.notifyAsync(notify.EventJobConfirmed, job.ID, *job.HustlerID, nil)
	}

	return s.GetJob(ctx, actor, job.ID)
}

// release captures the escrowed payment and finishes the job. It is
// shared by customer confirmation and the auto-release sweep, and is
// safe to run concurrently: the conditional status flip decides a
// single winner and everyone else returns without re-capturing.
func (s *Service) release(ctx context.Context, job *models.Job, tip float64) error {
	payment, err := s.store.GetPaymentByJob(ctx, job.ID)
	if err != nil || payment == nil {
		return common.Invariantf("job %d awaits confirmation but has no payment", job.ID)
	}
	if payment.Status == config.PaymentStatusCaptured {
		return nil
	}
	if payment.Status != config.PaymentStatusPreauthorized {
		return common.Conflictf("payment is %s, cannot capture", payment.Status)
	}

	billable := job.Amount
	if job.PayType == config.PayTypeHourly {
		hours := job.ActualHours
		if hours <= 0 {
			hours = job.EstimatedHours
		}
		maxHours := job.EstimatedHours * s.cfg.HourlyAuthBuffer
		if hours > maxHours {
			hours = maxHours
		}
		billable = fees.Round2(hours * job.HourlyRate)
	}

	breakdown, err := fees.Calculate(billable, tip)
	if err != nil {
		return err
	}
	captureTotal := fees.Round2(breakdown.Total + breakdown.TipAmount)

	// Capture below the authorized amount releases the unused hold;
	// no separate partial void is needed.
	_, err = s.gateway.Capture(ctx, payment.ProviderID, fees.ToCents(captureTotal),
		gateway.IdempotencyKey(gateway.OpCapture, job.ID))
	if err != nil {
		return common.NewGatewayError(gateway.OpCapture, false, err)
	}

	now := s.now()
	fromStatuses := []config.JobStatus{config.JobStatusAwaitingConf}
	payout := models.Payout{
		JobID:       job.ID,
		HustlerID:   payment.HustlerID,
		Amount:      breakdown.JobAmount,
		PlatformFee: breakdown.PlatformFee,
		NetAmount:   fees.Round2(breakdown.HustlerPayout + breakdown.TipAmount),
		Status:      config.PayoutStatusPending,
	}

	won := false
	err = s.store.Atomic(ctx, func(tx Store) error {
		flipped, err := tx.UpdateJobStatusIf(ctx, job.ID, fromStatuses, config.JobStatusCompleted,
			map[string]any{
				"confirmed_at":            now,
				"completion_code_used_at": now,
			})
		if err != nil {
			return err
		}
		if !flipped {
			// A racing confirm or sweep got here first; the capture
			// above was idempotent, so there is nothing to undo.
			return nil
		}
		won = true

		captured, err := tx.UpdatePaymentStatusIf(ctx, payment.ID,
			[]config.PaymentStatus{config.PaymentStatusPreauthorized}, config.PaymentStatusCaptured,
			map[string]any{
				"captured_amount": captureTotal,
				"tip":             breakdown.TipAmount,
				"fee_hustler":     breakdown.PlatformFee,
				"captured_at":     now,
			})
		if err != nil {
			return err
		}
		if !captured {
			return common.Invariantf("payment %d flipped away from PREAUTHORIZED mid-release", payment.ID)
		}

		return tx.UpsertPayout(ctx, &payout)
	})
	if err != nil {
		if apiErr, ok := err.(common.APIError); ok {
			return apiErr
		}
		return common.Errf(http.StatusInternalServerError, "failed to finalize release")
	}
	if !won {
		// The winner owns the payout record and the transfer; a loser
		// writing either would clobber amounts that never moved.
		return nil
	}

	s.transferPayout(ctx, job, &payout)
	return nil
}

// transferPayout moves captured funds to the hustler's external
// account. Failure here never unwinds the release: the payout row is
// flagged FAILED and retried out of band.
func (s *Service) transferPayout(ctx context.Context, job *models.Job, payout *models.Payout) {
	hustler, err := s.store.GetUser(ctx, payout.HustlerID)
	if err != nil || hustler.PayoutAccountID == "" {
		s.logger.Warn("payout destination unavailable, leaving payout pending",
			slog.Uint64("job_id", uint64(job.ID)),
			slog.Uint64("hustler_id", uint64(payout.HustlerID)),
		)
		return
	}

	xfer, err := s.gateway.Transfer(ctx, hustler.PayoutAccountID,
		fees.ToCents(payout.NetAmount), gateway.IdempotencyKey(gateway.OpTransfer, job.ID))

	status := config.PayoutStatusCompleted
	providerID := xfer.TransferID
	if err != nil {
		s.logger.Error("payout transfer failed",
			slog.Uint64("job_id", uint64(job.ID)),
			slog.String("error", err.Error()),
		)
		status = config.PayoutStatusFailed
		providerID = ""
	}

	payout.Status = status
	payout.ProviderID = providerID
	if err := s.store.UpsertPayout(ctx, payout); err != nil {
		s.logger.Error("failed to record payout status",
			slog.Uint64("job_id", uint64(job.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// CancelJob voids or refunds the escrow and closes the job. The job
// always reaches CANCELLED; a gateway failure flags the payment for
// manual reconciliation instead of blocking the cancellation.
func (s *Service) CancelJob(ctx context.Context, actor Actor, jobID uint, reason string) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != actor.ID {
		return nil, common.Forbiddenf("only the job owner may cancel")
	}
	if job.Status.Terminal() {
		return nil, common.Conflictf("job is already %s", job.Status)
	}

	// Both time guards read the wall clock at request time.
	now := s.now()
	if job.Status != config.JobStatusOpen {
		if now.After(job.ScheduledStart.Add(-s.cfg.CancelLockWindow)) && now.Before(job.ScheduledStart) {
			return nil, common.Conflictf("jobs cannot be cancelled within %s of the scheduled start", s.cfg.CancelLockWindow)
		}
		if now.After(endOfDay(job.ScheduledDate)) {
			return nil, common.Conflictf("jobs cannot be cancelled after the job date")
		}
	}

	payment, _ := s.store.GetPaymentByJob(ctx, jobID)

	var gatewayOp string
	var gatewayFailed bool
	var paymentTo config.PaymentStatus
	if payment != nil {
		switch payment.Status {
		case config.PaymentStatusPreauthorized:
			gatewayOp = gateway.OpVoid
			paymentTo = config.PaymentStatusVoided
			if _, err := s.gateway.Void(ctx, payment.ProviderID,
				gateway.IdempotencyKey(gateway.OpVoid, job.ID)); err != nil {
				gatewayFailed = true
				s.logger.Error("void failed during cancel, flagging for reconciliation",
					slog.Uint64("job_id", uint64(job.ID)),
					slog.String("error", err.Error()),
				)
			}
		case config.PaymentStatusCaptured:
			gatewayOp = gateway.OpRefund
			paymentTo = config.PaymentStatusRefunded
			if _, err := s.gateway.Refund(ctx, payment.ProviderID,
				fees.ToCents(payment.CapturedAmount),
				gateway.IdempotencyKey(gateway.OpRefund, job.ID)); err != nil {
				gatewayFailed = true
				s.logger.Error("refund failed during cancel, flagging for reconciliation",
					slog.Uint64("job_id", uint64(job.ID)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	err = s.store.Atomic(ctx, func(tx Store) error {
		flipped, err := tx.UpdateJobStatusIf(ctx, job.ID,
			[]config.JobStatus{
				config.JobStatusOpen, config.JobStatusAssigned,
				config.JobStatusInProgress, config.JobStatusAwaitingConf,
			},
			config.JobStatusCancelled,
			map[string]any{"cancelled_at": now})
		if err != nil {
			return err
		}
		if !flipped {
			return common.Conflictf("job can no longer be cancelled")
		}

		if payment != nil && paymentTo != "" {
			set := map[string]any{"needs_reconciliation": gatewayFailed}
			if paymentTo == config.PaymentStatusRefunded {
				set["refund_amount"] = payment.CapturedAmount
				set["refund_reason"] = reason
			}
			updated, err := tx.UpdatePaymentStatusIf(ctx, payment.ID,
				[]config.PaymentStatus{payment.Status}, paymentTo, set)
			if err != nil {
				return err
			}
			if !updated {
				return common.Conflictf("payment changed while cancelling, retry")
			}

			details, _ := json.Marshal(map[string]any{
				"job_id":         job.ID,
				"payment_id":     payment.ID,
				"reason":         reason,
				"gateway_failed": gatewayFailed,
			})
			if err := tx.AppendAudit(ctx, &models.AuditLog{
				ActorID:  actor.ID,
				Action:   gatewayOp,
				Resource: "payment",
				Details:  datatypes.JSON(details),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apiErr, ok := err.(common.APIError); ok {
			return nil, apiErr
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to cancel job")
	}

	if job.HustlerID != nil {
		s.notifyAsync(notify.EventJobCancelled, job.ID, *job.HustlerID, nil)
	}

	return s.GetJob(ctx, actor, job.ID)
}

// ReportIssue opens a dispute on the job. While one is open the
// auto-release sweep leaves the job alone.
func (s *Service) ReportIssue(ctx context.Context, actor Actor, jobID uint, reason string) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(job, actor) {
		return nil, common.Forbiddenf("only a participant may report an issue")
	}
	if job.Status == config.JobStatusCancelled {
		return nil, common.Conflictf("cancelled jobs cannot be disputed")
	}
	if job.Dispute.Open {
		return nil, common.Conflictf("a dispute is already open on this job")
	}

	now := s.now()
	job.Dispute = models.Dispute{
		Open:     true,
		OpenedBy: actor.ID,
		Reason:   reason,
		OpenedAt: &now,
	}
	if err := s.store.SaveJob(ctx, job); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to report issue")
	}

	other := job.CustomerID
	if actor.ID == job.CustomerID && job.HustlerID != nil {
		other = *job.HustlerID
	}
	s.notifyAsync(notify.EventDisputeOpened, job.ID, other, nil)

	return s.project(ctx, actor, job), nil
}

// RegenerateStartCode lets the customer force a fresh start code
// before the handshake has happened.
func (s *Service) RegenerateStartCode(ctx context.Context, actor Actor, jobID uint) (*dto.JobDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != actor.ID {
		return nil, common.Forbiddenf("only the job owner may regenerate the start code")
	}
	if job.Status != config.JobStatusAssigned {
		return nil, common.Conflictf("start codes only apply to assigned jobs")
	}

	code, err := verification.NewCode(verification.StartCodeLength, s.now())
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to generate start code")
	}

	job.StartCode = code
	if err := s.store.SaveJob(ctx, job); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to save start code")
	}

	s.notifyAsync(notify.EventStartCodeReset, job.ID, job.CustomerID, nil)

	return s.project(ctx, actor, job), nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
