package marketplace

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hustlehub/backend/common"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/fees"
	"github.com/hustlehub/backend/internal/gateway"
	"github.com/hustlehub/backend/internal/models"
	"github.com/hustlehub/backend/internal/notify"
	"github.com/hustlehub/backend/internal/verification"
)

// CreateOffer records a hustler's bid on an open job and makes sure
// the job's message thread exists.
func (s *Service) CreateOffer(ctx context.Context, actor Actor, jobID uint, in *dto.OfferCreateDTO) (*dto.OfferDTO, error) {
	if !actor.CanActAsHustler {
		return nil, common.Forbiddenf("account is not enabled to make offers")
	}

	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID == actor.ID {
		return nil, common.Conflictf("you cannot offer on your own job")
	}
	if job.Status != config.JobStatusOpen {
		return nil, common.Conflictf("job is not open for offers")
	}
	// Hourly billing derives from rate and hours; a lump-sum proposal
	// has nothing to attach to.
	if job.PayType == config.PayTypeHourly && in.ProposedAmount != nil {
		return nil, common.Validationf("proposed amounts only apply to flat-rate jobs")
	}

	pending, err := s.store.HasPendingOffer(ctx, jobID, actor.ID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to check offers")
	}
	if pending {
		return nil, common.Conflictf("you already have a pending offer on this job")
	}

	offer := models.Offer{
		JobID:          jobID,
		HustlerID:      actor.ID,
		Note:           in.Note,
		ProposedAmount: in.ProposedAmount,
		Status:         config.OfferStatusPending,
	}

	err = s.store.Atomic(ctx, func(tx Store) error {
		if err := tx.CreateOffer(ctx, &offer); err != nil {
			return err
		}
		return tx.EnsureThread(ctx, &models.Thread{
			JobID:      jobID,
			CustomerID: job.CustomerID,
			HustlerID:  actor.ID,
		})
	})
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create offer")
	}

	s.notifyAsync(notify.EventOfferReceived, jobID, job.CustomerID, nil)

	return projectOffer(&offer), nil
}

func (s *Service) ListOffers(ctx context.Context, actor Actor, jobID uint) ([]dto.OfferDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != actor.ID {
		return nil, common.Forbiddenf("only the job owner may list offers")
	}

	offers, err := s.store.ListOffersByJob(ctx, jobID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list offers")
	}

	out := make([]dto.OfferDTO, len(offers))
	for i := range offers {
		out[i] = *projectOffer(&offers[i])
	}
	return out, nil
}

// AcceptOffer runs the assign transition: fee split, pre-authorization
// on the customer's card, then one transaction flipping the job to
// ASSIGNED, creating the escrow payment, declining sibling offers, and
// minting the start code. A gateway failure aborts the whole thing;
// the offer stays PENDING and no payment row exists.
func (s *Service) AcceptOffer(ctx context.Context, actor Actor, offerID uint) (*dto.JobDTO, error) {
	offer, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		return nil, common.NotFoundf("offer %d not found", offerID)
	}

	job, err := s.loadJob(ctx, offer.JobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != actor.ID {
		return nil, common.Forbiddenf("only the job owner may accept offers")
	}
	if offer.Status != config.OfferStatusPending {
		return nil, common.Conflictf("offer is not pending")
	}
	if job.Status != config.JobStatusOpen {
		return nil, common.Conflictf("job is not open")
	}

	hustler, err := s.store.GetUser(ctx, offer.HustlerID)
	if err != nil {
		return nil, common.Invariantf("offer %d references missing hustler %d", offerID, offer.HustlerID)
	}
	if s.cfg.RequireOnboarding && hustler.PayoutAccountID == "" {
		return nil, common.Conflictf("hustler has not finished payout onboarding")
	}

	amount := job.Amount
	if job.PayType == config.PayTypeFlat && offer.ProposedAmount != nil {
		amount = *offer.ProposedAmount
	}
	breakdown, err := fees.Calculate(amount, 0)
	if err != nil {
		return nil, err
	}

	// Hourly jobs authorize headroom above the estimate so overtime up
	// to the buffer can still be captured without a second auth.
	authAmount := breakdown.Total
	if job.PayType == config.PayTypeHourly {
		buffered := job.HourlyRate * job.EstimatedHours * s.cfg.HourlyAuthBuffer
		authAmount = fees.Round2(buffered + breakdown.CustomerFee)
	}

	intent, err := s.gateway.Preauthorize(ctx, fees.ToCents(authAmount),
		gateway.IdempotencyKey(gateway.OpPreauthorize, job.ID))
	if err != nil {
		return nil, common.NewGatewayError(gateway.OpPreauthorize, false, err)
	}

	now := s.now()
	startCode, err := verification.NewCode(verification.StartCodeLength, now)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to generate start code")
	}

	payment := models.Payment{
		JobID:       job.ID,
		CustomerID:  job.CustomerID,
		HustlerID:   offer.HustlerID,
		Amount:      breakdown.JobAmount,
		FeeCustomer: breakdown.CustomerFee,
		Total:       breakdown.Total,
		Status:      config.PaymentStatusPreauthorized,
		ProviderID:  intent.IntentID,
	}

	err = s.store.Atomic(ctx, func(tx Store) error {
		// Conditional flip guards the race between two accept calls:
		// the loser sees zero rows and reports a conflict.
		flipped, err := tx.UpdateJobStatusIf(ctx, job.ID,
			[]config.JobStatus{config.JobStatusOpen}, config.JobStatusAssigned,
			map[string]any{
				"hustler_id":              offer.HustlerID,
				"amount":                  breakdown.JobAmount,
				"start_code_code":         startCode.Code,
				"start_code_generated_at": startCode.GeneratedAt,
				"start_code_used_at":      nil,
			})
		if err != nil {
			return err
		}
		if !flipped {
			return common.Conflictf("job is not open")
		}

		accepted, err := tx.UpdateOfferStatusIf(ctx, offer.ID,
			config.OfferStatusPending, config.OfferStatusAccepted)
		if err != nil {
			return err
		}
		if !accepted {
			return common.Conflictf("offer is not pending")
		}

		if err := tx.DeclineSiblingOffers(ctx, job.ID, offer.ID); err != nil {
			return err
		}

		if err := tx.CreatePayment(ctx, &payment); err != nil {
			return err
		}

		return tx.EnsureThread(ctx, &models.Thread{
			JobID:      job.ID,
			CustomerID: job.CustomerID,
			HustlerID:  offer.HustlerID,
		})
	})
	if err != nil {
		// The authorization is orphaned if the store rejected the
		// transition; release the hold so the card is not tied up.
		if _, voidErr := s.gateway.Void(ctx, intent.IntentID,
			gateway.IdempotencyKey(gateway.OpVoid, job.ID)); voidErr != nil {
			s.logger.Error("failed to void orphaned preauthorization",
				slog.Uint64("job_id", uint64(job.ID)),
				slog.String("intent_id", intent.IntentID),
				slog.String("error", voidErr.Error()),
			)
		}
		if apiErr, ok := err.(common.APIError); ok {
			return nil, apiErr
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to assign job")
	}

	s.notifyAsync(notify.EventJobAssigned, job.ID, offer.HustlerID, nil)

	assigned, err := s.loadJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, actor, assigned), nil
}

// DeclineOffer marks a pending offer declined. No side effects beyond
// persistence.
func (s *Service) DeclineOffer(ctx context.Context, actor Actor, offerID uint) (*dto.OfferDTO, error) {
	offer, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		return nil, common.NotFoundf("offer %d not found", offerID)
	}

	job, err := s.loadJob(ctx, offer.JobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != actor.ID {
		return nil, common.Forbiddenf("only the job owner may decline offers")
	}

	declined, err := s.store.UpdateOfferStatusIf(ctx, offer.ID,
		config.OfferStatusPending, config.OfferStatusDeclined)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to decline offer")
	}
	if !declined {
		return nil, common.Conflictf("offer is not pending")
	}

	offer.Status = config.OfferStatusDeclined
	return projectOffer(offer), nil
}

func projectOffer(o *models.Offer) *dto.OfferDTO {
	return &dto.OfferDTO{
		ID:             o.ID,
		JobID:          o.JobID,
		HustlerID:      o.HustlerID,
		Note:           o.Note,
		ProposedAmount: o.ProposedAmount,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
	}
}
