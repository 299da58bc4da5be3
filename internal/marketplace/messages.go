package marketplace

import (
	"context"
	"net/http"

	"github.com/hustlehub/backend/common"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/models"
)

// messagesVisible gates the per-job thread: it exists from the first
// offer but neither party sees it until the job is assigned.
func messagesVisible(status config.JobStatus) bool {
	return status != config.JobStatusOpen
}

func (s *Service) PostMessage(ctx context.Context, actor Actor, jobID uint, body string) (*dto.MessageDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(job, actor) {
		return nil, common.Forbiddenf("only a participant may message on this job")
	}
	if !messagesVisible(job.Status) {
		return nil, common.Conflictf("messaging opens once the job is assigned")
	}

	thread, err := s.store.GetThreadByJob(ctx, jobID)
	if err != nil {
		return nil, common.Invariantf("assigned job %d has no thread", jobID)
	}

	msg := models.Message{
		ThreadID: thread.ID,
		SenderID: actor.ID,
		Body:     body,
	}
	if err := s.store.CreateMessage(ctx, &msg); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to post message")
	}

	return &dto.MessageDTO{
		ID:        msg.ID,
		ThreadID:  msg.ThreadID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}, nil
}

func (s *Service) ListMessages(ctx context.Context, actor Actor, jobID uint) ([]dto.MessageDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(job, actor) {
		return nil, common.Forbiddenf("only a participant may read this thread")
	}
	if !messagesVisible(job.Status) {
		return nil, common.Conflictf("messaging opens once the job is assigned")
	}

	thread, err := s.store.GetThreadByJob(ctx, jobID)
	if err != nil {
		return nil, common.NotFoundf("no thread for job %d", jobID)
	}

	msgs, err := s.store.ListMessages(ctx, thread.ID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list messages")
	}

	out := make([]dto.MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = dto.MessageDTO{
			ID:        m.ID,
			ThreadID:  m.ThreadID,
			SenderID:  m.SenderID,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// CreateReview records a rating on a completed job; each participant
// may review once, about the other party.
func (s *Service) CreateReview(ctx context.Context, actor Actor, jobID uint, in *dto.ReviewCreateDTO) (*dto.ReviewDTO, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(job, actor) {
		return nil, common.Forbiddenf("only a participant may review this job")
	}
	if job.Status != config.JobStatusCompleted {
		return nil, common.Conflictf("reviews open once the job is completed")
	}

	subject := job.CustomerID
	if actor.ID == job.CustomerID {
		if job.HustlerID == nil {
			return nil, common.Invariantf("completed job %d has no hustler", jobID)
		}
		subject = *job.HustlerID
	}

	existing, err := s.store.ListReviewsByJob(ctx, jobID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to check reviews")
	}
	for _, r := range existing {
		if r.AuthorID == actor.ID {
			return nil, common.Conflictf("you already reviewed this job")
		}
	}

	review := models.Review{
		JobID:     jobID,
		AuthorID:  actor.ID,
		SubjectID: subject,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.store.CreateReview(ctx, &review); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create review")
	}

	return &dto.ReviewDTO{
		ID:        review.ID,
		JobID:     review.JobID,
		AuthorID:  review.AuthorID,
		SubjectID: review.SubjectID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}, nil
}
