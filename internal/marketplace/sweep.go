package marketplace

import (
	"context"
	"log/slog"

	"github.com/hustlehub/backend/internal/notify"
)

// ReleaseOverdue is the 48-hour safety valve: jobs the hustler
// finished that the customer never confirmed get captured and paid out
// automatically, unless a dispute is open. The conditional status flip
// inside release makes overlapping sweep runs harmless; at most one
// invocation wins each job.
func (s *Service) ReleaseOverdue(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cfg.AutoReleaseAfter)

	jobs, err := s.store.ListOverdueJobs(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range jobs {
		job := &jobs[i]

		if err := s.release(ctx, job, 0); err != nil {
			s.logger.Error("auto-release failed, will retry next sweep",
				slog.Uint64("job_id", uint64(job.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		released++

		s.logger.Info("auto-released overdue job",
			slog.Uint64("job_id", uint64(job.ID)),
		)
		s.notifyAsync(notify.EventAutoReleased, job.ID, job.CustomerID, nil)
		if job.HustlerID != nil {
			s.notifyAsync(notify.EventAutoReleased, job.ID, *job.HustlerID, nil)
		}
	}

	return released, nil
}
