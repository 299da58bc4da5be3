package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/marketplace"
	"github.com/hustlehub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed implementation of the engine's persistence
// contract.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ marketplace.Store = (*Store)(nil)

// Atomic runs fn inside one database transaction; the Store handed to
// fn routes every call through that transaction.
func (s *Store) Atomic(ctx context.Context, fn func(marketplace.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %w", err)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

func (s *Store) ListJobs(ctx context.Context, filter marketplace.JobFilter) ([]models.Job, error) {
	q := s.db.WithContext(ctx).Model(&models.Job{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.HustlerID != 0 {
		q = q.Where("hustler_id = ?", filter.HustlerID)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) SaveJob(ctx context.Context, job *models.Job) error {
	if err := s.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// UpdateJobStatusIf applies the transition only when the row still
// holds one of the expected statuses. The boolean result is the race
// verdict: false means another writer got there first.
func (s *Store) UpdateJobStatusIf(ctx context.Context, id uint, from []config.JobStatus, to config.JobStatus, set map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range set {
		updates[k] = v
	}

	res := s.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("update job status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ListOverdueJobs(ctx context.Context, completedBefore time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Where("status = ?", config.JobStatusAwaitingConf).
		Where("dispute_open = ?", false).
		Where("completed_at < ?", completedBefore).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) CreateOffer(ctx context.Context, offer *models.Offer) error {
	if err := s.db.WithContext(ctx).Create(offer).Error; err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

func (s *Store) GetOffer(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := s.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("offer not found: %w", err)
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return &offer, nil
}

func (s *Store) ListOffersByJob(ctx context.Context, jobID uint) ([]models.Offer, error) {
	var offers []models.Offer
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}

func (s *Store) HasPendingOffer(ctx context.Context, jobID, hustlerID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("job_id = ? AND hustler_id = ? AND status = ?", jobID, hustlerID, config.OfferStatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check pending offer: %w", err)
	}
	return count > 0, nil
}

func (s *Store) CountOffers(ctx context.Context, jobID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return count, nil
}

func (s *Store) UpdateOfferStatusIf(ctx context.Context, id uint, from, to config.OfferStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("update offer status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeclineSiblingOffers flips every other PENDING offer on the job to
// DECLINED, in the same transaction as the acceptance.
func (s *Store) DeclineSiblingOffers(ctx context.Context, jobID, acceptedID uint) error {
	err := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("job_id = ? AND id <> ? AND status = ?", jobID, acceptedID, config.OfferStatusPending).
		Update("status", config.OfferStatusDeclined).Error
	if err != nil {
		return fmt.Errorf("decline sibling offers: %w", err)
	}
	return nil
}

func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *Store) GetPaymentByJob(ctx context.Context, jobID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment not found: %w", err)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &payment, nil
}

func (s *Store) UpdatePaymentStatusIf(ctx context.Context, id uint, from []config.PaymentStatus, to config.PaymentStatus, set map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range set {
		updates[k] = v
	}

	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("update payment status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpsertPayout is keyed on job_id so retried releases never create a
// second payout row for the same job.
func (s *Store) UpsertPayout(ctx context.Context, payout *models.Payout) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount", "platform_fee", "net_amount", "status", "provider_id", "updated_at",
		}),
	}).Create(payout).Error
	if err != nil {
		return fmt.Errorf("upsert payout: %w", err)
	}
	return nil
}

func (s *Store) GetPayoutByJob(ctx context.Context, jobID uint) (*models.Payout, error) {
	var payout models.Payout
	if err := s.db.WithContext(ctx).First(&payout, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payout not found: %w", err)
		}
		return nil, fmt.Errorf("get payout: %w", err)
	}
	return &payout, nil
}

// EnsureThread creates the job's thread if it does not exist yet.
// Repeated calls reuse the row but repoint hustler_id, so after an
// accept the thread belongs to the assigned hustler.
func (s *Store) EnsureThread(ctx context.Context, thread *models.Thread) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hustler_id"}),
	}).Create(thread).Error
	if err != nil {
		return fmt.Errorf("ensure thread: %w", err)
	}
	return nil
}

func (s *Store) GetThreadByJob(ctx context.Context, jobID uint) (*models.Thread, error) {
	var thread models.Thread
	if err := s.db.WithContext(ctx).First(&thread, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("thread not found: %w", err)
		}
		return nil, fmt.Errorf("get thread: %w", err)
	}
	return &thread, nil
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, threadID uint) ([]models.Message, error) {
	var msgs []models.Message
	if err := s.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *Store) ListReviewsByJob(ctx context.Context, jobID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// AllModels is the migration set shared by dev auto-migration and the
// sqlite test databases.
func AllModels() []any {
	return []any{
		&models.User{},
		&models.Job{},
		&models.Offer{},
		&models.Payment{},
		&models.Payout{},
		&models.Thread{},
		&models.Message{},
		&models.Review{},
		&models.AuditLog{},
	}
}
