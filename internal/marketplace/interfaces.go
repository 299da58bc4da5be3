package marketplace

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hustlehub/backend/internal/config"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/internal/models"
)

// JobFilter narrows ListJobs. Zero values mean "no filter".
type JobFilter struct {
	Status     config.JobStatus
	Category   string
	CustomerID uint
	HustlerID  uint
}

// Store is the persistence contract the lifecycle engine runs on.
// Atomic groups multi-entity writes into one database transaction;
// the conditional Update*StatusIf primitives return false when the
// status precondition no longer holds, which is how racing callers
// lose cleanly instead of double-applying a transition.
type Store interface {
	Atomic(ctx context.Context, fn func(Store) error) error

	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error)
	SaveJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id uint) error
	UpdateJobStatusIf(ctx context.Context, id uint, from []config.JobStatus, to config.JobStatus, set map[string]any) (bool, error)
	ListOverdueJobs(ctx context.Context, completedBefore time.Time) ([]models.Job, error)

	CreateOffer(ctx context.Context, offer *models.Offer) error
	GetOffer(ctx context.Context, id uint) (*models.Offer, error)
	ListOffersByJob(ctx context.Context, jobID uint) ([]models.Offer, error)
	HasPendingOffer(ctx context.Context, jobID, hustlerID uint) (bool, error)
	CountOffers(ctx context.Context, jobID uint) (int64, error)
	UpdateOfferStatusIf(ctx context.Context, id uint, from, to config.OfferStatus) (bool, error)
	DeclineSiblingOffers(ctx context.Context, jobID, acceptedID uint) error

	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByJob(ctx context.Context, jobID uint) (*models.Payment, error)
	UpdatePaymentStatusIf(ctx context.Context, id uint, from []config.PaymentStatus, to config.PaymentStatus, set map[string]any) (bool, error)

	UpsertPayout(ctx context.Context, payout *models.Payout) error
	GetPayoutByJob(ctx context.Context, jobID uint) (*models.Payout, error)

	EnsureThread(ctx context.Context, thread *models.Thread) error
	GetThreadByJob(ctx context.Context, jobID uint) (*models.Thread, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, threadID uint) ([]models.Message, error)

	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByJob(ctx context.Context, jobID uint) ([]models.Review, error)

	GetUser(ctx context.Context, id uint) (*models.User, error)

	AppendAudit(ctx context.Context, entry *models.AuditLog) error
}

// ServiceInterface is the engine surface the HTTP layer programs
// against; operations map 1:1 to lifecycle transitions.
type ServiceInterface interface {
	CreateJob(ctx context.Context, actor Actor, in *dto.JobCreateDTO) (*dto.JobDTO, error)
	GetJob(ctx context.Context, actor Actor, id uint) (*dto.JobDTO, error)
	ListJobs(ctx context.Context, actor Actor, query dto.JobListQuery) ([]dto.JobDTO, error)
	DeleteJob(ctx context.Context, actor Actor, id uint) error

	CreateOffer(ctx context.Context, actor Actor, jobID uint, in *dto.OfferCreateDTO) (*dto.OfferDTO, error)
	ListOffers(ctx context.Context, actor Actor, jobID uint) ([]dto.OfferDTO, error)
	AcceptOffer(ctx context.Context, actor Actor, offerID uint) (*dto.JobDTO, error)
	DeclineOffer(ctx context.Context, actor Actor, offerID uint) (*dto.OfferDTO, error)

	StartJob(ctx context.Context, actor Actor, jobID uint, code string) (*dto.JobDTO, error)
	CompleteJob(ctx context.Context, actor Actor, jobID uint, actualHours float64) (*dto.JobDTO, error)
	ConfirmCompletion(ctx context.Context, actor Actor, jobID uint, code string, tip float64) (*dto.JobDTO, error)
	CancelJob(ctx context.Context, actor Actor, jobID uint, reason string) (*dto.JobDTO, error)
	ReportIssue(ctx context.Context, actor Actor, jobID uint, reason string) (*dto.JobDTO, error)
	RegenerateStartCode(ctx context.Context, actor Actor, jobID uint) (*dto.JobDTO, error)

	PostMessage(ctx context.Context, actor Actor, jobID uint, body string) (*dto.MessageDTO, error)
	ListMessages(ctx context.Context, actor Actor, jobID uint) ([]dto.MessageDTO, error)
	CreateReview(ctx context.Context, actor Actor, jobID uint, in *dto.ReviewCreateDTO) (*dto.ReviewDTO, error)

	ReleaseOverdue(ctx context.Context) (int, error)
}

// HandlerInterface defines the HTTP handlers exposed by the API.
type HandlerInterface interface {
	CreateJob(c *gin.Context)
	GetJob(c *gin.Context)
	ListJobs(c *gin.Context)
	DeleteJob(c *gin.Context)
	CreateOffer(c *gin.Context)
	ListOffers(c *gin.Context)
	AcceptOffer(c *gin.Context)
	DeclineOffer(c *gin.Context)
	StartJob(c *gin.Context)
	CompleteJob(c *gin.Context)
	ConfirmCompletion(c *gin.Context)
	CancelJob(c *gin.Context)
	ReportIssue(c *gin.Context)
	RegenerateStartCode(c *gin.Context)
	PostMessage(c *gin.Context)
	ListMessages(c *gin.Context)
	CreateReview(c *gin.Context)
	ReleaseOverdue(c *gin.Context)
}
