package marketplace

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hustlehub/backend/common"
	"github.com/hustlehub/backend/internal/dto"
	"github.com/hustlehub/backend/middleware"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

var _ HandlerInterface = (*Handler)(nil)

const actorKey = "marketplace.actor"

// RequireActor resolves the calling user into a typed Actor once, at
// the boundary. Authentication proper (sessions, JWT) sits in front of
// this service; here the verified user id arrives in X-User-ID.
func RequireActor(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 0)
		if err != nil || id < 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.APIError{Message: "missing or invalid X-User-ID"})
			return
		}

		user, err := store.GetUser(c.Request.Context(), uint(id))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.APIError{Message: "unknown user"})
			return
		}

		c.Set(actorKey, Actor{
			ID:               user.ID,
			Email:            user.Email,
			CanActAsCustomer: user.CanActAsCustomer,
			CanActAsHustler:  user.CanActAsHustler,
			PayoutAccountID:  user.PayoutAccountID,
		})
		c.Next()
	}
}

func actorFrom(c *gin.Context) Actor {
	actor, _ := c.MustGet(actorKey).(Actor)
	return actor
}

func jobID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id < 1 {
		c.Error(common.Errf(http.StatusBadRequest, "invalid ID"))
		return 0, false
	}
	return uint(id), true
}

// CreateJob handles POST /jobs. Returns HTTP 201 with the OPEN job.
func (h *Handler) CreateJob(c *gin.Context) {
	var req dto.JobCreateDTO
	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJob handles GET /jobs/:id.
func (h *Handler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobs handles GET /jobs with optional status/category filters.
func (h *Handler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "invalid query parameters"))
		return
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), actorFrom(c), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// DeleteJob handles DELETE /jobs/:id.
func (h *Handler) DeleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), actorFrom(c), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateOffer handles POST /jobs/:id/offers.
func (h *Handler) CreateOffer(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.OfferCreateDTO
	if !middleware.Bind(c, &req) {
		return
	}

	offer, err := h.service.CreateOffer(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// ListOffers handles GET /jobs/:id/offers.
func (h *Handler) ListOffers(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	offers, err := h.service.ListOffers(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// AcceptOffer handles POST /offers/:id/accept and returns the
// assigned job with its escrow payment.
func (h *Handler) AcceptOffer(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := h.service.AcceptOffer(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeclineOffer handles POST /offers/:id/decline.
func (h *Handler) DeclineOffer(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	offer, err := h.service.DeclineOffer(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

// StartJob handles POST /jobs/:id/start.
func (h *Handler) StartJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.StartJobDTO
	if !middleware.Bind(c, &req) {
		return
	}

	job, err := h.service.StartJob(c.Request.Context(), actorFrom(c), id, req.Code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CompleteJob handles POST /jobs/:id/complete.
func (h *Handler) CompleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.CompleteJobDTO
	if !middleware.Bind(c, &req) {
		return
	}

	job, err := h.service.CompleteJob(c.Request.Context(), actorFrom(c), id, req.ActualHours)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ConfirmCompletion handles POST /jobs/:id/confirm.
func (h *Handler) ConfirmCompletion(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.ConfirmJobDTO
	if !middleware.Bind(c, &req) {
		return
	}

	job, err := h.service.ConfirmCompletion(c.Request.Context(), actorFrom(c), id, req.Code, req.Tip)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CancelJob handles POST /jobs/:id/cancel.
func (h *Handler) CancelJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.CancelJobDTO
	if !middleware.Bind(c, &req) {
		return
	}

	job, err := h.service.CancelJob(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ReportIssue handles POST /jobs/:id/report.
func (h *Handler) ReportIssue(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.ReportIssueDTO
	if !middleware.Bind(c, &req) {
		return
	}

	job, err := h.service.ReportIssue(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// RegenerateStartCode handles POST /jobs/:id/start-code.
func (h *Handler) RegenerateStartCode(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := h.service.RegenerateStartCode(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// PostMessage handles POST /jobs/:id/messages.
func (h *Handler) PostMessage(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.MessageCreateDTO
	if !middleware.Bind(c, &req) {
		return
	}

	msg, err := h.service.PostMessage(c.Request.Context(), actorFrom(c), id, req.Body)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListMessages handles GET /jobs/:id/messages.
func (h *Handler) ListMessages(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	msgs, err := h.service.ListMessages(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// CreateReview handles POST /jobs/:id/reviews.
func (h *Handler) CreateReview(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.ReviewCreateDTO
	if !middleware.Bind(c, &req) {
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ReleaseOverdue handles POST /internal/release-overdue, the manual
// trigger for the sweep the sweeper binary runs on a ticker.
func (h *Handler) ReleaseOverdue(c *gin.Context) {
	released, err := h.service.ReleaseOverdue(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"released": released})
}

// Routes mounts the handler onto a router group.
func (h *Handler) Routes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.CreateJob)
	rg.GET("/jobs", h.ListJobs)
	rg.GET("/jobs/:id", h.GetJob)
	rg.DELETE("/jobs/:id", h.DeleteJob)

	rg.POST("/jobs/:id/offers", h.CreateOffer)
	rg.GET("/jobs/:id/offers", h.ListOffers)
	rg.POST("/offers/:id/accept", h.AcceptOffer)
	rg.POST("/offers/:id/decline", h.DeclineOffer)

	rg.POST("/jobs/:id/start", h.StartJob)
	rg.POST("/jobs/:id/complete", h.CompleteJob)
	rg.POST("/jobs/:id/confirm", h.ConfirmCompletion)
	rg.POST("/jobs/:id/cancel", h.CancelJob)
	rg.POST("/jobs/:id/report", h.ReportIssue)
	rg.POST("/jobs/:id/start-code", h.RegenerateStartCode)

	rg.POST("/jobs/:id/messages", h.PostMessage)
	rg.GET("/jobs/:id/messages", h.ListMessages)
	rg.POST("/jobs/:id/reviews", h.CreateReview)

	rg.POST("/internal/release-overdue", h.ReleaseOverdue)
}
