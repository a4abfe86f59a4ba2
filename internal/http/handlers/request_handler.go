// Contribution request HTTP handlers.
//
// This file exposes the REST surface of the request pipeline:
//   - POST /requests               (submit a proposal)
//   - GET  /requests               (moderation review queue, FIFO, paginated)
//   - GET  /requests/mine          (the caller's own submissions)
//   - GET  /requests/:id           (single request, ?diff=1 adds a field diff)
//   - GET  /requests/stats         (per-status and per-type counts)
//   - POST /requests/:id/vote      (toggle the caller's vote)
//   - POST /requests/:id/approve   (moderator: apply and resolve)
//   - POST /requests/:id/reject    (moderator: resolve without applying)
//
// Handlers are transport-thin: they parse input, call application services,
// and translate results into HTTP responses. All policy (captcha, roles,
// duplicate detection, transactional resolution) lives in the service layer.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/http/middleware"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
	"github.com/4Furki4/turkish-dictionary/internal/services"
	"github.com/4Furki4/turkish-dictionary/internal/utils"
)

// Handlers groups the HTTP endpoints for the contribution pipeline, the
// public dictionary reads, and the product surface around them.
type Handlers struct {
	reqSvc   *services.RequestService
	voteSvc  *services.VoteService
	modSvc   *services.ModerationService
	wordSvc  *services.WordService
	adminSvc *services.AdminService
	fbSvc    *services.FeedbackService
	annSvc   *services.AnnouncementService

	// db backs the contribution-key records for safe retries; keyTTL bounds
	// how long a retry with the same X-Contribution-Key is served from the
	// stored request instead of filing a new one.
	db     *gorm.DB
	keyTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(
	reqSvc *services.RequestService,
	voteSvc *services.VoteService,
	modSvc *services.ModerationService,
	wordSvc *services.WordService,
	adminSvc *services.AdminService,
	fbSvc *services.FeedbackService,
	annSvc *services.AnnouncementService,
	db *gorm.DB,
	keyTTL time.Duration,
) *Handlers {
	if keyTTL <= 0 {
		keyTTL = 24 * time.Hour
	}
	return &Handlers{
		reqSvc:   reqSvc,
		voteSvc:  voteSvc,
		modSvc:   modSvc,
		wordSvc:  wordSvc,
		adminSvc: adminSvc,
		fbSvc:    fbSvc,
		annSvc:   annSvc,
		db:       db,
		keyTTL:   keyTTL,
	}
}

// caller builds the service-layer identity from the context values resolved
// by the Identity middleware. A zero value means an anonymous visitor.
func caller(c *gin.Context) services.Caller {
	return services.Caller{
		UserID: middleware.UserID(c),
		Role:   services.Role(middleware.UserRole(c)),
	}
}

//
// DTOs
//

// CreateRequestBody is the JSON payload for submitting a proposal.
type CreateRequestBody struct {
	EntityType    string         `json:"entity_type" binding:"required"`
	Action        string         `json:"action" binding:"required"`
	RequestableID *uint64        `json:"requestable_id"`
	NewData       map[string]any `json:"new_data"`
	CaptchaToken  string         `json:"captcha_token"`
}

// RejectRequestBody carries the optional moderator note for a rejection.
type RejectRequestBody struct {
	Reason string `json:"reason"`
}

// RequestDetail is the single-request read model: the stored row, its
// current vote count, and (on demand) the field-level diff a moderator
// reviews.
type RequestDetail struct {
	Request domain.Request       `json:"request"`
	Votes   int64                `json:"votes"`
	Diff    []services.FieldDiff `json:"diff,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListRequestsResponse wraps a page of requests and pagination information.
type ListRequestsResponse struct {
	Requests   []domain.Request `json:"requests"`
	Pagination Pagination       `json:"pagination"`
}

// VoteResponse reports the caller's vote state after a toggle.
type VoteResponse struct {
	Voted bool  `json:"voted"`
	Votes int64 `json:"votes"`
}

// StatsResponse is the moderation dashboard summary.
type StatsResponse struct {
	ByStatus      repo.RequestStats           `json:"by_status"`
	PendingByType map[domain.EntityType]int64 `json:"pending_by_type"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate computes the response metadata for a page.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// requestID parses the :id path parameter, failing the request on
// malformed input.
func requestID(c *gin.Context) (uint64, bool) {
	id, ok := utils.Uint64Param(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
	}
	return id, ok
}

//
// Handlers
//

// CreateRequest submits a new contribution proposal.
//
// When the client sends X-Contribution-Key and the validator flagged this as
// a replay of an earlier accepted submission, the stored request is returned
// with 200 instead of filing a duplicate.
func (h *Handlers) CreateRequest(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	cl := caller(c)
	et := domain.EntityType(body.EntityType)

	// Serve retries from the stored record.
	if key, hasKey := middleware.GetContributionKey(c); hasKey && middleware.IsReplay(c) && !cl.Anonymous() {
		if prev := h.replayedRequest(ctx, cl.UserID, et, key); prev != nil {
			ok(c, http.StatusOK, prev)
			return
		}
	}

	req, err := h.reqSvc.Create(ctx, cl, services.CreateRequestInput{
		EntityType:    et,
		Action:        domain.Action(body.Action),
		RequestableID: body.RequestableID,
		NewData:       body.NewData,
		CaptchaToken:  body.CaptchaToken,
	})
	if err != nil {
		failService(c, err)
		return
	}

	// Record the key so a retry of this submission replays instead of
	// duplicating. Best effort: a failure here must not fail the request.
	if key, hasKey := middleware.GetContributionKey(c); hasKey && !cl.Anonymous() {
		if _, err := repo.CreateContributionKey(ctx, h.db, cl.UserID, et, key, req.ID, http.StatusCreated, h.keyTTL); err != nil && !errors.Is(err, repo.ErrDuplicateKey) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("contribution key not recorded")
		}
	}

	ok(c, http.StatusCreated, req)
}

// replayedRequest resolves the request previously filed under a contribution
// key, or nil when the record or request cannot be loaded.
func (h *Handlers) replayedRequest(ctx context.Context, userID string, et domain.EntityType, key string) *domain.Request {
	rec, err := repo.GetContributionKey(ctx, h.db, userID, et, key, time.Now().UTC())
	if err != nil || rec == nil {
		return nil
	}
	req, err := repo.GetRequest(ctx, h.db, rec.RequestID)
	if err != nil {
		return nil
	}
	return req
}

// GetRequest returns a single request with its vote count. With ?diff=1 the
// response also carries the field-level diff against the live entity.
func (h *Handlers) GetRequest(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}
	ctx := c.Request.Context()

	req, err := h.reqSvc.Get(ctx, id)
	if err != nil {
		failService(c, err)
		return
	}
	votes, err := h.voteSvc.Count(ctx, id)
	if err != nil {
		failService(c, err)
		return
	}

	detail := RequestDetail{Request: *req, Votes: votes}
	if c.Query("diff") == "1" {
		diff, err := h.reqSvc.DiffFor(ctx, req)
		if err != nil {
			failService(c, err)
			return
		}
		detail.Diff = diff
	}
	ok(c, http.StatusOK, detail)
}

// ListRequests returns the moderation review queue: pending requests in FIFO
// order, optionally filtered by entity_type and a payload search term q.
func (h *Handlers) ListRequests(c *gin.Context) {
	page, pageSize := clampPagination(c)
	f := repo.PendingFilter{
		SearchTerm: c.Query("q"),
	}
	if et := c.Query("entity_type"); et != "" {
		f.EntityType = domain.EntityType(et)
		if !f.EntityType.Valid() {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown entity_type")
			return
		}
	}

	result, err := h.reqSvc.ListPending(c.Request.Context(), f, page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListRequestsResponse{
		Requests:   result.Items,
		Pagination: paginate(page, pageSize, result.Total),
	})
}

// ListMyRequests returns the caller's own submissions across all statuses.
func (h *Handlers) ListMyRequests(c *gin.Context) {
	page, pageSize := clampPagination(c)

	result, err := h.reqSvc.ListMine(c.Request.Context(), caller(c), page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListRequestsResponse{
		Requests:   result.Items,
		Pagination: paginate(page, pageSize, result.Total),
	})
}

// RequestStats returns per-status and per-type request counts.
func (h *Handlers) RequestStats(c *gin.Context) {
	byStatus, byType, err := h.reqSvc.Stats(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, StatsResponse{ByStatus: byStatus, PendingByType: byType})
}

// ToggleVote flips the caller's vote on a pending request.
func (h *Handlers) ToggleVote(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}
	ctx := c.Request.Context()

	voted, err := h.voteSvc.Toggle(ctx, caller(c), id)
	if err != nil {
		failService(c, err)
		return
	}
	votes, err := h.voteSvc.Count(ctx, id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, VoteResponse{Voted: voted, Votes: votes})
}

// ApproveRequest applies a pending request and marks it approved.
func (h *Handlers) ApproveRequest(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}

	if err := h.modSvc.Approve(c.Request.Context(), caller(c), id); err != nil {
		failService(c, err)
		return
	}
	middleware.CountDecision("approved")
	ok(c, http.StatusOK, gin.H{"id": id, "status": domain.StatusApproved})
}

// RejectRequest marks a pending request rejected with an optional reason.
func (h *Handlers) RejectRequest(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}

	var body RejectRequestBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return
		}
	}
	var reason *string
	if body.Reason != "" {
		reason = &body.Reason
	}

	if err := h.modSvc.Reject(c.Request.Context(), caller(c), id, reason); err != nil {
		failService(c, err)
		return
	}
	middleware.CountDecision("rejected")
	ok(c, http.StatusOK, gin.H{"id": id, "status": domain.StatusRejected})
}
