// Product feedback HTTP handlers.
//
//   - POST /feedback            (file a bug report or feature wish)
//   - GET  /feedback            (list, newest first, with vote counts)
//   - POST /feedback/:id/vote   (toggle the caller's upvote)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4Furki4/turkish-dictionary/internal/services"
)

// CreateFeedbackBody is the JSON payload for filing feedback.
type CreateFeedbackBody struct {
	Kind        string `json:"kind" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ListFeedbackResponse wraps a page of feedback items with vote counts.
type ListFeedbackResponse struct {
	Feedback   []services.FeedbackItem `json:"feedback"`
	Pagination Pagination              `json:"pagination"`
}

// CreateFeedback files a feedback item on behalf of the signed-in caller.
func (h *Handlers) CreateFeedback(c *gin.Context) {
	var body CreateFeedbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind, title and description are required")
		return
	}

	f, err := h.fbSvc.Create(c.Request.Context(), caller(c), body.Kind, body.Title, body.Description)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, f)
}

// ListFeedback returns a page of feedback items, newest first.
func (h *Handlers) ListFeedback(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.fbSvc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListFeedbackResponse{
		Feedback:   items,
		Pagination: paginate(page, pageSize, total),
	})
}

// ToggleFeedbackVote flips the caller's upvote on a feedback item.
func (h *Handlers) ToggleFeedbackVote(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}

	voted, err := h.fbSvc.ToggleVote(c.Request.Context(), caller(c), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"voted": voted})
}
