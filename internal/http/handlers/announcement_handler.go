// Announcement HTTP handlers.
//
// Public read surface plus admin-only CRUD:
//   - GET    /announcements         (published items; admins also see drafts)
//   - GET    /announcements/:slug   (single item by slug)
//   - POST   /announcements         (admin)
//   - PATCH  /announcements/:id     (admin, sparse)
//   - DELETE /announcements/:id     (admin)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4Furki4/turkish-dictionary/internal/services"
	"github.com/4Furki4/turkish-dictionary/internal/utils"
)

// ListAnnouncements returns announcements newest first.
func (h *Handlers) ListAnnouncements(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 20)

	items, err := h.annSvc.List(c.Request.Context(), caller(c), limit)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"announcements": items})
}

// GetAnnouncement returns a single announcement by slug.
func (h *Handlers) GetAnnouncement(c *gin.Context) {
	a, err := h.annSvc.Get(c.Request.Context(), caller(c), c.Param("slug"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// CreateAnnouncement stores a new announcement (admin only).
func (h *Handlers) CreateAnnouncement(c *gin.Context) {
	var body services.AnnouncementInput
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.annSvc.Create(c.Request.Context(), caller(c), body)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, a)
}

// UpdateAnnouncement sparse-patches an announcement (admin only).
func (h *Handlers) UpdateAnnouncement(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}
	var body services.AnnouncementInput
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.annSvc.Update(c.Request.Context(), caller(c), id, body); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// DeleteAnnouncement soft-deletes an announcement (admin only).
func (h *Handlers) DeleteAnnouncement(c *gin.Context) {
	id, okID := requestID(c)
	if !okID {
		return
	}

	if err := h.annSvc.Delete(c.Request.Context(), caller(c), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
