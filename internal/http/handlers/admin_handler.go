// Admin CRUD HTTP handlers.
//
// Administrators mutate the dictionary tables directly, without the request
// pipeline:
//   - POST   /admin/:entity_type       (create)
//   - PATCH  /admin/:entity_type/:id   (sparse update)
//   - DELETE /admin/:entity_type/:id   (delete)
//
// The :entity_type segment takes the same values the pipeline accepts (word,
// meaning, author, …), and payloads pass through the same validation schemas
// and apply primitives, so an admin edit behaves exactly like an approved
// request.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// entityType parses and validates the :entity_type path parameter.
func entityType(c *gin.Context) (domain.EntityType, bool) {
	et := domain.EntityType(c.Param("entity_type"))
	if !et.Valid() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown entity type")
		return "", false
	}
	return et, true
}

// AdminCreate inserts a new entity row.
func (h *Handlers) AdminCreate(c *gin.Context) {
	et, okET := entityType(c)
	if !okET {
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.adminSvc.Create(c.Request.Context(), caller(c), et, payload)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"id": id})
}

// AdminUpdate sparse-patches an entity row. Fields absent from the payload
// stay untouched; explicit nulls clear their columns.
func (h *Handlers) AdminUpdate(c *gin.Context) {
	et, okET := entityType(c)
	if !okET {
		return
	}
	id, okID := requestID(c)
	if !okID {
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.adminSvc.Update(c.Request.Context(), caller(c), et, id, payload); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// AdminDelete removes (or soft-deletes) an entity row.
func (h *Handlers) AdminDelete(c *gin.Context) {
	et, okET := entityType(c)
	if !okET {
		return
	}
	id, okID := requestID(c)
	if !okID {
		return
	}

	if err := h.adminSvc.Delete(c.Request.Context(), caller(c), et, id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
