// Dictionary read HTTP handlers.
//
// Public, unauthenticated endpoints:
//   - GET /words          (alphabetical search/list, paginated)
//   - GET /words/suggest  (ranked name completions for a partial query)
//   - GET /words/:name    (full detail for a headword, by name)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/utils"
)

// ListWordsResponse wraps a page of words and pagination information.
type ListWordsResponse struct {
	Words      []domain.Word `json:"words"`
	Pagination Pagination    `json:"pagination"`
}

// ListWords returns a page of words whose names contain the optional query
// term q. Casing is irrelevant: the term folds with Turkish rules.
func (h *Handlers) ListWords(c *gin.Context) {
	page, pageSize := clampPagination(c)

	result, err := h.wordSvc.Search(c.Request.Context(), c.Query("q"), page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListWordsResponse{
		Words:      result.Items,
		Pagination: paginate(page, pageSize, result.Total),
	})
}

// GetWord returns the full detail view for a headword.
func (h *Handlers) GetWord(c *gin.Context) {
	detail, err := h.wordSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, detail)
}

// SuggestWords returns up to `limit` ranked completions for the prefix query
// q. Suggestions come from the in-memory index, so this endpoint never
// touches the database.
func (h *Handlers) SuggestWords(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 25 {
		limit = 25
	}

	ok(c, http.StatusOK, gin.H{"suggestions": h.wordSvc.Suggest(q, limit)})
}
