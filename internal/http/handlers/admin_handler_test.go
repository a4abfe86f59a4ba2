package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

func TestAdminCreate_RoleAndValidation(t *testing.T) {
	rg := newRig(t)
	payload := map[string]any{"name": "KİTAP"}

	// Plain users and anonymous callers are refused.
	if w := rg.do(t, http.MethodPost, "/api/v1/admin/word", payload, asUserHdr("u1")); w.Code != http.StatusForbidden {
		t.Fatalf("user: %d", w.Code)
	}
	if w := rg.do(t, http.MethodPost, "/api/v1/admin/word", payload, nil); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous: %d", w.Code)
	}

	w := rg.do(t, http.MethodPost, "/api/v1/admin/word", payload, asAdminHdr("a1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create: %d body=%s", w.Code, w.Body.String())
	}
	if decode(t, w)["id"].(float64) <= 0 {
		t.Fatalf("missing id: %s", w.Body.String())
	}

	// The headword lands normalized.
	var word domain.Word
	if err := rg.db.First(&word).Error; err != nil {
		t.Fatalf("load word: %v", err)
	}
	if word.Name != "kitap" {
		t.Fatalf("name not normalized: %q", word.Name)
	}

	// Bad path segment
	if w := rg.do(t, http.MethodPost, "/api/v1/admin/song", payload, asAdminHdr("a1")); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown entity type: %d", w.Code)
	}
	// Bad payload
	w = rg.do(t, http.MethodPost, "/api/v1/admin/word", map[string]any{"name": ""}, asAdminHdr("a1"))
	if w.Code != http.StatusBadRequest || decode(t, w)["code"] != "validation_failed" {
		t.Fatalf("empty name: %d %s", w.Code, w.Body.String())
	}
}

func TestAdminUpdate_SparsePatch(t *testing.T) {
	rg := newRig(t)

	w := rg.do(t, http.MethodPost, "/api/v1/admin/word",
		map[string]any{"name": "kitap", "phonetic": "ki·tap"}, asAdminHdr("a1"))
	id := decode(t, w)["id"].(float64)
	path := fmt.Sprintf("/api/v1/admin/word/%.0f", id)

	// Only root changes; phonetic must survive the patch.
	if w := rg.do(t, http.MethodPatch, path, map[string]any{"root": "kitab"}, asAdminHdr("a1")); w.Code != http.StatusNoContent {
		t.Fatalf("patch: %d body=%s", w.Code, w.Body.String())
	}
	var word domain.Word
	if err := rg.db.First(&word, uint64(id)).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if word.Root == nil || *word.Root != "kitab" {
		t.Fatalf("root not patched: %v", word.Root)
	}
	if word.Phonetic == nil || *word.Phonetic != "ki·tap" {
		t.Fatalf("phonetic clobbered: %v", word.Phonetic)
	}

	// Explicit null clears the column.
	if w := rg.do(t, http.MethodPatch, path, map[string]any{"phonetic": nil}, asAdminHdr("a1")); w.Code != http.StatusNoContent {
		t.Fatalf("null patch: %d", w.Code)
	}
	if err := rg.db.First(&word, uint64(id)).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if word.Phonetic != nil {
		t.Fatalf("phonetic not cleared: %v", *word.Phonetic)
	}

	// Missing row
	if w := rg.do(t, http.MethodPatch, "/api/v1/admin/word/999", map[string]any{"root": "x"}, asAdminHdr("a1")); w.Code != http.StatusNotFound {
		t.Fatalf("missing row: %d", w.Code)
	}
}

func TestAdminDelete(t *testing.T) {
	rg := newRig(t)

	w := rg.do(t, http.MethodPost, "/api/v1/admin/word", map[string]any{"name": "silinecek"}, asAdminHdr("a1"))
	id := decode(t, w)["id"].(float64)

	if w := rg.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/word/%.0f", id), nil, asAdminHdr("a1")); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}

	// Soft-deleted rows disappear from reads.
	if w := rg.do(t, http.MethodGet, "/api/v1/words/silinecek", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted word still readable: %d", w.Code)
	}
	if w := rg.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/word/%.0f", id), nil, asAdminHdr("a1")); w.Code != http.StatusNotFound {
		t.Fatalf("double delete: %d", w.Code)
	}

	// Moderators are not admins here.
	if w := rg.do(t, http.MethodDelete, "/api/v1/admin/word/1", nil, asModeratorHdr("m1")); w.Code != http.StatusForbidden {
		t.Fatalf("moderator delete: %d", w.Code)
	}
}
