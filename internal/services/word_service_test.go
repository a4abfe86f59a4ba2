package services

import (
	"context"
	"errors"
	"testing"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

func seedWords(t *testing.T, svc *WordService, names ...string) []domain.Word {
	t.Helper()
	out := make([]domain.Word, 0, len(names))
	for _, name := range names {
		w := domain.Word{Name: name}
		if err := svc.DB.Create(&w).Error; err != nil {
			t.Fatalf("seed word %s: %v", name, err)
		}
		out = append(out, w)
	}
	return out
}

func TestWordGet_NormalizesName(t *testing.T) {
	svc := &WordService{DB: newTestDB(t)}
	seedWords(t, svc, "kitap")

	// Uppercase dotted İ folds to i with Turkish rules.
	detail, err := svc.Get(context.Background(), "KİTAP")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Word.Name != "kitap" {
		t.Fatalf("name = %q, want kitap", detail.Word.Name)
	}
}

func TestWordGet_NotFound(t *testing.T) {
	svc := &WordService{DB: newTestDB(t)}

	if _, err := svc.Get(context.Background(), "yok"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("err = %v, want ErrWordNotFound", err)
	}
}

func TestWordGet_IncludesRelations(t *testing.T) {
	svc := &WordService{DB: newTestDB(t)}
	words := seedWords(t, svc, "kitap", "defter")

	rel := domain.RelatedWord{WordID: words[0].ID, RelatedWordID: words[1].ID}
	if err := svc.DB.Create(&rel).Error; err != nil {
		t.Fatalf("seed relation: %v", err)
	}

	detail, err := svc.Get(context.Background(), "kitap")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.RelatedWords) != 1 || detail.RelatedWords[0].RelatedWordID != words[1].ID {
		t.Fatalf("related words = %+v", detail.RelatedWords)
	}
}

func TestWordSearch_Pagination(t *testing.T) {
	svc := &WordService{DB: newTestDB(t)}
	seedWords(t, svc, "kitap", "kitaplık", "defter")

	page, err := svc.Search(context.Background(), "kitap", 1, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total = %d, want 2", page.Total)
	}
	if len(page.Items) != 1 {
		t.Fatalf("page size = %d, want 1", len(page.Items))
	}
}

func TestWordSuggest_BeforeReloadIsEmpty(t *testing.T) {
	svc := &WordService{DB: newTestDB(t)}

	if got := svc.Suggest("kit", 5); len(got) != 0 {
		t.Fatalf("suggest before reload = %+v, want empty", got)
	}
}

func TestWordSuggest_AfterReload(t *testing.T) {
	svc := &WordService{DB: newTestDB(t)}
	seedWords(t, svc, "kitap", "kitaplık", "defter")

	if err := svc.ReloadIndex(context.Background()); err != nil {
		t.Fatalf("reload index: %v", err)
	}

	got := svc.Suggest("kitap", 5)
	if len(got) == 0 {
		t.Fatal("no suggestions after reload")
	}
	if got[0].Name != "kitap" {
		t.Fatalf("top suggestion = %q, want kitap", got[0].Name)
	}
	for _, r := range got {
		if r.Name == "defter" {
			t.Fatal("unrelated word suggested for kitap")
		}
	}
}
