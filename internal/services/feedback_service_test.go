package services

import (
	"context"
	"errors"
	"testing"
)

func TestFeedbackCreate_Valid(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}

	f, err := svc.Create(context.Background(), asUser("u1"), "bug", "Arama bozuk", "Öneriler gelmiyor")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.ID == 0 || f.Status != "open" || f.UserID != "u1" {
		t.Fatalf("feedback = %+v", f)
	}
}

func TestFeedbackCreate_Invalid(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	cases := []struct {
		kind, title, desc string
	}{
		{"rant", "t", "d"}, // unknown kind
		{"bug", "", "d"},   // blank title
		{"bug", "t", ""},   // blank description
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, asUser("u1"), c.kind, c.title, c.desc); !errors.Is(err, ErrInvalidFeedback) {
			t.Fatalf("create(%q,%q,%q) err = %v, want ErrInvalidFeedback", c.kind, c.title, c.desc, err)
		}
	}

	if _, err := svc.Create(ctx, Caller{}, "bug", "t", "d"); !errors.Is(err, ErrAnonymousNotAllowed) {
		t.Fatalf("anonymous create err = %v, want ErrAnonymousNotAllowed", err)
	}
}

func TestFeedbackList_NewestFirstWithVotes(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	first, err := svc.Create(ctx, asUser("u1"), "feature", "Koyu tema", "Gece modu istiyorum")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, asUser("u2"), "bug", "Yavaş arama", "Sonuçlar geç geliyor")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.ToggleVote(ctx, asUser("u3"), first.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	items, total, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total=%d len=%d, want 2/2", total, len(items))
	}
	if items[0].ID != second.ID {
		t.Fatalf("first item = %d, want newest %d", items[0].ID, second.ID)
	}
	for _, it := range items {
		want := int64(0)
		if it.ID == first.ID {
			want = 1
		}
		if it.Votes != want {
			t.Fatalf("votes for %d = %d, want %d", it.ID, it.Votes, want)
		}
	}
}

func TestFeedbackToggleVote(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	f, err := svc.Create(ctx, asUser("u1"), "other", "Teşekkürler", "Güzel proje")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	voted, err := svc.ToggleVote(ctx, asUser("u2"), f.ID)
	if err != nil || !voted {
		t.Fatalf("toggle on = (%v, %v), want (true, nil)", voted, err)
	}
	voted, err = svc.ToggleVote(ctx, asUser("u2"), f.ID)
	if err != nil || voted {
		t.Fatalf("toggle off = (%v, %v), want (false, nil)", voted, err)
	}

	if _, err := svc.ToggleVote(ctx, asUser("u2"), 999); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("missing feedback err = %v, want ErrFeedbackNotFound", err)
	}
	if _, err := svc.ToggleVote(ctx, Caller{}, f.ID); !errors.Is(err, ErrAnonymousNotAllowed) {
		t.Fatalf("anonymous toggle err = %v, want ErrAnonymousNotAllowed", err)
	}
}
