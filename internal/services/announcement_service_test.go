package services

import (
	"context"
	"errors"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Yeni Özellik: Kelime Önerileri": "yeni-ozellik-kelime-onerileri",
		"Bakım  Duyurusu":                "bakim-duyurusu",
		"IŞIK ve GÖLGE":                  "isik-ve-golge",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAnnouncementCreate_AdminOnly(t *testing.T) {
	svc := &AnnouncementService{DB: newTestDB(t)}
	ctx := context.Background()

	in := AnnouncementInput{Title: "Duyuru", Content: "İçerik"}
	for _, c := range []Caller{{}, asUser("u1"), asModerator("m1")} {
		if _, err := svc.Create(ctx, c, in); !errors.Is(err, ErrForbidden) {
			t.Fatalf("create as %+v err = %v, want ErrForbidden", c, err)
		}
	}

	a, err := svc.Create(ctx, asAdmin("a1"), in)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if a.Slug != "duyuru" {
		t.Fatalf("slug = %q, want duyuru", a.Slug)
	}
	if a.PublishedAt != nil {
		t.Fatal("new announcement published without Publish flag")
	}
}

func TestAnnouncementCreate_Invalid(t *testing.T) {
	svc := &AnnouncementService{DB: newTestDB(t)}
	ctx := context.Background()

	for _, in := range []AnnouncementInput{
		{Title: "", Content: "x"},
		{Title: "x", Content: ""},
	} {
		if _, err := svc.Create(ctx, asAdmin("a1"), in); !errors.Is(err, ErrInvalidAnnouncement) {
			t.Fatalf("create %+v err = %v, want ErrInvalidAnnouncement", in, err)
		}
	}
}

func TestAnnouncement_DraftVisibility(t *testing.T) {
	svc := &AnnouncementService{DB: newTestDB(t)}
	ctx := context.Background()

	draft, err := svc.Create(ctx, asAdmin("a1"), AnnouncementInput{Title: "Taslak", Content: "Henüz hazır değil"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := svc.Create(ctx, asAdmin("a1"), AnnouncementInput{
		Title: "Canlı", Content: "Yayında", Publish: boolPtr(true),
	}); err != nil {
		t.Fatalf("create published: %v", err)
	}

	// Public readers see only published items.
	if _, err := svc.Get(ctx, asUser("u1"), draft.Slug); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("public draft read err = %v, want ErrAnnouncementNotFound", err)
	}
	list, err := svc.List(ctx, asUser("u1"), 10)
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "canli" {
		t.Fatalf("public list = %+v, want only the published item", list)
	}

	// Admins see drafts too.
	if _, err := svc.Get(ctx, asAdmin("a1"), draft.Slug); err != nil {
		t.Fatalf("admin draft read: %v", err)
	}
	list, err = svc.List(ctx, asAdmin("a1"), 10)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("admin list len = %d, want 2", len(list))
	}
}

func TestAnnouncementUpdate_PublishToggle(t *testing.T) {
	svc := &AnnouncementService{DB: newTestDB(t)}
	ctx := context.Background()

	a, err := svc.Create(ctx, asAdmin("a1"), AnnouncementInput{Title: "Duyuru", Content: "İçerik"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, asAdmin("a1"), a.ID, AnnouncementInput{Publish: boolPtr(true)}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := svc.Get(ctx, asUser("u1"), a.Slug)
	if err != nil {
		t.Fatalf("public read after publish: %v", err)
	}
	if got.PublishedAt == nil {
		t.Fatal("published_at not set")
	}

	if err := svc.Update(ctx, asAdmin("a1"), a.ID, AnnouncementInput{Publish: boolPtr(false)}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, err := svc.Get(ctx, asUser("u1"), a.Slug); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("public read after unpublish err = %v, want ErrAnnouncementNotFound", err)
	}

	if err := svc.Update(ctx, asAdmin("a1"), 999, AnnouncementInput{Title: "x", Content: "y"}); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("missing update err = %v, want ErrAnnouncementNotFound", err)
	}
}

func TestAnnouncementDelete(t *testing.T) {
	svc := &AnnouncementService{DB: newTestDB(t)}
	ctx := context.Background()

	a, err := svc.Create(ctx, asAdmin("a1"), AnnouncementInput{
		Title: "Silinecek", Content: "İçerik", Publish: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, asUser("u1"), a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin delete err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, asAdmin("a1"), a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, asAdmin("a1"), a.Slug); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("read after delete err = %v, want ErrAnnouncementNotFound", err)
	}
	if err := svc.Delete(ctx, asAdmin("a1"), a.ID); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("second delete err = %v, want ErrAnnouncementNotFound", err)
	}
}
