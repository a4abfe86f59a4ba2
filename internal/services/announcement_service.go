package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
	"github.com/4Furki4/turkish-dictionary/internal/repo"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a Turkish title: lowercase with
// Turkish rules, transliterate the Turkish letters, collapse the rest to
// hyphens.
func Slugify(title string) string {
	s := NormalizeTurkish(title)
	replacer := strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	)
	s = replacer.Replace(s)
	s = slugCleaner.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// AnnouncementService implements the site-announcement surface: admins
// create and edit, everyone reads published items.
type AnnouncementService struct {
	// DB is the database handle used for all announcement operations.
	DB *gorm.DB
}

// AnnouncementInput carries the writable announcement fields. A nil Publish
// leaves the published state unchanged on update; on create it means draft.
type AnnouncementInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Publish *bool  `json:"publish"`
}

// Create stores a new announcement. The slug is derived from the title.
func (s *AnnouncementService) Create(ctx context.Context, caller Caller, in AnnouncementInput) (*domain.Announcement, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, ErrInvalidAnnouncement
	}
	slug := Slugify(title)
	if slug == "" {
		return nil, ErrInvalidAnnouncement
	}

	a := &domain.Announcement{
		Slug:    slug,
		Title:   title,
		Content: content,
	}
	if in.Publish != nil && *in.Publish {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	if err := repo.CreateAnnouncement(ctx, s.DB, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update sparse-patches an announcement. Only the provided fields change;
// toggling Publish sets or clears published_at.
func (s *AnnouncementService) Update(ctx context.Context, caller Caller, id uint64, in AnnouncementInput) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}

	patch := map[string]any{"updated_at": time.Now().UTC()}
	if title := strings.TrimSpace(in.Title); title != "" {
		patch["title"] = title
		patch["slug"] = Slugify(title)
	}
	if content := strings.TrimSpace(in.Content); content != "" {
		patch["content"] = content
	}
	if in.Publish != nil {
		if *in.Publish {
			patch["published_at"] = time.Now().UTC()
		} else {
			patch["published_at"] = nil
		}
	}

	if err := repo.UpdateAnnouncement(ctx, s.DB, id, patch); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return nil
}

// Delete soft-deletes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, caller Caller, id uint64) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if err := repo.DeleteAnnouncement(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return nil
}

// Get returns a single announcement by slug. Non-admin callers only see
// published items.
func (s *AnnouncementService) Get(ctx context.Context, caller Caller, slug string) (*domain.Announcement, error) {
	a, err := repo.GetAnnouncementBySlug(ctx, s.DB, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	if a.PublishedAt == nil && !caller.IsAdmin() {
		return nil, ErrAnnouncementNotFound
	}
	return a, nil
}

// List returns announcements newest first. Admins also see drafts.
func (s *AnnouncementService) List(ctx context.Context, caller Caller, limit int) ([]domain.Announcement, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return repo.ListAnnouncements(ctx, s.DB, !caller.IsAdmin(), limit)
}
