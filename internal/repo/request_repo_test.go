package repo

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid schema leakage.
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func strptr(s string) *string { return &s }

func u64ptr(v uint64) *uint64 { return &v }

func TestCreateRequest_And_Get(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	r, err := CreateRequest(ctx, db, domain.EntityWord, domain.ActionCreate, nil, []byte(`{"name":"kitap"}`), strptr("u1"))
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if r.ID == 0 || r.Status != domain.StatusPending {
		t.Fatalf("unexpected request: %+v", r)
	}

	got, err := GetRequest(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if got.EntityType != domain.EntityWord || got.Action != domain.ActionCreate || got.UserID == nil || *got.UserID != "u1" {
		t.Fatalf("readback mismatch: %+v", got)
	}

	if _, err := GetRequest(ctx, db, 999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestHasPendingDuplicate_CreateByName(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	if _, err := CreateRequest(ctx, db, domain.EntityWord, domain.ActionCreate, nil, []byte(`{"name":"kitap"}`), nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	dup, err := HasPendingDuplicate(ctx, db, domain.EntityWord, domain.ActionCreate, nil, "kitap")
	if err != nil || !dup {
		t.Fatalf("expected duplicate for same proposed name, got dup=%v err=%v", dup, err)
	}

	dup, err = HasPendingDuplicate(ctx, db, domain.EntityWord, domain.ActionCreate, nil, "defter")
	if err != nil || dup {
		t.Fatalf("expected no duplicate for different name, got dup=%v err=%v", dup, err)
	}

	// With neither a target id nor a name there is nothing to probe.
	dup, err = HasPendingDuplicate(ctx, db, domain.EntityWord, domain.ActionCreate, nil, "")
	if err != nil || dup {
		t.Fatalf("expected no duplicate for empty probe, got dup=%v err=%v", dup, err)
	}
}

func TestHasPendingDuplicate_ByTargetID_IgnoresResolved(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	r, err := CreateRequest(ctx, db, domain.EntityWord, domain.ActionUpdate, u64ptr(7), []byte(`{"phonetic":"x"}`), strptr("u1"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	dup, err := HasPendingDuplicate(ctx, db, domain.EntityWord, domain.ActionUpdate, u64ptr(7), "")
	if err != nil || !dup {
		t.Fatalf("expected duplicate for same target, got dup=%v err=%v", dup, err)
	}

	// A different action on the same target is not a duplicate.
	dup, err = HasPendingDuplicate(ctx, db, domain.EntityWord, domain.ActionDelete, u64ptr(7), "")
	if err != nil || dup {
		t.Fatalf("expected no duplicate across actions, got dup=%v err=%v", dup, err)
	}

	// Resolving the request clears the way for a new one.
	if err := ResolveRequest(ctx, db, r.ID, domain.StatusRejected, "m1", nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	dup, err = HasPendingDuplicate(ctx, db, domain.EntityWord, domain.ActionUpdate, u64ptr(7), "")
	if err != nil || dup {
		t.Fatalf("expected no duplicate after resolution, got dup=%v err=%v", dup, err)
	}
}

func TestResolveRequest_SecondTransitionFails(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	r, err := CreateRequest(ctx, db, domain.EntityAuthor, domain.ActionCreate, nil, []byte(`{"name":"Orhan Veli"}`), strptr("u1"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	reason := "insufficient sources"
	if err := ResolveRequest(ctx, db, r.ID, domain.StatusRejected, "m1", &reason); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	got, err := GetRequest(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.Status != domain.StatusRejected || got.ModeratorID == nil || *got.ModeratorID != "m1" || got.Reason == nil || *got.Reason != reason {
		t.Fatalf("resolution not persisted: %+v", got)
	}

	// The status guard makes the second transition a no-op.
	if err := ResolveRequest(ctx, db, r.ID, domain.StatusApproved, "m2", nil); err != ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	// Same for a row that never existed.
	if err := ResolveRequest(ctx, db, 12345, domain.StatusApproved, "m2", nil); err != ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved for missing row, got %v", err)
	}
}

func TestListPendingPage_FilterAndOrder(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	seeds := []struct {
		et   domain.EntityType
		data string
	}{
		{domain.EntityWord, `{"name":"elma"}`},
		{domain.EntityWord, `{"name":"armut"}`},
		{domain.EntityAuthor, `{"name":"Nazim Hikmet"}`},
	}
	for _, s := range seeds {
		if _, err := CreateRequest(ctx, db, s.et, domain.ActionCreate, nil, []byte(s.data), nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	total, err := CountPending(ctx, db, PendingFilter{})
	if err != nil || total != 3 {
		t.Fatalf("CountPending all = %d, err=%v", total, err)
	}

	words, err := ListPendingPage(ctx, db, PendingFilter{EntityType: domain.EntityWord}, 0, 10)
	if err != nil || len(words) != 2 {
		t.Fatalf("word filter: %d rows, err=%v", len(words), err)
	}
	// FIFO order: elma was filed first.
	if words[0].ID > words[1].ID {
		t.Fatalf("expected oldest first, got ids %d, %d", words[0].ID, words[1].ID)
	}

	matched, err := ListPendingPage(ctx, db, PendingFilter{SearchTerm: "armut"}, 0, 10)
	if err != nil || len(matched) != 1 {
		t.Fatalf("search filter: %d rows, err=%v", len(matched), err)
	}
}

func TestListByUserPage_OnlyOwnRows(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	for i, uid := range []string{"u1", "u1", "u2"} {
		data := fmt.Sprintf(`{"name":"w%d"}`, i)
		if _, err := CreateRequest(ctx, db, domain.EntityWord, domain.ActionCreate, nil, []byte(data), strptr(uid)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	// Anonymous row should never show up in anyone's list.
	if _, err := CreateRequest(ctx, db, domain.EntityWord, domain.ActionCreate, nil, []byte(`{"name":"anon"}`), nil); err != nil {
		t.Fatalf("seed anon: %v", err)
	}

	total, err := CountByUser(ctx, db, "u1")
	if err != nil || total != 2 {
		t.Fatalf("CountByUser = %d, err=%v", total, err)
	}
	rows, err := ListByUserPage(ctx, db, "u1", 0, 10)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByUserPage: %d rows, err=%v", len(rows), err)
	}
	for _, r := range rows {
		if r.UserID == nil || *r.UserID != "u1" {
			t.Fatalf("foreign row leaked: %+v", r)
		}
	}
}
