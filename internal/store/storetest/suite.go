package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated store
// and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := uuid.New().String()
	email := userID + "@example.test"

	// Users
	u := &model.User{UserID: userID, Email: email, PasswordHash: "x"}
	if _, err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got, err := s.Users().GetByID(ctx, userID); err != nil || got == nil || got.UserID != userID {
		t.Fatalf("GetUserByID: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, email); err != nil || got == nil || got.Email != email {
		t.Fatalf("GetUserByEmail: got=%v err=%v", got, err)
	}
	if _, err := s.Users().GetByID(ctx, uuid.New().String()); err != model.ErrNotFound {
		t.Fatalf("GetUserByID missing: want ErrNotFound, got %v", err)
	}
	dup := &model.User{UserID: uuid.New().String(), Email: email, PasswordHash: "x"}
	if _, err := s.Users().Create(ctx, dup); err == nil {
		t.Fatalf("CreateUser duplicate email: want conflict, got nil")
	}

	// Entries: explicit dates so windowing and ordering are deterministic.
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	moods := []int{3, 5, 2, 4}
	for i, mood := range moods {
		e := &model.JournalEntry{
			UserID:    userID,
			Mood:      mood,
			Gratitude: "grateful",
			Date:      base.AddDate(0, 0, i),
			Tags:      []string{"t"},
		}
		created, err := s.Entries().Create(ctx, e)
		if err != nil {
			t.Fatalf("CreateEntry %d: %v", i, err)
		}
		if created.EntryID == "" {
			t.Fatalf("CreateEntry %d: empty entry id", i)
		}
		if created.Mood != mood {
			t.Fatalf("CreateEntry %d: mood=%d want %d", i, created.Mood, mood)
		}
	}

	// Descending listing covers the whole range.
	desc, err := s.Entries().ListSince(ctx, model.ListEntriesRequest{UserID: userID, Since: base})
	if err != nil || len(desc) != len(moods) {
		t.Fatalf("ListSince desc: n=%d err=%v", len(desc), err)
	}
	for i := 1; i < len(desc); i++ {
		if desc[i].Date.After(desc[i-1].Date) {
			t.Fatalf("ListSince desc: not ordered at %d", i)
		}
	}

	// Ascending listing mirrors it.
	asc, err := s.Entries().ListSince(ctx, model.ListEntriesRequest{UserID: userID, Since: base, Ascending: true})
	if err != nil || len(asc) != len(moods) {
		t.Fatalf("ListSince asc: n=%d err=%v", len(asc), err)
	}
	for i, e := range asc {
		if e.Mood != moods[i] {
			t.Fatalf("ListSince asc: mood[%d]=%d want %d", i, e.Mood, moods[i])
		}
	}

	// Window edge is inclusive: an entry dated exactly Since matches.
	edge, err := s.Entries().ListSince(ctx, model.ListEntriesRequest{UserID: userID, Since: base.AddDate(0, 0, len(moods)-1)})
	if err != nil || len(edge) != 1 {
		t.Fatalf("ListSince edge: n=%d err=%v", len(edge), err)
	}

	// Entries are scoped to the owner.
	other, err := s.Entries().ListSince(ctx, model.ListEntriesRequest{UserID: uuid.New().String(), Since: base})
	if err != nil || len(other) != 0 {
		t.Fatalf("ListSince other user: n=%d err=%v", len(other), err)
	}
}
