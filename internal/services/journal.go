package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emofit/emofit-server/internal/api/validate"
	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/store"
)

// CreateEntryInput carries a validated-to-be journal submission. Date may be
// zero, in which case the write is stamped with the service clock.
type CreateEntryInput struct {
	Mood            int
	Gratitude       string
	AdditionalNotes string
	Date            time.Time
	Tags            []string
}

// JournalService orchestrates journal-entry use cases. Handlers resolve the
// caller identity before invoking it; the service never reads identity from
// the payload.
type JournalService struct {
	store store.Store
	now   func() time.Time
}

func NewJournalService(s store.Store) *JournalService {
	return &JournalService{store: s, now: time.Now}
}

// NewJournalServiceWithClock injects a fixed clock for tests.
func NewJournalServiceWithClock(s store.Store, now func() time.Time) *JournalService {
	return &JournalService{store: s, now: now}
}

// CreateEntry validates the submission and performs one atomic insert stamped
// with the caller's userID. Invalid input returns *model.ValidationError
// before any store access.
func (s *JournalService) CreateEntry(ctx context.Context, userID string, in CreateEntryInput) (*model.JournalEntry, error) {
	mood := float64(in.Mood)
	if vs := validate.EntryInput(&mood, in.Gratitude, in.AdditionalNotes); len(vs) > 0 {
		return nil, &model.ValidationError{Violations: vs}
	}

	e := &model.JournalEntry{
		UserID:          userID,
		Mood:            in.Mood,
		Gratitude:       strings.TrimSpace(in.Gratitude),
		AdditionalNotes: strings.TrimSpace(in.AdditionalNotes),
		Date:            in.Date,
		Tags:            trimTags(in.Tags),
	}
	if e.Date.IsZero() {
		e.Date = s.now().UTC()
	}

	out, err := s.store.Entries().Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return out, nil
}

// ListEntries returns the caller's entries in the trailing window, newest
// first. An empty window is an empty slice, not an error.
func (s *JournalService) ListEntries(ctx context.Context, userID string, windowDays int) ([]*model.JournalEntry, error) {
	out, err := s.store.Entries().ListSince(ctx, model.ListEntriesRequest{
		UserID: userID,
		Since:  s.windowStart(windowDays),
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if out == nil {
		out = []*model.JournalEntry{}
	}
	return out, nil
}

// Stats fetches the window in ascending order and aggregates it.
func (s *JournalService) Stats(ctx context.Context, userID string, windowDays int) (*model.MoodStats, error) {
	entries, err := s.store.Entries().ListSince(ctx, model.ListEntriesRequest{
		UserID:    userID,
		Since:     s.windowStart(windowDays),
		Ascending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats := ComputeMoodStats(entries)
	return &stats, nil
}

// windowStart uses calendar subtraction, not elapsed seconds, so "30 days"
// means 30 calendar days regardless of DST.
func (s *JournalService) windowStart(days int) time.Time {
	return s.now().UTC().AddDate(0, 0, -days)
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
