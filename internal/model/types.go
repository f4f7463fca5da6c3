package model

import "time"

// User represents an account in the system.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"displayName,omitempty"`
	PasswordHash string    `json:"-"`
	CreationTime time.Time `json:"creationTime"`
}

// JournalEntry is one immutable mood/gratitude record owned by a user.
// Entries are created once and never updated or deleted.
type JournalEntry struct {
	EntryID         string    `json:"id"`
	UserID          string    `json:"userId"`
	Mood            int       `json:"mood"`
	Gratitude       string    `json:"gratitude"`
	AdditionalNotes string    `json:"additionalNotes"`
	Date            time.Time `json:"date"`
	Tags            []string  `json:"tags"`
}

// TrendPoint is one (date, mood, gratitude) tuple in the ascending stats
// output. Date is a bare calendar date; two entries logged on the same day
// remain two separate points.
type TrendPoint struct {
	Date      string `json:"date"`
	Mood      int    `json:"mood"`
	Gratitude string `json:"gratitude"`
}

// MoodStats is the aggregate view over a trailing window of entries.
type MoodStats struct {
	MoodTrend    []TrendPoint `json:"moodTrend"`
	AverageMood  float64      `json:"averageMood"`
	TotalEntries int          `json:"totalEntries"`
}

// ListEntriesRequest captures filters used when listing entries.
// Since is inclusive: an entry dated exactly at the window edge matches.
type ListEntriesRequest struct {
	UserID    string
	Since     time.Time
	Ascending bool
}
