package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/store"
)

// sqliteStore implements store.Store on a local SQLite file. It backs the
// "local" build target and the unit tests.
type sqliteStore struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database file and ensures the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store onto an existing connection and ensures the schema.
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Users (
            UserId TEXT PRIMARY KEY,
            Email TEXT NOT NULL UNIQUE,
            DisplayName TEXT,
            PasswordHash TEXT NOT NULL,
            CreationTime TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS JournalEntries (
            EntryId TEXT PRIMARY KEY,
            UserId TEXT NOT NULL,
            Mood INTEGER NOT NULL CHECK (Mood BETWEEN 1 AND 5),
            Gratitude TEXT NOT NULL,
            AdditionalNotes TEXT NOT NULL DEFAULT '',
            EntryDate TIMESTAMP NOT NULL,
            Tags TEXT
        );`,
		`CREATE INDEX IF NOT EXISTS JournalEntriesUserDateIdx
            ON JournalEntries (UserId, EntryDate DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) Users() store.Users     { return &users{db: s.db} }
func (s *sqliteStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Users ---
type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `INSERT INTO Users (UserId, Email, DisplayName, PasswordHash, CreationTime) VALUES (?,?,?,?,?)`,
		id, m.Email, m.DisplayName, m.PasswordHash, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, model.ErrConflict
		}
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreationTime = now
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT UserId, Email, DisplayName, PasswordHash, CreationTime FROM Users WHERE UserId = ?`, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT UserId, Email, DisplayName, PasswordHash, CreationTime FROM Users WHERE Email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var out model.User
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.PasswordHash, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// --- Entries ---
type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.JournalEntry) (*model.JournalEntry, error) {
	entryID := uuid.New().String()
	tagsJSON, _ := json.Marshal(m.Tags)
	date := m.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	_, err := e.db.ExecContext(ctx, `INSERT INTO JournalEntries (EntryId, UserId, Mood, Gratitude, AdditionalNotes, EntryDate, Tags) VALUES (?,?,?,?,?,?,?)`,
		entryID, m.UserID, m.Mood, m.Gratitude, m.AdditionalNotes, date, string(tagsJSON))
	if err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = entryID
	out.Date = date
	return &out, nil
}

func (e *entries) ListSince(ctx context.Context, req model.ListEntriesRequest) ([]*model.JournalEntry, error) {
	q := `SELECT EntryId, UserId, Mood, Gratitude, AdditionalNotes, EntryDate, Tags
          FROM JournalEntries WHERE UserId = ? AND EntryDate >= ? ORDER BY EntryDate `
	if req.Ascending {
		q += "ASC"
	} else {
		q += "DESC"
	}
	rows, err := e.db.QueryContext(ctx, q, req.UserID, req.Since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.JournalEntry
	for rows.Next() {
		var m model.JournalEntry
		var tags sql.NullString
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.Mood, &m.Gratitude, &m.AdditionalNotes, &m.Date, &tags); err != nil {
			return nil, err
		}
		m.Tags = []string{}
		if tags.Valid {
			_ = json.Unmarshal([]byte(tags.String), &m.Tags)
		}
		if m.Tags == nil {
			m.Tags = []string{}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
