package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users     { return &users{db: s.db} }
func (s *pgStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap opens a connection and applies the embedded schema. Statements
// are idempotent so repeated startups are safe.
func Bootstrap(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	for _, stmt := range schemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

func schemaStatements() []string {
	parts := strings.Split(schemaSQL, ";")
	var out []string
	for _, p := range parts {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// --- Users ---
type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (user_id, email, display_name, password_hash)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, m.Email, m.DisplayName, m.PasswordHash)
	if err := row.Scan(&created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("email already registered: %w", model.ErrConflict)
		}
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreationTime = created
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, creation_time
        FROM users WHERE email=$1
    `, email)
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
	var date time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO journal_entries (entry_id, user_id, mood, gratitude, additional_notes, entry_date, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING entry_date
    `, entryID, m.UserID, m.Mood, m.Gratitude, m.AdditionalNotes, m.Date, tagsJSON)
	if err := row.Scan(&date); err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = entryID
	out.Date = date
	return &out, nil
}

func (e *entries) ListSince(ctx context.Context, req model.ListEntriesRequest) ([]*model.JournalEntry, error) {
	query := `SELECT entry_id, user_id, mood, gratitude, additional_notes, entry_date, tags
              FROM journal_entries WHERE user_id=$1 AND entry_date >= $2 ORDER BY entry_date `
	if req.Ascending {
		query += "ASC"
	} else {
		query += "DESC"
	}
	rows, err := e.db.QueryContext(ctx, query, req.UserID, req.Since)
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
		m.Tags = decodeTags(tags)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func decodeTags(tags sql.NullString) []string {
	out := []string{}
	if tags.Valid {
		_ = json.Unmarshal([]byte(tags.String), &out)
	}
	if out == nil {
		out = []string{}
	}
	return out
}
