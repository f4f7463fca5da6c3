package store

import (
	"context"

	"github.com/emofit/emofit-server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Entries() Entries
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Entries persists journal entries. Create is a single atomic insert;
// there is no update or delete.
type Entries interface {
	Create(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error)
	ListSince(ctx context.Context, req model.ListEntriesRequest) ([]*model.JournalEntry, error)
}
