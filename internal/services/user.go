package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/store"
)

// UserService handles registration and credential checks.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

// Register hashes the password and creates the account. A duplicate email
// surfaces as model.ErrConflict.
func (s *UserService) Register(ctx context.Context, email string, displayName *string, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}
	return s.store.Users().Create(ctx, u)
}

// Authenticate resolves an email/password pair to the stored user. Unknown
// emails and wrong passwords both map to ErrInvalidCredentials so the two
// cases are indistinguishable to a caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}
	return u, nil
}
