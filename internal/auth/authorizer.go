package auth

import (
	"context"
)

// UserInfo contains information about an authenticated caller.
type UserInfo struct {
	UserID string `json:"user_id"`
}

// Authorizer resolves a bearer token to a user identity. Handlers must
// resolve identity before touching the store; a failure here means the
// request performs no work at all.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*UserInfo, error)
}
