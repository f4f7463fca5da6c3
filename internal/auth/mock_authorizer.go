package auth

import (
	"context"
)

const (
	// LocalDevToken is the hardcoded bearer token for local development only.
	LocalDevToken = "emofit-local-dev-token"

	// LocalDevUserID is the identity the dev token resolves to.
	LocalDevUserID = "emofit-dev"
)

// MockAuthorizer provides a simple authorizer for local development and
// tests. It only recognizes LocalDevToken.
type MockAuthorizer struct{}

func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

func (m *MockAuthorizer) Authorize(ctx context.Context, token string) (*UserInfo, error) {
	if token != LocalDevToken {
		return nil, ErrInvalidToken
	}
	return &UserInfo{UserID: LocalDevUserID}, nil
}
