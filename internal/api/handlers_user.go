package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emofit/emofit-server/internal/api/respond"
	"github.com/emofit/emofit-server/internal/api/validate"
	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/services"
)

// TokenIssuer mints bearer tokens for freshly authenticated users.
type TokenIssuer interface {
	IssueToken(userID string) (string, error)
}

type UserHandler struct {
	svc    *services.UserService
	tokens TokenIssuer
}

func NewUserHandler(svc *services.UserService, tokens TokenIssuer) *UserHandler {
	return &UserHandler{svc: svc, tokens: tokens}
}

// Register POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string  `json:"email"`
		DisplayName *string `json:"displayName,omitempty"`
		Password    string  `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	var violations []model.FieldViolation
	if err := validate.Email(req.Email); err != nil {
		violations = append(violations, model.FieldViolation{Field: "email", Message: err.Error()})
	}
	if err := validate.Password(req.Password); err != nil {
		violations = append(violations, model.FieldViolation{Field: "password", Message: err.Error()})
	}
	if len(violations) > 0 {
		respond.WriteValidationErrors(w, violations)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			respond.WriteConflict(w, "User already exists")
			return
		}
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.IssueToken(u.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"user": u, "token": token})
}

// Login POST /api/auth
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.WriteUnauthorized(w, "Invalid Credentials")
			return
		}
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.IssueToken(u.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"token": token})
}
