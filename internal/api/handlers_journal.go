package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emofit/emofit-server/internal/api/respond"
	"github.com/emofit/emofit-server/internal/api/validate"
	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/services"
)

type JournalHandler struct {
	svc        *services.JournalService
	authorizer auth.Authorizer
}

func NewJournalHandler(svc *services.JournalService, authorizer auth.Authorizer) *JournalHandler {
	return &JournalHandler{svc: svc, authorizer: authorizer}
}

// authorize resolves the caller identity or writes a 401 and returns nil.
func (h *JournalHandler) authorize(w http.ResponseWriter, r *http.Request) *auth.UserInfo {
	token, err := auth.ExtractBearerToken(r)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return nil
	}
	info, err := h.authorizer.Authorize(r.Context(), token)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return nil
	}
	return info
}

// CreateEntry POST /api/journal
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := h.authorize(w, r)
	if user == nil {
		return
	}

	// Mood is decoded as *float64 so "mood": 3.5 reports a mood violation
	// instead of an opaque decode error.
	var req struct {
		Mood            *float64   `json:"mood"`
		Gratitude       string     `json:"gratitude"`
		AdditionalNotes string     `json:"additionalNotes"`
		Date            *time.Time `json:"date,omitempty"`
		Tags            []string   `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	if violations := validate.EntryInput(req.Mood, req.Gratitude, req.AdditionalNotes); len(violations) > 0 {
		respond.WriteValidationErrors(w, violations)
		return
	}

	in := services.CreateEntryInput{
		Mood:            int(*req.Mood),
		Gratitude:       req.Gratitude,
		AdditionalNotes: req.AdditionalNotes,
		Tags:            req.Tags,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	out, err := h.svc.CreateEntry(r.Context(), user.UserID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListEntries GET /api/journal?days=N
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := h.authorize(w, r)
	if user == nil {
		return
	}

	days, violation := validate.Days(r.URL.Query().Get("days"))
	if violation != nil {
		respond.WriteValidationErrors(w, []model.FieldViolation{*violation})
		return
	}

	out, err := h.svc.ListEntries(r.Context(), user.UserID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Stats GET /api/journal/stats?days=N
func (h *JournalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := h.authorize(w, r)
	if user == nil {
		return
	}

	days, violation := validate.Days(r.URL.Query().Get("days"))
	if violation != nil {
		respond.WriteValidationErrors(w, []model.FieldViolation{*violation})
		return
	}

	out, err := h.svc.Stats(r.Context(), user.UserID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// writeServiceError maps service errors onto the HTTP taxonomy. Storage
// detail is logged server-side only; the client sees a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.WriteValidationErrors(w, vErr.Violations)
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, "already exists")
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "not found")
	default:
		log.Error().Err(err).Msg("request failed")
		respond.WriteInternalError(w, "Server Error")
	}
}
