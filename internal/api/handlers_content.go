package api

import (
	"net/http"

	"github.com/emofit/emofit-server/internal/api/respond"
	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/content"
)

// ContentHandler serves proxied wellness content. Responses are always 200:
// upstream faults degrade to fallback payloads inside the content service.
type ContentHandler struct {
	svc        *content.Service
	authorizer auth.Authorizer
}

func NewContentHandler(svc *content.Service, authorizer auth.Authorizer) *ContentHandler {
	return &ContentHandler{svc: svc, authorizer: authorizer}
}

func (h *ContentHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	token, err := auth.ExtractBearerToken(r)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return false
	}
	if _, err := h.authorizer.Authorize(r.Context(), token); err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return false
	}
	return true
}

// Quotes GET /api/external/quotes
func (h *ContentHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	out, _ := h.svc.Quotes(r.Context())
	respond.WriteJSON(w, http.StatusOK, out)
}

// Recipes GET /api/external/recipes?query=
func (h *ContentHandler) Recipes(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	out, _ := h.svc.Recipes(r.Context(), r.URL.Query().Get("query"))
	respond.WriteJSON(w, http.StatusOK, out)
}

// WellnessTips GET /api/external/wellness-tips
func (h *ContentHandler) WellnessTips(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	out, _ := h.svc.WellnessTips(r.Context())
	respond.WriteJSON(w, http.StatusOK, out)
}
