package api

import (
	"github.com/gorilla/mux"

	"github.com/emofit/emofit-server/internal/api/recovery"
	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/content"
	"github.com/emofit/emofit-server/internal/services"
)

// Deps bundles everything the router needs.
type Deps struct {
	Journal    *services.JournalService
	Users      *services.UserService
	Content    *content.Service
	Authorizer auth.Authorizer
	Tokens     TokenIssuer
}

// NewRouter wires HTTP routes to handlers.
func NewRouter(d Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Users & auth
	user := NewUserHandler(d.Users, d.Tokens)
	root.HandleFunc("/api/users", user.Register).Methods("POST")
	root.HandleFunc("/api/auth", user.Login).Methods("POST")

	// Journal
	journal := NewJournalHandler(d.Journal, d.Authorizer)
	root.HandleFunc("/api/journal", journal.CreateEntry).Methods("POST")
	root.HandleFunc("/api/journal", journal.ListEntries).Methods("GET")
	root.HandleFunc("/api/journal/stats", journal.Stats).Methods("GET")

	// External content
	if d.Content != nil {
		ext := NewContentHandler(d.Content, d.Authorizer)
		root.HandleFunc("/api/external/quotes", ext.Quotes).Methods("GET")
		root.HandleFunc("/api/external/recipes", ext.Recipes).Methods("GET")
		root.HandleFunc("/api/external/wellness-tips", ext.WellnessTips).Methods("GET")
	}

	// Health
	healthHandler := NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return root
}
