// Package web is the JSON web application: login-gated endpoints routing
// medical questions and patient-data queries through the tool registry.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/m-mizutani/medlar/pkg/repository"
	"github.com/m-mizutani/medlar/pkg/service/session"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
)

const (
	sessionCookie = "session_id"
	sessionTTL    = 24 * time.Hour
)

// Server wires the web endpoints to the registry, the patient store and
// the session store. It holds no request state of its own; all shared
// mutable state lives behind the session store's lock.
type Server struct {
	store    repository.Store
	registry *tool.Registry
	sessions session.Store
	users    map[string]User
	logger   *slog.Logger
	router   *mux.Router
}

// New creates the web server with the demo account table
func New(store repository.Store, registry *tool.Registry, sessions session.Store, logger *slog.Logger) *Server {
	s := &Server{
		store:    store,
		registry: registry,
		sessions: sessions,
		users:    DemoUsers(),
		logger:   logger,
	}

	r := mux.NewRouter()
	r.Use(s.logMiddleware)

	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc("/medical-query", s.handleMedicalQuery).Methods(http.MethodPost)
	api.HandleFunc("/symptom-check", s.handleSymptomCheck).Methods(http.MethodPost)
	api.HandleFunc("/patient-query", s.handlePatientQuery).Methods(http.MethodPost)

	s.router = r
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.With(r.Context(), s.logger)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.currentUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		r.Header.Set(userHeader, username)
		next.ServeHTTP(w, r)
	})
}

// userHeader carries the authenticated username from the middleware to the
// handler within one request
const userHeader = "X-Medlar-User"

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
