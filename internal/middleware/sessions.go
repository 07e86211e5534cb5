package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type contextKey string

const (
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// Session is one issued login token
type Session struct {
	Username string
	Role     string
}

// SessionStore keeps issued tokens in memory. Tokens live until the process
// restarts; the demo deployment this replaces had no expiry either.
type SessionStore struct {
	mu     sync.RWMutex
	tokens map[string]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{tokens: make(map[string]Session)}
}

// Issue creates a token for a logged-in user
func (s *SessionStore) Issue(username, role string) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = Session{Username: username, Role: role}
	s.mu.Unlock()
	return token
}

func (s *SessionStore) Lookup(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.tokens[token]
	return sess, ok
}

// Middleware validates the Bearer token on protected routes. Health,
// metrics and login stay open.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/health",
			r.URL.Path == "/metrics",
			strings.HasSuffix(r.URL.Path, "/login"):
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		sess, ok := s.Lookup(token)
		if !ok {
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, sess.Username)
		ctx = context.WithValue(ctx, RoleKey, sess.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
