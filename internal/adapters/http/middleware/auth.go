package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"ticclub/internal/domain/admin"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "admin_session"

// SessionTTL bounds how long an admin stays logged in.
const SessionTTL = 24 * time.Hour

// SessionStore is an in-memory admin session store keyed by cookie token.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]admin.Session
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]admin.Session),
		now:      time.Now,
	}
}

// Create stores an authenticated session and returns its token.
// PRE: sess.Authenticated is true
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(sess admin.Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = sess
	return token, nil
}

// Get retrieves a session by token.
// POST: Returns the session if present and younger than SessionTTL
func (ss *SessionStore) Get(token string) (admin.Session, bool) {
	ss.mu.RLock()
	sess, ok := ss.sessions[token]
	ss.mu.RUnlock()
	if !ok || !sess.Authenticated {
		return admin.Session{}, false
	}
	if ss.now().Sub(sess.LoginTime) > SessionTTL {
		ss.Delete(token)
		return admin.Session{}, false
	}
	return sess, true
}

// Delete removes a session by token.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "tic_session"

// Auth returns middleware that loads the admin session from the cookie into the context.
// It does NOT block unauthenticated requests; use RequireAdmin for that.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if sess, ok := sessions.Get(cookie.Value); ok {
					r = r.WithContext(ContextWithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminLoginURL is where unauthenticated admin requests are sent.
const AdminLoginURL = "/?admin=true"

// RequireAdmin redirects requests without an authenticated session to the admin login.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).Authenticated {
			http.Redirect(w, r, AdminLoginURL, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the admin session, or the zero (logged out) session.
func SessionFromContext(ctx context.Context) admin.Session {
	sess, _ := ctx.Value(sessionContextKey).(admin.Session)
	return sess
}

// ContextWithSession returns a context with the given session set.
func ContextWithSession(ctx context.Context, sess admin.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response.
// secure sets the cookie's Secure flag and is enabled in production.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
