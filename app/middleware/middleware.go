package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"inkpress/app/auth"
)

type contextKey int

const identityKey contextKey = iota

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WithIdentity resolves the session cookie into an identity and stores it in
// the request context. A missing, expired or tampered token simply leaves
// the request anonymous; rejection is the guards' job.
func WithIdentity(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err == nil {
				if identity, err := tm.Verify(cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Identity returns the authenticated identity for the request, or nil when
// the request is anonymous.
func Identity(r *http.Request) *auth.Identity {
	identity, _ := r.Context().Value(identityKey).(*auth.Identity)
	return identity
}

// RequireAuth redirects anonymous requests to the login page before the
// handler body runs.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if Identity(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin denies any request whose identity is not the administrator.
// The denial happens before the handler body, so no mutation can partially
// complete.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !Identity(r).IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
