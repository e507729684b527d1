package middleware

import (
	"net/http"

	"github.com/nsharda/newscheck/internal/auth"
	"github.com/nsharda/newscheck/internal/store"
)

// SessionCookieName is the cookie carrying the session token. Handlers use
// it to set and clear the cookie; middleware uses it to resolve identity.
const SessionCookieName = "newscheck_session"

// RequireAuth gates protected routes: a request without a valid session is
// redirected to the login page instead of reaching the handler. On success
// the request context carries the user's id, name, and email.
func RequireAuth(sessions *store.SessionStore, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := resolveSession(r, sessions, users)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), ac)))
		})
	}
}

// LoadSession populates the auth context when a valid session cookie is
// present but never blocks the request. Public pages use it to show login
// state.
func LoadSession(sessions *store.SessionStore, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ac, ok := resolveSession(r, sessions, users); ok {
				r = r.WithContext(auth.WithAuth(r.Context(), ac))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveSession(r *http.Request, sessions *store.SessionStore, users *store.UserStore) (auth.AuthContext, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return auth.AuthContext{}, false
	}

	sess, err := sessions.GetByToken(cookie.Value)
	if err != nil || sess == nil {
		return auth.AuthContext{}, false
	}

	user, err := users.GetByID(sess.UserID)
	if err != nil || user == nil {
		return auth.AuthContext{}, false
	}

	return auth.AuthContext{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		SessionID: sess.ID,
	}, true
}
