package server

import (
	"context"
	"net/http"
	"strings"
)

const loginPathPrefix = "/api/auth/login"

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity the gate attached to the request, if
// any. Handlers receive an explicit (User, ok) rather than poking at
// shared request state.
func CurrentUser(r *http.Request) (User, bool) {
	u, ok := r.Context().Value(currentUserKey).(User)
	return u, ok
}

func withUser(r *http.Request, u User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// RequireAuth is the authorization gate every request passes through.
//
// With an Authorization header the token is the second space-separated
// field (scheme assumed Bearer, not validated; a header without a space
// yields an empty token that matches nobody). A match attaches the user
// to the context; no match is a hard 401, even on the login path. Without
// a header only the login path proceeds, anonymous; everything else is
// 403. Paths in the skip set bypass the gate entirely.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		if header := r.Header.Get("Authorization"); header != "" {
			var token string
			if fields := strings.Split(header, " "); len(fields) > 1 {
				token = fields[1]
			}
			user, ok := a.Store.Authenticate(token)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid token"})
				return
			}
			next.ServeHTTP(w, withUser(r, user))
			return
		}

		if strings.HasPrefix(r.URL.Path, loginPathPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Authorization required"})
	})
}

// requireManager is the role gate for manager-only mutations: exact
// string match, no hierarchy. Returns ok=false after writing the 403.
func (a *API) requireManager(w http.ResponseWriter, r *http.Request) (User, bool) {
	user, ok := CurrentUser(r)
	if !ok || user.Role != "manager" {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Access denied"})
		return User{}, false
	}
	return user, true
}
