package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// probe records whether the gate let the request through and what
// identity it attached.
type probe struct {
	called bool
	user   User
	hasID  bool
}

func (p *probe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.user, p.hasID = CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestGateRejections(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantError  string
	}{
		{"no header, non-login path", "/api/pods/details", "", http.StatusForbidden, "Authorization required"},
		{"unknown token", "/api/pods/details", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"header without space", "/api/pods/details", "abc123", http.StatusUnauthorized, "Invalid token"},
		{"bad token on login path", "/api/auth/login", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			p := &probe{}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			api.RequireAuth(p.handler()).ServeHTTP(rec, req)

			if p.called {
				t.Fatal("gate must not invoke the handler")
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := errorMessage(t, rec); msg != tt.wantError {
				t.Errorf("error = %q, want %q", msg, tt.wantError)
			}
		})
	}
}

func TestGateAttachesIdentity(t *testing.T) {
	api := newTestAPI(t)
	p := &probe{}

	req := httptest.NewRequest(http.MethodGet, "/api/pods/details", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rec := httptest.NewRecorder()
	api.RequireAuth(p.handler()).ServeHTTP(rec, req)

	if !p.called {
		t.Fatalf("handler not reached, status %d", rec.Code)
	}
	if !p.hasID || p.user.ID != 1 || p.user.Role != "manager" {
		t.Errorf("attached identity = %+v (ok=%v)", p.user, p.hasID)
	}
}

func TestGateAllowsAnonymousLogin(t *testing.T) {
	api := newTestAPI(t)
	p := &probe{}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	api.RequireAuth(p.handler()).ServeHTTP(rec, req)

	if !p.called {
		t.Fatalf("login must pass without a header, status %d", rec.Code)
	}
	if p.hasID {
		t.Error("anonymous login must carry no identity")
	}
}

func TestGateSkipPaths(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/health", "/metrics"} {
		p := &probe{}
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		api.RequireAuth(p.handler()).ServeHTTP(rec, req)
		if !p.called {
			t.Errorf("%s must bypass the gate, status %d", path, rec.Code)
		}
	}
}
