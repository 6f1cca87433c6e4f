package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const seedJSON = `{
  "auth": {
    "users": [
      {"id": 1, "name": "Asha Nair", "email": "asha@example.com", "password": "secret1", "role": "manager", "token": "abc123"},
      {"id": 2, "name": "Ben Okafor", "email": "ben@example.com", "password": "secret2", "role": "employee", "token": "def456"}
    ]
  },
  "lms": {
    "leaveApplications": [
      {"id": 5, "userId": 2, "startDate": "2026-09-01", "endDate": "2026-09-05", "reason": "vacation", "status": "pending"},
      {"id": 6, "userId": 2, "status": "pending"}
    ]
  },
  "pods": {
    "details": [{"podId": "pod-alpha", "name": "Alpha", "capacity": 6}],
    "recommendations": [
      {"podId": "pod-alpha", "name": "Alpha", "members": [{"id": 2, "name": "Ben Okafor", "role": "Member"}]}
    ]
  },
  "org": {"name": "Acme"}
}`

// newTestStoreFrom writes doc to a temp file and opens a store on it.
func newTestStoreFrom(t *testing.T, doc string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return newTestStoreFrom(t, seedJSON)
}

func newTestAPI(t *testing.T) *API {
	t.Helper()
	return NewAPI(newTestStore(t), nil, zap.NewNop())
}

// doJSON runs a request through the handler and returns the recorder.
// token == "" sends no Authorization header.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResp(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeResp(t, rec, &body)
	return body.Error
}
