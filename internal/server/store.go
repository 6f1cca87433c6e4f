package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotFound means the referenced entity is absent from the document.
	ErrNotFound = errors.New("not found")
)

// Store is the single source of truth for the backing JSON document.
// Mutations hold the write lock across the full read-modify-write-persist
// sequence, so concurrent approvals of the same record cannot lose
// updates and readers never observe a half-applied mutation.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  *Document
	raw  []byte // marshaled snapshot backing path lookups
}

// Open loads the document at path into memory.
func Open(path string) (*Store, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return &Store{path: path, doc: doc, raw: raw}, nil
}

// persistLocked flushes the whole document to disk. Callers must hold
// the write lock. On failure the in-memory mutation stands; the next
// successful persist writes it through.
func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("persist %s: %w", s.path, err)
	}
	s.raw = raw
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("persist %s: %w", s.path, err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user. An empty token never
// matches (a malformed Authorization header degrades to this, not to a
// crash).
func (s *Store) Authenticate(token string) (User, bool) {
	if token == "" {
		return User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.doc.Auth.Users {
		if u.Token == token {
			return u, true
		}
	}
	return User{}, false
}

// Login scans users for an exact (email, password) match. First match in
// slice order wins, matching the seed file's iteration order.
func (s *Store) Login(email, password string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.doc.Auth.Users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}

// ApproveLeave overwrites the status of the leave application with the
// given id and persists. The status string is stored verbatim.
func (s *Store) ApproveLeave(id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := s.doc.LMS.LeaveApplications
	for i := range apps {
		if apps[i].ID == id {
			apps[i].Status = status
			return s.persistLocked()
		}
	}
	return ErrNotFound
}

// PodDetails returns the pods.details value verbatim. ok is false when
// the value is absent or JSON null.
func (s *Store) PodDetails() (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Pods.Details, rawPresent(s.doc.Pods.Details)
}

// Recommendations returns the pod recommendation collection. ok is false
// only when the collection is absent; an empty collection is present.
// The result is a deep copy: callers marshal it after the lock is
// released, so handing out the live slice would let a concurrent
// RecommendMember race the encoder.
func (s *Store) Recommendations() ([]Pod, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc.Pods.Recommendations == nil {
		return nil, false
	}
	pods := make([]Pod, len(s.doc.Pods.Recommendations))
	copy(pods, s.doc.Pods.Recommendations)
	for i := range pods {
		pods[i].Members = append([]Member(nil), pods[i].Members...)
	}
	return pods, true
}

// RecommendMember appends a synthesized member to the pod with the given
// id and persists. No de-duplication: recommending the same user twice
// appends twice.
func (s *Store) RecommendMember(podID string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pods := s.doc.Pods.Recommendations
	for i := range pods {
		if pods[i].PodID == podID {
			pods[i].Members = append(pods[i].Members, Member{
				ID:   userID,
				Name: fmt.Sprintf("User %d", userID),
				Role: "Recommended Member",
			})
			return s.persistLocked()
		}
	}
	return ErrNotFound
}

// Lookup reads a dotted path (e.g. "auth.users") from the current
// document snapshot. ok is false for absent paths and JSON null.
func (s *Store) Lookup(path string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := gjson.GetBytes(s.raw, path)
	if !res.Exists() || res.Type == gjson.Null {
		return nil, false
	}
	return json.RawMessage(res.Raw), true
}

// Snapshot returns the whole document as currently held in memory.
func (s *Store) Snapshot() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

func rawPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
