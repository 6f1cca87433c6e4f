package server

import (
	"encoding/json"
	"os"
)

// User is a seeded account. Passwords are stored and compared in
// plaintext and tokens never rotate; that mirrors the seed-file contract
// this server fronts and is called out in DESIGN.md. Do not ship real
// credentials in db.json.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type LeaveApplication struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Status    string `json:"status"`
}

type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Pod struct {
	PodID   string   `json:"podId"`
	Name    string   `json:"name,omitempty"`
	Members []Member `json:"members"`
}

type AuthNamespace struct {
	Users []User `json:"users"`
}

type LMSNamespace struct {
	LeaveApplications []LeaveApplication `json:"leaveApplications"`
}

type PodsNamespace struct {
	// Details is returned verbatim; the server never looks inside it.
	Details         json.RawMessage `json:"details,omitempty"`
	Recommendations []Pod           `json:"recommendations"`
}

// Document is the whole backing JSON file. The three namespaces the
// endpoints touch are typed; any other top-level namespace round-trips
// untouched through load and persist.
type Document struct {
	Auth AuthNamespace
	LMS  LMSNamespace
	Pods PodsNamespace

	extra map[string]json.RawMessage
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return err
	}
	if raw, ok := top["auth"]; ok {
		if err := json.Unmarshal(raw, &d.Auth); err != nil {
			return err
		}
		delete(top, "auth")
	}
	if raw, ok := top["lms"]; ok {
		if err := json.Unmarshal(raw, &d.LMS); err != nil {
			return err
		}
		delete(top, "lms")
	}
	if raw, ok := top["pods"]; ok {
		if err := json.Unmarshal(raw, &d.Pods); err != nil {
			return err
		}
		delete(top, "pods")
	}
	d.extra = top
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	top := make(map[string]json.RawMessage, len(d.extra)+3)
	for k, v := range d.extra {
		top[k] = v
	}
	for k, v := range map[string]any{
		"auth": d.Auth,
		"lms":  d.LMS,
		"pods": d.Pods,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		top[k] = raw
	}
	return json.Marshal(top)
}

// LoadDocument reads and decodes a backing JSON file.
func LoadDocument(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
