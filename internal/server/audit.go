package server

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// AuditLog records role-gated mutations in sqlite. The document itself
// stays the source of truth; this is a side channel for operators.
type AuditLog struct {
	DB *sql.DB
}

type AuditEvent struct {
	ID        string `json:"id"`
	ActorID   int64  `json:"actorId"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	Detail    string `json:"detail"`
	CreatedAt int64  `json:"createdAt"`
}

func OpenAuditLog(path string) (*AuditLog, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	return &AuditLog{DB: db}, nil
}

func (l *AuditLog) Record(actorID int64, action, entity, detail string) error {
	_, err := l.DB.Exec(
		`INSERT INTO audit_events (id, actor_id, action, entity, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), actorID, action, entity, detail, time.Now().Unix(),
	)
	return err
}

func (l *AuditLog) RecentEvents(limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := l.DB.Query(
		`SELECT id, actor_id, action, entity, detail, created_at
		 FROM audit_events
		 ORDER BY created_at DESC, id
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var e AuditEvent
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (l *AuditLog) Close() error {
	return l.DB.Close()
}
