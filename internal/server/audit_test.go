package server

import (
	"path/filepath"
	"testing"
)

func TestAuditLogRecordAndList(t *testing.T) {
	audit, err := OpenAuditLog(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer audit.Close()

	if err := audit.Record(1, "leave.approve", "leave:5", "approved"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := audit.Record(1, "pod.recommend", "pod:pod-alpha", "user:7"); err != nil {
		t.Fatalf("record: %v", err)
	}

	events, err := audit.RecentEvents(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.ID == "" || e.CreatedAt == 0 {
			t.Errorf("event missing id or timestamp: %+v", e)
		}
	}

	limited, err := audit.RecentEvents(1)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d events", len(limited))
	}
}
