package shared

import (
	"strings"
	"testing"
)

func TestNewToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		if tok == "" {
			t.Fatal("empty token")
		}
		if strings.ContainsAny(tok, " +/=") {
			t.Errorf("token not URL-safe: %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PODHUB_ADDR", "")
	t.Setenv("PODHUB_DB_PATH", "")
	t.Setenv("PODHUB_AUDIT_DB", "")

	cfg := LoadServerConfig()
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DBPath != "./data/db.json" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.AuditDBPath != "" {
		t.Errorf("AuditDBPath = %q, want disabled by default", cfg.AuditDBPath)
	}
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("PODHUB_ADDR", ":9999")
	t.Setenv("PODHUB_DB_PATH", "/tmp/x.json")
	t.Setenv("PODHUB_AUDIT_DB", "/tmp/a.db")

	cfg := LoadServerConfig()
	if cfg.Addr != ":9999" || cfg.DBPath != "/tmp/x.json" || cfg.AuditDBPath != "/tmp/a.db" {
		t.Errorf("cfg = %+v", cfg)
	}
}
