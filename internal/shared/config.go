package shared

import "os"

type ServerConfig struct {
	Addr        string // listen address
	DBPath      string // JSON document backing the store
	AuditDBPath string // sqlite audit log; empty disables auditing
}

// LoadServerConfig reads configuration from the environment.
// Dev defaults are fine locally; override in env.
func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Addr:        os.Getenv("PODHUB_ADDR"),
		DBPath:      os.Getenv("PODHUB_DB_PATH"),
		AuditDBPath: os.Getenv("PODHUB_AUDIT_DB"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":3000"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/db.json"
	}
	return cfg
}
