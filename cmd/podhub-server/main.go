package main

import (
	"net/http"

	"go.uber.org/zap"

	"podhub/internal/server"
	"podhub/internal/shared"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := shared.LoadServerConfig()

	store, err := server.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open document store", zap.String("db", cfg.DBPath), zap.Error(err))
	}

	var audit *server.AuditLog
	if cfg.AuditDBPath != "" {
		audit, err = server.OpenAuditLog(cfg.AuditDBPath)
		if err != nil {
			logger.Fatal("failed to open audit log", zap.String("db", cfg.AuditDBPath), zap.Error(err))
		}
		defer audit.Close()
	}

	api := server.NewAPI(store, audit, logger)

	logger.Info("podhub-server listening",
		zap.String("addr", cfg.Addr),
		zap.String("db", cfg.DBPath),
		zap.Bool("audit", audit != nil),
	)
	logger.Fatal("server exited", zap.Error(http.ListenAndServe(cfg.Addr, api.Routes())))
}
