package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/alumnihub/alumnihub-api/config"
	"github.com/alumnihub/alumnihub-api/pkg/db"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "alumnihub-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Database.WorkOffline {
		logger.Info("Offline mode: nothing to migrate")
		return
	}

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	poolCfg := db.PoolConfig{
		URL:           cfg.Database.URL,
		CACertPath:    cfg.Database.CACertPath,
		TLSServerName: cfg.Database.TLSServerName,
	}
	if err := db.RunMigrations(poolCfg, "file://migrations"); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides the password when the URL parses, everything after the host otherwise
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}
