package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/vancomm/msweeper/internal/config"
	"github.com/vancomm/msweeper/internal/database"
)

func main() {
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("unable to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.Development {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	var version uint
	switch cfg.Store.Driver {
	case "postgres":
		url, urlErr := cfg.Store.PostgresURL()
		if urlErr != nil {
			logger.Error("no database url", slog.Any("error", urlErr))
			os.Exit(1)
		}
		version, err = database.MigratePostgres(url)
	default:
		version, err = database.MigrateSQLite(cfg.Store.SQLitePath)
	}
	if err != nil {
		logger.Error("failed to migrate", slog.String("driver", cfg.Store.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info(
		"migration successful",
		slog.String("driver", cfg.Store.Driver),
		slog.Uint64("version", uint64(version)),
	)
}
