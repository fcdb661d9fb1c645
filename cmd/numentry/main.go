package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jask/numentry/internal/config"
	"github.com/jask/numentry/internal/database"
	"github.com/jask/numentry/internal/database/repository"
	"github.com/jask/numentry/internal/logging"
	"github.com/jask/numentry/internal/tui"
)

func main() {
	check := flag.Bool("check", false, "run a headless edit against a temporary database and exit")
	flag.Parse()

	ctx := context.Background()

	// NUMENTRY_* overrides may live in a local .env file.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if *check {
		if err := runCheck(ctx, os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "check failed:", err)
			os.Exit(1)
		}
		return
	}

	level, _ := cfg.Log.SlogLevel()
	logger, closer, err := logging.Setup(cfg.Log.Path, level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closer.Close()
	logger.Info("starting", logging.FieldOperation, logging.OpStartup)
	logging.Component(logger, logging.ComponentConfig).Info("config loaded",
		"db", cfg.Database.Path, "locale", cfg.Number.Locale, logging.FieldFormat, cfg.Number.Format)

	storageLog := logging.Component(logger, logging.ComponentStorage)
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if version, ok, err := database.SchemaVersion(cfg.Database.Path); err == nil && ok {
		storageLog.Info("schema ready", logging.FieldOperation, logging.OpMigrate, "version", version)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	repo := repository.NewEnvelopeRepo(db)
	if err := syncLayout(ctx, repo, storageLog); err != nil {
		storageLog.Warn("envelope layout not applied", logging.FieldError, err)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, repo, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	logger.Info("exiting", logging.FieldOperation, logging.OpShutdown)
}
