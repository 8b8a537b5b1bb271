package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftplan/internal/config"
	"github.com/claude/liftplan/internal/importer"
	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/claude/liftplan/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	path := flag.String("path", "", "program document or directory of documents (required)")
	planName := flag.String("name", "", "plan name override")
	vocabPath := flag.String("vocabulary", "", "vocabulary YAML file (overrides config)")
	dryRun := flag.Bool("dry-run", false, "print parsed plans as JSON without touching the database")
	flag.Parse()

	// Logs go to stderr so dry-run JSON on stdout stays clean.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *path == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftplan-import -path <file or dir> [-config config.yaml] [-name NAME] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()

	var cfg *config.Config
	if !*dryRun {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		if *vocabPath == "" {
			*vocabPath = cfg.Parser.VocabularyFile
		}
	}

	vocab := program.DefaultVocabulary()
	if *vocabPath != "" {
		var err error
		vocab, err = program.LoadVocabulary(*vocabPath)
		if err != nil {
			log.Error("failed to load vocabulary", "path", *vocabPath, "error", err)
			os.Exit(1)
		}
	}
	parser := program.New(program.WithVocabulary(vocab), program.WithLogger(log))

	var store program.PlanStore
	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	} else {
		dsn := cfg.Database.DSN()
		version, err := storage.RunMigrations(dsn, "migrations")
		if err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied", "version", version)

		db, err := storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")
		store = db
	}

	imp := importer.New(program.NewProvider(parser, store, log), log, *dryRun)
	imp.SetPlanName(*planName)
	stats, err := imp.Import(ctx, *path)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	if *dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats.Previews); err != nil {
			log.Error("encoding plans", "error", err)
			os.Exit(1)
		}
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"plans_imported", stats.PlansImported,
		"days_imported", stats.DaysImported,
		"exercises_imported", stats.ExercisesImported,
	)
}
