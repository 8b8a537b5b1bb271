// Package importer loads workout program documents from the local
// filesystem straight into the database, bypassing the HTTP API.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/claude/liftplan/internal/ingest/document"
	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/claude/liftplan/internal/models"
)

// Preview is a plan parsed in dry-run mode.
type Preview struct {
	Source string             `json:"source"`
	Plan   *models.ParsedPlan `json:"plan"`
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	PlansImported     int
	DaysImported      int
	ExercisesImported int

	Previews []Preview
}

// Importer extracts and ingests program documents.
type Importer struct {
	provider *program.Provider
	log      *slog.Logger
	dryRun   bool
	planName string
	stats    Stats
}

// New creates a new Importer. In dry-run mode plans are parsed and collected
// in Stats.Previews but never stored.
func New(provider *program.Provider, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{provider: provider, log: log, dryRun: dryRun}
}

// SetPlanName overrides the document title for every imported plan.
func (imp *Importer) SetPlanName(name string) {
	imp.planName = name
}

// Import processes path, which may be a single document or a directory
// searched recursively for supported documents.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", path, err)
	}

	if !info.IsDir() {
		if err := imp.importFile(ctx, path); err != nil {
			return &imp.stats, err
		}
		return &imp.stats, nil
	}

	files, err := documents(path)
	if err != nil {
		return &imp.stats, err
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, f); err != nil {
			imp.log.Warn("import failed", "file", f, "error", err)
		}
	}
	return &imp.stats, nil
}

func documents(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && document.Supported(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// importFile ingests one document. Documents without workout structure are
// counted as skipped, not as errors.
func (imp *Importer) importFile(ctx context.Context, path string) error {
	name := filepath.Base(path)
	doc, err := document.Extract(ctx, path)
	if err != nil {
		imp.stats.FilesErrored++
		return fmt.Errorf("extracting %s: %w", name, err)
	}
	opts := program.Options{PlanName: imp.planName, SourceFilename: name}

	if imp.dryRun {
		plan, err := imp.provider.Preview(doc, opts)
		if err != nil {
			imp.stats.FilesErrored++
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		imp.stats.FilesProcessed++
		imp.stats.Previews = append(imp.stats.Previews, Preview{Source: name, Plan: plan})
		imp.log.Info("dry-run: parsed", "file", name, "days", len(plan.Days), "exercises", plan.ExerciseCount())
		return nil
	}

	result, err := imp.provider.Ingest(ctx, doc, opts)
	if errors.Is(err, program.ErrNothingImportable) {
		imp.stats.FilesSkipped++
		imp.log.Info("no workout structure, skipping", "file", name)
		return nil
	}
	if err != nil {
		imp.stats.FilesErrored++
		return fmt.Errorf("importing %s: %w", name, err)
	}

	imp.stats.FilesProcessed++
	imp.stats.PlansImported++
	imp.stats.DaysImported += result.DaysCount
	imp.stats.ExercisesImported += result.ExercisesCount
	return nil
}
