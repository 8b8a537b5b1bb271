// Package upload sends workout program documents from a local directory to
// a liftplan server, remembering what was already sent.
package upload

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
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesRejected int
	FilesErrored  int

	DaysImported      int
	ExercisesImported int
}

// Uploader walks a directory of program documents and uploads each
// supported file that changed since it was last sent.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Stats returns the counters accumulated so far.
func (u *Uploader) Stats() Stats {
	return u.stats
}

// Run uploads every supported document under the directory. Per-file
// failures are counted and logged; only a cancelled context or an
// unreadable directory stops the run.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	files, err := u.documents()
	if err != nil {
		return &u.stats, err
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		u.processFile(ctx, f)
	}
	return &u.stats, nil
}

// documents lists supported files under the directory in lexical order.
func (u *Uploader) documents() ([]string, error) {
	var files []string
	err := filepath.WalkDir(u.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != u.dir && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if document.Supported(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", u.dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// processFile uploads one document unless the state DB already has it.
func (u *Uploader) processFile(ctx context.Context, path string) {
	u.stats.FilesTotal++

	relPath, err := filepath.Rel(u.dir, path)
	if err != nil {
		relPath = path
	}
	info, err := os.Stat(path)
	if err != nil {
		u.log.Warn("stat failed", "file", relPath, "error", err)
		u.stats.FilesErrored++
		return
	}

	hash, err := HashFile(path)
	if err != nil {
		u.log.Warn("hash failed", "file", relPath, "error", err)
		u.stats.FilesErrored++
		return
	}

	uploaded, err := u.state.IsUploaded(ctx, relPath, info.Size(), hash)
	if err != nil {
		u.log.Warn("state check failed", "file", relPath, "error", err)
		u.stats.FilesErrored++
		return
	}
	if uploaded {
		u.stats.FilesSkipped++
		return
	}

	if u.dryRun {
		u.log.Info("dry-run: would upload", "file", relPath, "bytes", info.Size())
		return
	}

	result, err := u.client.UploadFile(ctx, path, "")
	if errors.Is(err, ErrRejected) {
		u.log.Warn("document rejected", "file", relPath, "error", err)
		u.stats.FilesRejected++
		// Rejections are permanent for this content; retry only once it changes.
		if err := u.state.MarkUploaded(ctx, relPath, info.Size(), hash, OutcomeRejected, ""); err != nil {
			u.log.Warn("failed to mark rejected", "file", relPath, "error", err)
		}
		return
	}
	if err != nil {
		u.log.Warn("upload failed", "file", relPath, "error", err)
		u.stats.FilesErrored++
		return
	}

	if err := u.state.MarkUploaded(ctx, relPath, info.Size(), hash, OutcomeImported, result.PlanID.String()); err != nil {
		u.log.Warn("failed to mark uploaded", "file", relPath, "error", err)
	}
	u.stats.FilesUploaded++
	u.stats.DaysImported += result.DaysCount
	u.stats.ExercisesImported += result.ExercisesCount

	u.log.Info("uploaded program",
		"file", relPath,
		"plan_id", result.PlanID,
		"plan", result.PlanName,
		"days", result.DaysCount,
		"exercises", result.ExercisesCount,
	)
}
