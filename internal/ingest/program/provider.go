package program

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/liftplan/internal/ingest"
	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// PlanStore persists a parsed plan tree. *storage.DB satisfies it.
type PlanStore interface {
	InsertPlan(ctx context.Context, plan *models.PlanRow) (uuid.UUID, error)
}

// ImportLogger records import attempts. When the PlanStore also implements
// it, every Ingest call leaves one log entry.
type ImportLogger interface {
	InsertImportLog(ctx context.Context, log models.ImportLog) (int64, error)
}

// Options carries caller-supplied metadata for one import.
type Options struct {
	// PlanName overrides the title found in the document.
	PlanName string
	// SourceFilename is recorded on the stored plan.
	SourceFilename string
}

// Provider parses workout program documents and stores the result.
type Provider struct {
	parser *Parser
	store  PlanStore
	log    *slog.Logger
}

// NewProvider creates a new workout program ingest provider.
func NewProvider(parser *Parser, store PlanStore, log *slog.Logger) *Provider {
	return &Provider{parser: parser, store: store, log: log}
}

// Parser returns the parser the provider uses.
func (p *Provider) Parser() *Parser {
	return p.parser
}

// Preview parses doc and applies opts without storing anything.
func (p *Provider) Preview(doc Document, opts Options) (*models.ParsedPlan, error) {
	plan, err := p.parser.Parse(doc)
	if err != nil {
		return nil, err
	}
	if opts.PlanName != "" {
		plan.Name = opts.PlanName
	}
	return plan, nil
}

// Ingest parses doc and stores the plan. A document with no recognisable
// days is not stored and yields ErrNothingImportable.
func (p *Provider) Ingest(ctx context.Context, doc Document, opts Options) (*ingest.Result, error) {
	start := time.Now()
	result, err := p.ingest(ctx, doc, opts)
	p.record(ctx, opts.SourceFilename, result, err, time.Since(start))
	return result, err
}

func (p *Provider) ingest(ctx context.Context, doc Document, opts Options) (*ingest.Result, error) {
	plan, err := p.Preview(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if len(plan.Days) == 0 {
		return nil, ErrNothingImportable
	}

	row := models.PlanRowFromParsed(*plan, opts.SourceFilename)
	id, err := p.store.InsertPlan(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("storing plan: %w", err)
	}

	result := &ingest.Result{
		Success:        true,
		Message:        "Successfully imported workout plan: " + plan.Name,
		PlanID:         id,
		PlanName:       plan.Name,
		DaysCount:      len(plan.Days),
		ExercisesCount: plan.ExerciseCount(),
	}
	for _, d := range plan.Days {
		result.CircuitsCount += len(d.Circuits)
	}

	p.log.Info("plan imported",
		"plan_id", id,
		"name", plan.Name,
		"source", opts.SourceFilename,
		"days", result.DaysCount,
		"exercises", result.ExercisesCount,
	)
	return result, nil
}

func (p *Provider) record(ctx context.Context, source string, result *ingest.Result, err error, took time.Duration) {
	logger, ok := p.store.(ImportLogger)
	if !ok {
		return
	}

	ms := int(took.Milliseconds())
	entry := models.ImportLog{Source: source, DurationMs: &ms}
	switch {
	case err == nil:
		entry.Status = models.ImportStatusSuccess
		entry.PlanID = &result.PlanID
		entry.DaysCount = result.DaysCount
		entry.CircuitsCount = result.CircuitsCount
		entry.ExercisesCount = result.ExercisesCount
	case errors.Is(err, ErrNothingImportable):
		entry.Status = models.ImportStatusEmpty
	default:
		entry.Status = models.ImportStatusError
		msg := err.Error()
		entry.ErrorMessage = &msg
	}

	if _, err := logger.InsertImportLog(ctx, entry); err != nil {
		p.log.Warn("failed to record import", "source", source, "error", err)
	}
}
