package mcp

import (
	"context"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the plan store for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListPlans(ctx context.Context) ([]models.PlanSummary, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRow, error)
	ListDays(ctx context.Context, planID *uuid.UUID) ([]models.DaySummary, error)
	GetDay(ctx context.Context, id int64) (*models.DayRow, error)
	GetDataStats(ctx context.Context, topN int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
