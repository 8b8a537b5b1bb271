package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeSource struct {
	plans map[uuid.UUID]*models.PlanRow
	days  map[int64]*models.DayRow
}

func (f *fakeSource) ListPlans(context.Context) ([]models.PlanSummary, error) {
	var out []models.PlanSummary
	for _, p := range f.plans {
		out = append(out, models.PlanSummary{ID: p.ID, Name: p.Name, DayCount: len(p.Days)})
	}
	return out, nil
}

func (f *fakeSource) GetPlan(_ context.Context, id uuid.UUID) (*models.PlanRow, error) {
	if p, ok := f.plans[id]; ok {
		return p, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeSource) ListDays(_ context.Context, planID *uuid.UUID) ([]models.DaySummary, error) {
	var out []models.DaySummary
	for _, d := range f.days {
		if planID == nil || d.PlanID == *planID {
			out = append(out, models.DaySummary{ID: d.ID, PlanID: d.PlanID, Name: d.Name})
		}
	}
	return out, nil
}

func (f *fakeSource) GetDay(_ context.Context, id int64) (*models.DayRow, error) {
	if d, ok := f.days[id]; ok {
		return d, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeSource) GetDataStats(_ context.Context, topN int) (*storage.DataStats, error) {
	stats := &storage.DataStats{TotalPlans: int64(len(f.plans)), TotalDays: int64(len(f.days))}
	top := []storage.ExerciseStat{{Name: "Bench Press", Count: 4, Plans: 1}, {Name: "Pull Up", Count: 2, Plans: 1}}
	if topN < len(top) {
		top = top[:topN]
	}
	stats.TopExercises = top
	return stats, nil
}

func newTestHandlers() (*handlers, uuid.UUID) {
	id := uuid.New()
	day := &models.DayRow{ID: 5, PlanID: id, Name: "Push Day", DayNumber: 1}
	ds := &fakeSource{
		plans: map[uuid.UUID]*models.PlanRow{id: {ID: id, Name: "Push Pull", Days: []models.DayRow{*day}}},
		days:  map[int64]*models.DayRow{5: day},
	}
	return &handlers{
		ds:     ds,
		parser: program.New(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, id
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

// TestParseProgramTool verifies the parse tool returns the plan JSON and
// honours the plan name override.
func TestParseProgramTool(t *testing.T) {
	h, _ := newTestHandlers()
	res, err := h.parseProgram(context.Background(), callTool("parse_program", map[string]any{
		"text":      "Push Day\nBench Press 3x10\nOverhead Press 3x8-10\nDay 2 - Pull\nPull Up 3x8\n",
		"plan_name": "PPL",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var plan models.ParsedPlan
	if err := json.Unmarshal([]byte(resultText(t, res)), &plan); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if plan.Name != "PPL" || len(plan.Days) != 2 {
		t.Errorf("plan = %+v", plan)
	}
}

// TestToolErrors verifies bad input is reported as a tool error, not a
// protocol error.
func TestToolErrors(t *testing.T) {
	h, _ := newTestHandlers()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (*mcp.CallToolResult, error)
	}{
		{"parse without text", func() (*mcp.CallToolResult, error) {
			return h.parseProgram(ctx, callTool("parse_program", nil))
		}},
		{"parse blank text", func() (*mcp.CallToolResult, error) {
			return h.parseProgram(ctx, callTool("parse_program", map[string]any{"text": "   "}))
		}},
		{"bad plan id", func() (*mcp.CallToolResult, error) {
			return h.getPlan(ctx, callTool("get_plan", map[string]any{"plan_id": "nope"}))
		}},
		{"unknown plan", func() (*mcp.CallToolResult, error) {
			return h.getPlan(ctx, callTool("get_plan", map[string]any{"plan_id": uuid.NewString()}))
		}},
		{"unknown day", func() (*mcp.CallToolResult, error) {
			return h.getDay(ctx, callTool("get_day", map[string]any{"day_id": float64(99)}))
		}},
		{"bad list_days filter", func() (*mcp.CallToolResult, error) {
			return h.listDays(ctx, callTool("list_days", map[string]any{"plan_id": "x"}))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected protocol error: %v", err)
			}
			if !res.IsError {
				t.Errorf("expected tool error, got %s", resultText(t, res))
			}
		})
	}
}

// TestStoreTools verifies plan and day lookups go through the data source.
func TestStoreTools(t *testing.T) {
	h, id := newTestHandlers()
	ctx := context.Background()

	res, err := h.getPlan(ctx, callTool("get_plan", map[string]any{"plan_id": id.String()}))
	if err != nil || res.IsError {
		t.Fatalf("get_plan failed: %v", err)
	}
	var plan models.PlanRow
	if err := json.Unmarshal([]byte(resultText(t, res)), &plan); err != nil {
		t.Fatal(err)
	}
	if plan.Name != "Push Pull" {
		t.Errorf("plan.Name = %q", plan.Name)
	}

	res, err = h.getDay(ctx, callTool("get_day", map[string]any{"day_id": float64(5)}))
	if err != nil || res.IsError {
		t.Fatalf("get_day failed: %v", err)
	}

	res, err = h.listDays(ctx, callTool("list_days", map[string]any{"plan_id": id.String()}))
	if err != nil || res.IsError {
		t.Fatalf("list_days failed: %v", err)
	}
	var days []models.DaySummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &days); err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Name != "Push Day" {
		t.Errorf("days = %+v", days)
	}
}

// TestStatsTool verifies the top argument reaches the data source.
func TestStatsTool(t *testing.T) {
	h, _ := newTestHandlers()
	res, err := h.getStats(context.Background(), callTool("get_stats", map[string]any{"top": float64(1)}))
	if err != nil || res.IsError {
		t.Fatalf("get_stats failed: %v", err)
	}
	var stats storage.DataStats
	if err := json.Unmarshal([]byte(resultText(t, res)), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalPlans != 1 || stats.TotalDays != 1 {
		t.Errorf("totals = %+v", stats)
	}
	if len(stats.TopExercises) != 1 || stats.TopExercises[0].Name != "Bench Press" {
		t.Errorf("top = %+v", stats.TopExercises)
	}
}

// TestVocabularyResource verifies the vocabulary resource lists the parser's
// lookup tables.
func TestVocabularyResource(t *testing.T) {
	h, _ := newTestHandlers()
	var req mcp.ReadResourceRequest
	req.Params.URI = "liftplan://vocabulary"

	contents, err := h.vocabulary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := contents[0].(mcp.TextResourceContents).Text

	var v map[string][]string
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		t.Fatal(err)
	}
	if len(v["exercise_keywords"]) == 0 || len(v["skip_patterns"]) == 0 {
		t.Errorf("vocabulary = %v", v)
	}
}

// TestNew verifies the server builds with all tools registered.
func TestNew(t *testing.T) {
	h, _ := newTestHandlers()
	if s := New(h.ds, h.parser, "test", h.log); s == nil {
		t.Fatal("New returned nil")
	}
}
