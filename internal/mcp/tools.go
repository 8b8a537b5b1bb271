package mcp

import (
	"context"
	"errors"

	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolParseProgram = mcp.NewTool("parse_program",
	mcp.WithDescription("Parse workout program text into days, circuits and exercises without storing it. Returns the parsed plan with sets, reps, weight recommendations and notes per exercise."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Program text, one line per exercise or header (e.g. 'Push Day\\nBench Press 3x10')")),
	mcp.WithString("plan_name", mcp.Description("Plan name to use instead of the title found in the text")),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List imported workout plans with id, name, creation time and number of days."),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Get a workout plan with all its days, circuits and exercises."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID as returned by list_plans")),
)

var toolListDays = mcp.NewTool("list_days",
	mcp.WithDescription("List workout days with circuit and exercise counts, optionally for a single plan."),
	mcp.WithString("plan_id", mcp.Description("Restrict to this plan UUID")),
)

var toolGetDay = mcp.NewTool("get_day",
	mcp.WithDescription("Get one workout day with its circuits and exercises."),
	mcp.WithNumber("day_id", mcp.Required(), mcp.Description("Day ID as returned by list_days or get_plan")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Get totals of stored plans, days, circuits and exercises, the date range of imports, and the most frequently programmed exercises."),
	mcp.WithNumber("top", mcp.Description("Number of most frequent exercises to return (default 10)")),
)

// --- Tool handlers ---

func (h *handlers) parseProgram(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	plan, err := h.parser.ParseText(text)
	if err != nil {
		return mcp.NewToolResultError("parse failed: " + err.Error()), nil
	}
	if name := req.GetString("plan_name", ""); name != "" {
		plan.Name = name
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.ds.ListPlans(ctx)
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid plan_id: " + err.Error()), nil
	}

	plan, err := h.ds.GetPlan(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("plan not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var planID *uuid.UUID
	if s := req.GetString("plan_id", ""); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return mcp.NewToolResultError("invalid plan_id: " + err.Error()), nil
		}
		planID = &id
	}

	days, err := h.ds.ListDays(ctx, planID)
	if err != nil {
		h.log.Error("mcp list_days", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(days)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("day_id")
	if err != nil {
		return mcp.NewToolResultError("day_id parameter is required"), nil
	}

	day, err := h.ds.GetDay(ctx, int64(id))
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("day not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_day", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx, req.GetInt("top", 10))
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
