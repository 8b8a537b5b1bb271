package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) plans(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plans, err := h.ds.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, plans)
}

func (h *handlers) vocabulary(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	v := h.parser.Vocabulary()
	return jsonContents(req.Params.URI, map[string]any{
		"exercise_keywords":   v.ExerciseKeywords,
		"muscle_groups":       v.MuscleGroups,
		"day_header_keywords": v.DayHeaderKeywords,
		"skip_patterns":       v.SkipPatterns,
		"column_headers":      v.ColumnHeaders,
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
