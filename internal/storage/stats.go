package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored plans.
type DataStats struct {
	TotalPlans     int64          `json:"total_plans"`
	TotalDays      int64          `json:"total_days"`
	TotalCircuits  int64          `json:"total_circuits"`
	TotalExercises int64          `json:"total_exercises"`
	EarliestPlan   *time.Time     `json:"earliest_plan"`
	LatestPlan     *time.Time     `json:"latest_plan"`
	TopExercises   []ExerciseStat `json:"top_exercises"`
}

// ExerciseStat counts how often an exercise name appears across plans.
type ExerciseStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Plans int64  `json:"plans"`
}

// GetDataStats returns aggregate statistics for the stored plans, with the
// topN most frequent exercises.
func (db *DB) GetDataStats(ctx context.Context, topN int) (*DataStats, error) {
	if topN <= 0 {
		topN = 10
	}
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM workout_plans),
			(SELECT COUNT(*) FROM workout_days),
			(SELECT COUNT(*) FROM circuits),
			(SELECT COUNT(*) FROM exercises),
			(SELECT MIN(created_at) FROM workout_plans),
			(SELECT MAX(created_at) FROM workout_plans)`,
	).Scan(&stats.TotalPlans, &stats.TotalDays, &stats.TotalCircuits, &stats.TotalExercises,
		&stats.EarliestPlan, &stats.LatestPlan)
	if err != nil {
		return nil, fmt.Errorf("counting plans: %w", err)
	}

	// Names are stored title-cased, so grouping on the raw name is enough.
	rows, err := db.Pool.Query(ctx,
		`SELECT e.name, COUNT(*), COUNT(DISTINCT d.plan_id)
		 FROM exercises e
		 JOIN circuits c ON c.id = e.circuit_id
		 JOIN workout_days d ON d.id = c.workout_day_id
		 GROUP BY e.name
		 ORDER BY COUNT(*) DESC, e.name
		 LIMIT $1`, topN)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Name, &s.Count, &s.Plans); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
