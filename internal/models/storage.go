package models

import (
	"time"

	"github.com/google/uuid"
)

// PlanRow is a workout plan as stored in the workout_plans table, optionally
// with its full day tree.
type PlanRow struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	SourceFilename *string   `json:"source_filename"`
	CreatedAt      time.Time `json:"created_at"`
	Days           []DayRow  `json:"workout_days"`
}

// PlanSummary is a plan listing entry.
type PlanSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DayCount    int       `json:"day_count"`
}

// DayRow is a row of the workout_days table with its circuits.
type DayRow struct {
	ID           int64        `json:"id"`
	PlanID       uuid.UUID    `json:"plan_id"`
	Name         string       `json:"name"`
	DayNumber    int          `json:"day_number"`
	MuscleGroups *string      `json:"muscle_groups"`
	Circuits     []CircuitRow `json:"circuits"`
}

// DaySummary is a day listing entry.
type DaySummary struct {
	ID            int64     `json:"id"`
	PlanID        uuid.UUID `json:"plan_id"`
	Name          string    `json:"name"`
	DayNumber     int       `json:"day_number"`
	MuscleGroups  *string   `json:"muscle_groups"`
	ExerciseCount int       `json:"exercise_count"`
	CircuitCount  int       `json:"circuit_count"`
}

// CircuitRow is a row of the circuits table with its exercises.
type CircuitRow struct {
	ID            int64         `json:"id"`
	DayID         int64         `json:"workout_day_id"`
	CircuitNumber int           `json:"circuit_number"`
	Name          string        `json:"name"`
	Rounds        int           `json:"rounds"`
	Exercises     []ExerciseRow `json:"exercises"`
}

// ExerciseRow is a row of the exercises table.
type ExerciseRow struct {
	ID                   int64   `json:"id"`
	CircuitID            int64   `json:"circuit_id"`
	Name                 string  `json:"name"`
	Order                int     `json:"order"`
	Sets                 string  `json:"sets"`
	Reps                 string  `json:"reps"`
	WeightRecommendation *string `json:"weight_recommendation"`
	Notes                *string `json:"notes"`
	VideoURL             *string `json:"video_url"`
	ImageURL             *string `json:"image_url"`
}

// PlanRowFromParsed maps a parsed plan onto storage rows. IDs are left zero;
// the storage layer assigns them.
func PlanRowFromParsed(p ParsedPlan, sourceFilename string) PlanRow {
	row := PlanRow{Name: p.Name}
	if sourceFilename != "" {
		row.SourceFilename = &sourceFilename
	}
	for _, d := range p.Days {
		day := DayRow{Name: d.Name, DayNumber: d.DayNumber, MuscleGroups: d.MuscleGroups}
		for _, c := range d.Circuits {
			circuit := CircuitRow{CircuitNumber: c.CircuitNumber, Name: c.Name, Rounds: c.Rounds}
			for _, e := range c.Exercises {
				circuit.Exercises = append(circuit.Exercises, ExerciseRow{
					Name:                 e.Name,
					Order:                e.Order,
					Sets:                 e.Sets,
					Reps:                 e.Reps,
					WeightRecommendation: e.WeightRecommendation,
					Notes:                e.Notes,
				})
			}
			day.Circuits = append(day.Circuits, circuit)
		}
		row.Days = append(row.Days, day)
	}
	return row
}

// Import statuses recorded in the import_logs table.
const (
	ImportStatusSuccess = "success"
	ImportStatusEmpty   = "empty"
	ImportStatusError   = "error"
)

// ImportLog records the outcome of one document import.
type ImportLog struct {
	ID             int64      `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	Source         string     `json:"source"`
	Status         string     `json:"status"`
	PlanID         *uuid.UUID `json:"plan_id"`
	DaysCount      int        `json:"workout_days_count"`
	CircuitsCount  int        `json:"circuits_count"`
	ExercisesCount int        `json:"exercises_count"`
	DurationMs     *int       `json:"duration_ms"`
	ErrorMessage   *string    `json:"error_message"`
}
