package ingest

import "github.com/google/uuid"

// Result holds the outcome of an ingest operation.
type Result struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message,omitempty"`
	PlanID         uuid.UUID `json:"plan_id"`
	PlanName       string    `json:"plan_name"`
	DaysCount      int       `json:"workout_days_count"`
	CircuitsCount  int       `json:"circuits_count"`
	ExercisesCount int       `json:"exercises_count"`
}
