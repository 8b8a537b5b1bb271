package models

// ParsedPlan is the tree recovered from one workout program document.
type ParsedPlan struct {
	Name string      `json:"name"`
	Days []ParsedDay `json:"workout_days"`
}

// ParsedDay is one training day. Days are only attached to a plan once they
// hold at least one circuit.
type ParsedDay struct {
	Name         string          `json:"name"`
	DayNumber    int             `json:"day_number"`
	MuscleGroups *string         `json:"muscle_groups"`
	Circuits     []ParsedCircuit `json:"circuits"`
}

// ParsedCircuit is a group of exercises repeated for a number of rounds.
type ParsedCircuit struct {
	CircuitNumber int              `json:"circuit_number"`
	Name          string           `json:"name"`
	Rounds        int              `json:"rounds"`
	Exercises     []ParsedExercise `json:"exercises"`
}

// ParsedExercise is a single exercise entry. Sets and Reps are kept as text
// because programs write ranges ("3-4"), pyramids ("15, 12, 10") and tokens
// such as AMRAP.
type ParsedExercise struct {
	Name                 string  `json:"name"`
	Order                int     `json:"order"`
	Sets                 string  `json:"sets"`
	Reps                 string  `json:"reps"`
	WeightRecommendation *string `json:"weight_recommendation"`
	Notes                *string `json:"notes"`
}

// ExerciseCount returns the number of exercises across all days.
func (p ParsedPlan) ExerciseCount() int {
	n := 0
	for _, d := range p.Days {
		n += d.ExerciseCount()
	}
	return n
}

// ExerciseCount returns the number of exercises across all circuits of the day.
func (d ParsedDay) ExerciseCount() int {
	n := 0
	for _, c := range d.Circuits {
		n += len(c.Exercises)
	}
	return n
}
