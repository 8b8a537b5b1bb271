package program

import (
	"fmt"

	"github.com/claude/liftplan/internal/models"
)

// accumulator holds the day and circuit under construction during one scan.
// Containers are attached to their parent only when closed, and only if they
// received children.
type accumulator struct {
	plan    models.ParsedPlan
	day     *models.ParsedDay
	circuit *models.ParsedCircuit
}

// nextDayNumber is the number the next attached day will carry.
func (a *accumulator) nextDayNumber() int {
	return len(a.plan.Days) + 1
}

// openDay closes the current day and starts a new one.
func (a *accumulator) openDay(name string, muscleGroups *string) {
	a.closeDay()
	a.day = &models.ParsedDay{
		Name:         name,
		DayNumber:    a.nextDayNumber(),
		MuscleGroups: muscleGroups,
	}
}

// openCircuit closes the current circuit and starts the next one. An empty
// circuit is replaced in place so numbering stays gap-free.
func (a *accumulator) openCircuit(rounds int) {
	if a.day == nil {
		a.openDay(fmt.Sprintf("Day %d", a.nextDayNumber()), nil)
	}
	if a.circuit != nil && len(a.circuit.Exercises) == 0 {
		a.circuit.Rounds = rounds
		return
	}
	a.closeCircuit()
	n := len(a.day.Circuits) + 1
	a.circuit = &models.ParsedCircuit{
		CircuitNumber: n,
		Name:          fmt.Sprintf("Circuit %d", n),
		Rounds:        rounds,
	}
}

// addExercise appends ex to the current circuit, opening an implicit day and
// circuit if none is in progress.
func (a *accumulator) addExercise(ex models.ParsedExercise) {
	if a.circuit == nil {
		a.openCircuit(DefaultRounds)
	}
	ex.Order = len(a.circuit.Exercises) + 1
	a.circuit.Exercises = append(a.circuit.Exercises, ex)
}

func (a *accumulator) closeCircuit() {
	if a.circuit != nil && a.day != nil && len(a.circuit.Exercises) > 0 {
		a.day.Circuits = append(a.day.Circuits, *a.circuit)
	}
	a.circuit = nil
}

func (a *accumulator) closeDay() {
	a.closeCircuit()
	if a.day != nil && len(a.day.Circuits) > 0 {
		a.plan.Days = append(a.plan.Days, *a.day)
	}
	a.day = nil
}

// finish closes everything still open and returns the days collected.
func (a *accumulator) finish() []models.ParsedDay {
	a.closeDay()
	return a.plan.Days
}
