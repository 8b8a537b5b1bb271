package program

import "github.com/claude/liftplan/internal/models"

// parseTables assembles days from table grids. Rows are visited in document
// order across all tables; day and circuit boundaries may appear in any grid.
// Exercise rows seen before any day header are kept under an implicit
// "Day 1" rather than dropped.
func (p *Parser) parseTables(tables []Table) []models.ParsedDay {
	var acc accumulator

	for _, table := range tables {
		for _, row := range table {
			f := RowFragment(row)
			if f.Empty() {
				continue
			}

			cls := p.classifier.Classify(f)
			switch cls.Kind {
			case KindDayHeader:
				acc.openDay(p.classifier.DayName(f), p.classifier.MuscleGroups(f.Text()))
			case KindCircuitHeader:
				acc.openCircuit(ExtractRounds(f.Text()))
			case KindExercise:
				acc.addExercise(*cls.Exercise)
			}
		}
	}

	return acc.finish()
}
