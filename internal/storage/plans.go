package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested plan or day does not exist.
var ErrNotFound = errors.New("not found")

// InsertPlan stores a plan and its full day tree in one transaction. IDs and
// created_at are written back into plan. A zero plan ID is replaced by a new
// random UUID.
func (db *DB) InsertPlan(ctx context.Context, plan *models.PlanRow) (uuid.UUID, error) {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}

	err := db.inTx(ctx, func(tx pgx.Tx) error {
		return insertPlanTree(ctx, tx, plan)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return plan.ID, nil
}

// insertPlanTree inserts plan and its days, circuits and exercises, writing
// the generated IDs back into the rows.
func insertPlanTree(ctx context.Context, tx pgx.Tx, plan *models.PlanRow) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO workout_plans (id, name, description, source_filename)
		 VALUES ($1,$2,$3,$4)
		 RETURNING created_at`,
		plan.ID, plan.Name, plan.Description, plan.SourceFilename,
	).Scan(&plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i := range plan.Days {
		day := &plan.Days[i]
		day.PlanID = plan.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_days (plan_id, name, day_number, muscle_groups)
			 VALUES ($1,$2,$3,$4)
			 RETURNING id`,
			day.PlanID, day.Name, day.DayNumber, day.MuscleGroups,
		).Scan(&day.ID)
		if err != nil {
			return fmt.Errorf("inserting day %d: %w", day.DayNumber, err)
		}

		for j := range day.Circuits {
			c := &day.Circuits[j]
			c.DayID = day.ID
			err := tx.QueryRow(ctx,
				`INSERT INTO circuits (workout_day_id, circuit_number, name, rounds)
				 VALUES ($1,$2,$3,$4)
				 RETURNING id`,
				c.DayID, c.CircuitNumber, c.Name, c.Rounds,
			).Scan(&c.ID)
			if err != nil {
				return fmt.Errorf("inserting circuit %d of day %d: %w", c.CircuitNumber, day.DayNumber, err)
			}

			for k := range c.Exercises {
				e := &c.Exercises[k]
				e.CircuitID = c.ID
				err := tx.QueryRow(ctx,
					`INSERT INTO exercises (circuit_id, name, sort_order, sets, reps,
					 weight_recommendation, notes, video_url, image_url)
					 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
					 RETURNING id`,
					e.CircuitID, e.Name, e.Order, e.Sets, e.Reps,
					e.WeightRecommendation, e.Notes, e.VideoURL, e.ImageURL,
				).Scan(&e.ID)
				if err != nil {
					return fmt.Errorf("inserting exercise %q: %w", e.Name, err)
				}
			}
		}
	}

	return nil
}

// ListPlans returns all plans, newest first, with their day counts.
func (db *DB) ListPlans(ctx context.Context) ([]models.PlanSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT p.id, p.name, p.description, p.created_at, COUNT(d.id)
		 FROM workout_plans p
		 LEFT JOIN workout_days d ON d.plan_id = p.id
		 GROUP BY p.id
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.PlanSummary
	for rows.Next() {
		var p models.PlanSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.DayCount); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetPlan returns a plan with its full day tree.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRow, error) {
	var p models.PlanRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, source_filename, created_at
		 FROM workout_plans
		 WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.SourceFilename, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	p.Days, err = db.loadDays(ctx, "d.plan_id = $1", id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePlan removes a plan; days, circuits and exercises cascade.
func (db *DB) DeletePlan(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting plan %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDays returns day summaries, optionally restricted to one plan.
func (db *DB) ListDays(ctx context.Context, planID *uuid.UUID) ([]models.DaySummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT d.id, d.plan_id, d.name, d.day_number, d.muscle_groups,
		 COUNT(DISTINCT c.id), COUNT(e.id)
		 FROM workout_days d
		 LEFT JOIN circuits c ON c.workout_day_id = d.id
		 LEFT JOIN exercises e ON e.circuit_id = c.id
		 WHERE $1::uuid IS NULL OR d.plan_id = $1
		 GROUP BY d.id
		 ORDER BY d.plan_id, d.day_number`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	var result []models.DaySummary
	for rows.Next() {
		var d models.DaySummary
		if err := rows.Scan(&d.ID, &d.PlanID, &d.Name, &d.DayNumber, &d.MuscleGroups,
			&d.CircuitCount, &d.ExerciseCount); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// GetDay returns one day with its circuits and exercises.
func (db *DB) GetDay(ctx context.Context, id int64) (*models.DayRow, error) {
	days, err := db.loadDays(ctx, "d.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrNotFound
	}
	return &days[0], nil
}

// loadDays reads the days matching where, then their circuits and exercises
// with one query per level.
func (db *DB) loadDays(ctx context.Context, where string, arg any) ([]models.DayRow, error) {
	dayRows, err := db.Pool.Query(ctx,
		`SELECT d.id, d.plan_id, d.name, d.day_number, d.muscle_groups
		 FROM workout_days d
		 WHERE `+where+`
		 ORDER BY d.day_number`,
		arg)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer dayRows.Close()

	var days []models.DayRow
	for dayRows.Next() {
		var d models.DayRow
		if err := dayRows.Scan(&d.ID, &d.PlanID, &d.Name, &d.DayNumber, &d.MuscleGroups); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		days = append(days, d)
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}

	circuitRows, err := db.Pool.Query(ctx,
		`SELECT c.id, c.workout_day_id, c.circuit_number, c.name, c.rounds
		 FROM circuits c
		 JOIN workout_days d ON d.id = c.workout_day_id
		 WHERE `+where+`
		 ORDER BY c.workout_day_id, c.circuit_number`,
		arg)
	if err != nil {
		return nil, fmt.Errorf("querying circuits: %w", err)
	}
	defer circuitRows.Close()

	var circuits []models.CircuitRow
	for circuitRows.Next() {
		var c models.CircuitRow
		if err := circuitRows.Scan(&c.ID, &c.DayID, &c.CircuitNumber, &c.Name, &c.Rounds); err != nil {
			return nil, fmt.Errorf("scanning circuit: %w", err)
		}
		circuits = append(circuits, c)
	}
	if err := circuitRows.Err(); err != nil {
		return nil, err
	}

	exerciseRows, err := db.Pool.Query(ctx,
		`SELECT e.id, e.circuit_id, e.name, e.sort_order, e.sets, e.reps,
		 e.weight_recommendation, e.notes, e.video_url, e.image_url
		 FROM exercises e
		 JOIN circuits c ON c.id = e.circuit_id
		 JOIN workout_days d ON d.id = c.workout_day_id
		 WHERE `+where+`
		 ORDER BY e.circuit_id, e.sort_order`,
		arg)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer exerciseRows.Close()

	var exercises []models.ExerciseRow
	for exerciseRows.Next() {
		var e models.ExerciseRow
		if err := exerciseRows.Scan(&e.ID, &e.CircuitID, &e.Name, &e.Order, &e.Sets, &e.Reps,
			&e.WeightRecommendation, &e.Notes, &e.VideoURL, &e.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := exerciseRows.Err(); err != nil {
		return nil, err
	}

	return assembleDays(days, circuits, exercises), nil
}

// assembleDays nests exercises into circuits and circuits into days by
// foreign key, keeping the input order at every level.
func assembleDays(days []models.DayRow, circuits []models.CircuitRow, exercises []models.ExerciseRow) []models.DayRow {
	byCircuit := make(map[int64][]models.ExerciseRow)
	for _, e := range exercises {
		byCircuit[e.CircuitID] = append(byCircuit[e.CircuitID], e)
	}

	byDay := make(map[int64][]models.CircuitRow)
	for _, c := range circuits {
		c.Exercises = byCircuit[c.ID]
		byDay[c.DayID] = append(byDay[c.DayID], c)
	}

	for i := range days {
		days[i].Circuits = byDay[days[i].ID]
	}
	return days
}
