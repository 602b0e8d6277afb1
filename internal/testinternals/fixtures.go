// Package testinternals seeds rows the integration tests build on.
package testinternals

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) int {
	t.Helper()

	var id int
	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, gofakeit.Email(), "not-a-real-hash").Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})

	return id
}

// CreateExercise adds a library exercise targeting the given muscle groups, the first one is primary.
func CreateExercise(t *testing.T, ctx context.Context, pool *pgxpool.Pool, muscleGroups ...string) int {
	t.Helper()
	require.NotEmpty(t, muscleGroups)

	groupsJSON := `["` + strings.Join(muscleGroups, `","`) + `"]`

	var id int
	err := pool.QueryRow(ctx, `
		INSERT INTO exercises (name, primary_muscle_group, muscle_groups, equipment, movement_pattern, difficulty)
		VALUES ($1, $2, $3::jsonb, 'barbell', 'compound', 'intermediate')
		RETURNING id
	`, fmt.Sprintf("%s %s", gofakeit.Word(), gofakeit.UUID()), muscleGroups[0], groupsJSON).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM sets WHERE exercise_id = $1`, id)
		_, _ = pool.Exec(context.Background(), `DELETE FROM program_exercises WHERE exercise_id = $1`, id)
		_, _ = pool.Exec(context.Background(), `DELETE FROM exercises WHERE id = $1`, id)
	})

	return id
}

func CreateWorkout(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userID int, date time.Time, status string) int {
	t.Helper()

	var id int
	err := pool.QueryRow(ctx, `
		INSERT INTO workouts (user_id, date, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, date, status).Scan(&id)
	require.NoError(t, err)

	return id
}

func AddSet(t *testing.T, ctx context.Context, pool *pgxpool.Pool, workoutID, exerciseID int, weight float64, reps, rir int) int {
	t.Helper()

	var id int
	err := pool.QueryRow(ctx, `
		INSERT INTO sets (workout_id, exercise_id, set_number, weight_kg, reps, rir)
		VALUES ($1, $2, (SELECT COUNT(*) + 1 FROM sets WHERE workout_id = $1 AND exercise_id = $2), $3, $4, $5)
		RETURNING id
	`, workoutID, exerciseID, weight, reps, rir).Scan(&id)
	require.NoError(t, err)

	return id
}

// CreateProgramDay adds a one-day program for the user and returns the day id.
func CreateProgramDay(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userID int, dayOfWeek int, dayType string) int {
	t.Helper()

	var id int
	err := pool.QueryRow(ctx, `
		WITH p AS (
			INSERT INTO programs (user_id, name) VALUES ($1, $2) RETURNING id
		)
		INSERT INTO program_days (program_id, day_of_week, day_name, day_type)
		SELECT p.id, $3::int, $4::varchar, $4::varchar FROM p
		RETURNING id
	`, userID, gofakeit.Word()+" program", dayOfWeek, dayType).Scan(&id)
	require.NoError(t, err)

	return id
}
