// Package postgres provides a relational workout store built on pgx.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/workouts/internal/domain"
)

//go:embed schema.sql
var schema string

var _ domain.WorkoutRepository = (*Repository)(nil)

const selectColumns = `id, exercise_name, exercise_date, exercise_duration, created_at, updated_at`

// Repository provides Postgres-backed persistence for workouts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NewPool builds a pool whose dial is bounded by timeout.
func NewPool(ctx context.Context, url string, timeout time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("workouts/postgres: parse config: %w", err)
	}
	cfg.ConnConfig.ConnectTimeout = timeout
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Migrate creates the workouts table when it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return classify("migrate", err)
	}
	return nil
}

// List returns workouts ordered by creation.
func (r *Repository) List(ctx context.Context) ([]domain.Workout, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM workouts ORDER BY created_at, id`)
	if err != nil {
		return nil, classify("list", err)
	}
	defer rows.Close()

	results := make([]domain.Workout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, classify("list scan", err)
		}
		results = append(results, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", err)
	}
	return results, nil
}

// Create inserts a workout with a fresh UUID.
func (r *Repository) Create(ctx context.Context, input domain.WorkoutInput) (*domain.Workout, error) {
	const stmt = `INSERT INTO workouts (id, exercise_name, exercise_date, exercise_duration, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$5)
        RETURNING ` + selectColumns

	row := r.pool.QueryRow(ctx, stmt,
		uuid.New(),
		input.ExerciseName,
		input.ExerciseDate.In(time.UTC),
		input.ExerciseDuration,
		time.Now().UTC(),
	)
	workout, err := scanWorkout(row)
	if err != nil {
		return nil, classify("create", err)
	}
	return &workout, nil
}

// Get retrieves a workout by ID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Workout, error) {
	workoutID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM workouts WHERE id=$1`, workoutID)
	workout, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, classify("get", err)
	}
	return &workout, nil
}

// Update replaces every editable column of the workout.
func (r *Repository) Update(ctx context.Context, id string, input domain.WorkoutInput) (*domain.Workout, error) {
	workoutID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	const stmt = `UPDATE workouts
        SET exercise_name=$2, exercise_date=$3, exercise_duration=$4, updated_at=$5
        WHERE id=$1
        RETURNING ` + selectColumns

	row := r.pool.QueryRow(ctx, stmt,
		workoutID,
		input.ExerciseName,
		input.ExerciseDate.In(time.UTC),
		input.ExerciseDuration,
		time.Now().UTC(),
	)
	workout, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, classify("update", err)
	}
	return &workout, nil
}

func scanWorkout(row pgx.Row) (domain.Workout, error) {
	var (
		w    domain.Workout
		id   uuid.UUID
		date time.Time
	)
	if err := row.Scan(&id, &w.ExerciseName, &date, &w.ExerciseDuration, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.Workout{}, err
	}
	w.ID = id.String()
	w.ExerciseDate = civil.DateOf(date.UTC())
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return w, nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return parsed, nil
}

func classify(op string, err error) error {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("workouts/postgres: %s: %w", op, err)
}
