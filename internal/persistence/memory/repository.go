// Package memory provides an in-process workout store for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/workouts/internal/domain"
)

// Repository stores workouts in memory, preserving insertion order.
type Repository struct {
	mu       sync.RWMutex
	workouts map[string]domain.Workout
	order    []string
	now      func() time.Time
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		workouts: make(map[string]domain.Workout),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List implements domain.WorkoutRepository.
func (r *Repository) List(ctx context.Context) ([]domain.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Workout, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.workouts[id])
	}
	return out, nil
}

// Create implements domain.WorkoutRepository.
func (r *Repository) Create(ctx context.Context, input domain.WorkoutInput) (*domain.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	workout := domain.Workout{
		ID:               uuid.NewString(),
		ExerciseName:     input.ExerciseName,
		ExerciseDate:     input.ExerciseDate,
		ExerciseDuration: input.ExerciseDuration,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.workouts[workout.ID] = workout
	r.order = append(r.order, workout.ID)
	return &workout, nil
}

// Get implements domain.WorkoutRepository.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	workout, ok := r.workouts[id]
	if !ok {
		return nil, domain.ErrWorkoutNotFound
	}
	return &workout, nil
}

// Update implements domain.WorkoutRepository.
func (r *Repository) Update(ctx context.Context, id string, input domain.WorkoutInput) (*domain.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	workout, ok := r.workouts[id]
	if !ok {
		return nil, domain.ErrWorkoutNotFound
	}
	workout.ExerciseName = input.ExerciseName
	workout.ExerciseDate = input.ExerciseDate
	workout.ExerciseDuration = input.ExerciseDuration
	workout.UpdatedAt = r.now()
	r.workouts[id] = workout
	return &workout, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}
