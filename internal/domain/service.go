// Package domain defines the workout record, its validation rules and the
// service that coordinates persistence.
package domain

import (
	"context"
	"errors"
	"log"
	"time"

	"example.com/workouts/internal/observability"
)

var (
	// ErrWorkoutNotFound is returned when no workout has the requested id.
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrInvalidID is returned when an id is malformed for the backing store.
	ErrInvalidID = errors.New("invalid workout id")
	// ErrStoreUnavailable is returned when the backing store cannot be reached in time.
	ErrStoreUnavailable = errors.New("workout store unavailable")
)

// Event types emitted after successful writes.
const (
	EventWorkoutCreated = "workout.created"
	EventWorkoutUpdated = "workout.updated"
)

// DefaultOperationTimeout bounds every store call when no explicit timeout is configured.
const DefaultOperationTimeout = 5 * time.Second

// WorkoutRepository captures persistence operations.
type WorkoutRepository interface {
	List(ctx context.Context) ([]Workout, error)
	Create(ctx context.Context, input WorkoutInput) (*Workout, error)
	Get(ctx context.Context, id string) (*Workout, error)
	Update(ctx context.Context, id string, input WorkoutInput) (*Workout, error)
}

// EventPublisher delivers change notifications for persisted workouts.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, workout Workout) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, Workout) error { return nil }

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithOperationTimeout bounds each repository call.
func WithOperationTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithPublisher sets the publisher notified after creates and updates.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithLogger overrides the logger used to report store and publish failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service orchestrates workout workflows.
type Service struct {
	repo      WorkoutRepository
	publisher EventPublisher
	timeout   time.Duration
	logger    *log.Logger
}

// NewService constructs a Service.
func NewService(repo WorkoutRepository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: noopPublisher{},
		timeout:   DefaultOperationTimeout,
		logger:    log.New(log.Writer(), "[workouts] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListWorkouts returns every stored workout.
func (s *Service) ListWorkouts(ctx context.Context) ([]Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	workouts, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	return workouts, nil
}

// CreateWorkout persists a validated input and announces it.
func (s *Service) CreateWorkout(ctx context.Context, input WorkoutInput) (*Workout, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	workout, err := s.repo.Create(opCtx, input)
	if err != nil {
		return nil, s.storeError("create", err)
	}
	observability.RecordWorkoutPersisted("create", workout.UpdatedAt)
	s.publish(ctx, EventWorkoutCreated, *workout)
	return workout, nil
}

// GetWorkout fetches by ID.
func (s *Service) GetWorkout(ctx context.Context, id string) (*Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	workout, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError("get", err)
	}
	return workout, nil
}

// UpdateWorkout replaces all fields of an existing workout.
func (s *Service) UpdateWorkout(ctx context.Context, id string, input WorkoutInput) (*Workout, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	workout, err := s.repo.Update(opCtx, id, input)
	if err != nil {
		return nil, s.storeError("update", err)
	}
	observability.RecordWorkoutPersisted("update", workout.UpdatedAt)
	s.publish(ctx, EventWorkoutUpdated, *workout)
	return workout, nil
}

// storeError counts unexpected failures; lookups that miss are not failures.
func (s *Service) storeError(op string, err error) error {
	if errors.Is(err, ErrWorkoutNotFound) || errors.Is(err, ErrInvalidID) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrStoreUnavailable) {
		err = errors.Join(ErrStoreUnavailable, err)
	}
	observability.RecordStoreError(op)
	return err
}

func (s *Service) publish(ctx context.Context, eventType string, workout Workout) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, eventType, workout); err != nil {
		s.logger.Printf("publish %s (workout=%s): %v", eventType, workout.ID, err)
		observability.RecordPublishFailure(eventType)
	}
}
