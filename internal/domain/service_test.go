package domain

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

func TestServiceCreatePublishesEvent(t *testing.T) {
	repo := &stubRepo{}
	publisher := &stubPublisher{}
	service := NewService(repo, WithPublisher(publisher), WithLogger(log.New(testWriter{t}, "", 0)))

	input := WorkoutInput{ExerciseName: "Run", ExerciseDate: civil.Date{Year: 2024, Month: time.January, Day: 15}, ExerciseDuration: 30}
	workout, err := service.CreateWorkout(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "w-1", workout.ID)

	require.Equal(t, []string{EventWorkoutCreated}, publisher.events)
	require.Equal(t, "w-1", publisher.last.ID)
}

func TestServicePublishFailureDoesNotFailWrite(t *testing.T) {
	repo := &stubRepo{}
	publisher := &stubPublisher{err: errors.New("broker down")}
	service := NewService(repo, WithPublisher(publisher), WithLogger(log.New(testWriter{t}, "", 0)))

	_, err := service.UpdateWorkout(context.Background(), "w-1", WorkoutInput{ExerciseName: "Swim"})
	require.NoError(t, err)
	require.Equal(t, []string{EventWorkoutUpdated}, publisher.events)
}

func TestServiceDoesNotPublishFailedWrites(t *testing.T) {
	repo := &stubRepo{err: ErrWorkoutNotFound}
	publisher := &stubPublisher{}
	service := NewService(repo, WithPublisher(publisher))

	_, err := service.UpdateWorkout(context.Background(), "w-1", WorkoutInput{ExerciseName: "Swim"})
	require.ErrorIs(t, err, ErrWorkoutNotFound)
	require.Empty(t, publisher.events)
}

func TestServiceBoundsStoreCalls(t *testing.T) {
	repo := &stubRepo{block: true}
	service := NewService(repo, WithOperationTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := service.ListWorkouts(context.Background())
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestServiceGetPassesThroughLookupErrors(t *testing.T) {
	service := NewService(&stubRepo{err: ErrInvalidID})

	_, err := service.GetWorkout(context.Background(), "bad")
	require.ErrorIs(t, err, ErrInvalidID)
	require.NotErrorIs(t, err, ErrStoreUnavailable)
}

type stubRepo struct {
	err   error
	block bool
}

func (r *stubRepo) List(ctx context.Context) ([]Workout, error) {
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, r.err
}

func (r *stubRepo) Create(_ context.Context, input WorkoutInput) (*Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &Workout{ID: "w-1", ExerciseName: input.ExerciseName, ExerciseDate: input.ExerciseDate, ExerciseDuration: input.ExerciseDuration}, nil
}

func (r *stubRepo) Get(_ context.Context, id string) (*Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &Workout{ID: id}, nil
}

func (r *stubRepo) Update(_ context.Context, id string, input WorkoutInput) (*Workout, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &Workout{ID: id, ExerciseName: input.ExerciseName}, nil
}

type stubPublisher struct {
	err    error
	events []string
	last   Workout
}

func (p *stubPublisher) Publish(_ context.Context, eventType string, workout Workout) error {
	p.events = append(p.events, eventType)
	p.last = workout
	return p.err
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Log(string(p))
	return len(p), nil
}
