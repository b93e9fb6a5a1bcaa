//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"example.com/workouts/internal/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := Connect(ctx, uri, 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database(DefaultDatabase)
	require.NoError(t, Migrate(ctx, db))
	return NewRepository(db)
}

func TestRepositoryRoundTripAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created, err := repo.Create(ctx, domain.WorkoutInput{
		ExerciseName:     "Run",
		ExerciseDate:     civil.Date{Year: 2024, Month: time.January, Day: 15},
		ExerciseDuration: 30,
	})
	require.NoError(t, err)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Run", stored.ExerciseName)
	require.Equal(t, "2024-01-15", stored.ExerciseDate.String())
	require.Equal(t, 30.0, stored.ExerciseDuration)

	again, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, stored.Input(), again.Input())

	updated, err := repo.Update(ctx, created.ID, domain.WorkoutInput{
		ExerciseName:     "Swim",
		ExerciseDate:     civil.Date{Year: 2024, Month: time.February, Day: 1},
		ExerciseDuration: 45,
	})
	require.NoError(t, err)
	require.Equal(t, "Swim", updated.ExerciseName)

	stored, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Swim", stored.ExerciseName)
	require.Equal(t, "2024-02-01", stored.ExerciseDate.String())
	require.Equal(t, 45.0, stored.ExerciseDuration)

	workouts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
}

func TestRepositoryMissingWorkout(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Get(ctx, bson.NewObjectID().Hex())
	require.ErrorIs(t, err, domain.ErrWorkoutNotFound)

	_, err = repo.Update(ctx, bson.NewObjectID().Hex(), domain.WorkoutInput{ExerciseName: "Row"})
	require.ErrorIs(t, err, domain.ErrWorkoutNotFound)
}

func TestConnectUnreachableServerIsUnavailable(t *testing.T) {
	_, err := Connect(context.Background(), "mongodb://127.0.0.1:1/workoutTrackerDB", 500*time.Millisecond)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
