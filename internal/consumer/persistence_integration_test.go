//go:build integration

package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"

	mongostore "example.com/workouts/internal/persistence/mongo"
)

func TestPersistenceHandlerStoresEvent(t *testing.T) {
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongostore.Connect(ctx, uri, 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	col := client.Database(mongostore.DefaultDatabase).Collection(mongostore.CollectionEvents)
	handler := NewPersistenceHandler(col)

	payload := json.RawMessage(`{"workout_id":"abc","exercise_name":"Run"}`)
	require.NoError(t, handler.Handle(ctx, Message{
		EventType: "workout.created",
		WorkoutID: "abc",
		Topic:     "workout_events",
		Offset:    5,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}))

	count, err := col.CountDocuments(ctx, bson.M{"workout_id": "abc"})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	var stored struct {
		Payload struct {
			ExerciseName string `bson:"exercise_name"`
		} `bson:"payload"`
	}
	require.NoError(t, col.FindOne(ctx, bson.M{"workout_id": "abc"}).Decode(&stored))
	require.Equal(t, "Run", stored.Payload.ExerciseName)
}
