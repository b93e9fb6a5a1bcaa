package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/workouts/internal/domain"
)

func TestPublisherWritesKeyedMessage(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewPublisher(writer, "")

	updated := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	workout := domain.Workout{
		ID:               "65a4f0c2e1b2c3d4e5f60718",
		ExerciseName:     "Run",
		ExerciseDate:     civil.Date{Year: 2024, Month: time.January, Day: 15},
		ExerciseDuration: 30,
		UpdatedAt:        updated,
	}

	require.NoError(t, publisher.Publish(context.Background(), domain.EventWorkoutCreated, workout))

	require.Equal(t, DefaultTopic, writer.topic)
	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	require.Equal(t, workout.ID, string(msg.Key))
	require.Equal(t, []kafka.Header{
		{Key: HeaderEventType, Value: []byte(domain.EventWorkoutCreated)},
		{Key: HeaderWorkoutID, Value: []byte(workout.ID)},
	}, msg.Headers)

	var payload WorkoutChanged
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	require.Equal(t, WorkoutChanged{
		WorkoutID:        workout.ID,
		ExerciseName:     "Run",
		ExerciseDate:     "2024-01-15",
		ExerciseDuration: 30,
		OccurredAt:       updated,
	}, payload)
}

func TestPublisherReturnsWriterError(t *testing.T) {
	writer := &stubWriter{err: errors.New("broker down")}
	publisher := NewPublisher(writer, "custom_topic")

	err := publisher.Publish(context.Background(), domain.EventWorkoutUpdated, domain.Workout{ID: "abc"})
	require.EqualError(t, err, "broker down")
	require.Equal(t, "custom_topic", writer.topic)
}

type stubWriter struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (w *stubWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	w.topic = topic
	w.messages = append(w.messages, msgs...)
	return w.err
}
