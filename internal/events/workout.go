// Package events defines workout change payloads and delivers them to Kafka.
package events

import (
	"time"

	"example.com/workouts/internal/domain"
)

// WorkoutChanged is emitted after a workout is created or edited.
type WorkoutChanged struct {
	WorkoutID        string    `json:"workout_id"`
	ExerciseName     string    `json:"exercise_name"`
	ExerciseDate     string    `json:"exercise_date"`
	ExerciseDuration float64   `json:"exercise_duration"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewWorkoutChanged builds the payload for workout.
func NewWorkoutChanged(workout domain.Workout) WorkoutChanged {
	occurred := workout.UpdatedAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return WorkoutChanged{
		WorkoutID:        workout.ID,
		ExerciseName:     workout.ExerciseName,
		ExerciseDate:     workout.ExerciseDate.String(),
		ExerciseDuration: workout.ExerciseDuration,
		OccurredAt:       occurred,
	}
}
