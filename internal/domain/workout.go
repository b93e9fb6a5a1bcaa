package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// Workout is the canonical exercise record held by the store.
type Workout struct {
	ID               string
	ExerciseName     string
	ExerciseDate     civil.Date
	ExerciseDuration float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Input returns the user-editable fields of the workout.
func (w Workout) Input() WorkoutInput {
	return WorkoutInput{
		ExerciseName:     w.ExerciseName,
		ExerciseDate:     w.ExerciseDate,
		ExerciseDuration: w.ExerciseDuration,
	}
}
