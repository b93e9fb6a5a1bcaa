package mongo

import (
	"time"

	"cloud.google.com/go/civil"
	"go.mongodb.org/mongo-driver/v2/bson"

	"example.com/workouts/internal/domain"
)

// workoutModel keeps the field names of the original collection so existing
// documents decode unchanged.
type workoutModel struct {
	ID               bson.ObjectID `bson:"_id"`
	ExerciseName     string        `bson:"exerciseName"`
	ExerciseDate     time.Time     `bson:"exerciseDate"`
	ExerciseDuration float64       `bson:"exerciseDuration"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
}

func toWorkoutModel(id bson.ObjectID, input domain.WorkoutInput, ts time.Time) *workoutModel {
	return &workoutModel{
		ID:               id,
		ExerciseName:     input.ExerciseName,
		ExerciseDate:     dateToTime(input.ExerciseDate),
		ExerciseDuration: input.ExerciseDuration,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

func fromWorkoutModel(m *workoutModel) domain.Workout {
	return domain.Workout{
		ID:               m.ID.Hex(),
		ExerciseName:     m.ExerciseName,
		ExerciseDate:     civil.DateOf(m.ExerciseDate.UTC()),
		ExerciseDuration: m.ExerciseDuration,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

// dateToTime stores a calendar date as UTC midnight.
func dateToTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}
