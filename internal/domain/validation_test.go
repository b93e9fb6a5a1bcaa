package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	input, violations := Validate(RawWorkout{
		ExerciseName:     "  Run ",
		ExerciseDate:     "2024-01-15",
		ExerciseDuration: "30",
	})
	require.Empty(t, violations)
	require.Equal(t, WorkoutInput{
		ExerciseName:     "Run",
		ExerciseDate:     civil.Date{Year: 2024, Month: time.January, Day: 15},
		ExerciseDuration: 30,
	}, input)
}

func TestValidateEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, violations := Validate(RawWorkout{ExerciseName: name, ExerciseDate: "2024-01-15", ExerciseDuration: "30"})
		require.Len(t, violations, 1, "name %q", name)
		require.True(t, violations.Has(FieldExerciseName, KindEmptyField))
	}
}

func TestValidateInvalidDate(t *testing.T) {
	for _, date := range []string{"not-a-date", "", "2023-02-30", "2024-13-01", "15/01/2024", "2024-01/15", "2024-01-15T10:00:00Z", "2024-2-9", "2024/2/9", "2024-02-9", "24-01-15"} {
		_, violations := Validate(RawWorkout{ExerciseName: "Run", ExerciseDate: date, ExerciseDuration: "30"})
		require.Len(t, violations, 1, "date %q", date)
		require.True(t, violations.Has(FieldExerciseDate, KindInvalidDate), "date %q", date)
	}
}

func TestValidateAcceptedDateForms(t *testing.T) {
	want := civil.Date{Year: 2024, Month: time.February, Day: 9}
	for _, date := range []string{"2024-02-09", "2024/02/09", " 2024-02-09 "} {
		input, violations := Validate(RawWorkout{ExerciseName: "Run", ExerciseDate: date, ExerciseDuration: "30"})
		require.Empty(t, violations, "date %q", date)
		require.Equal(t, want, input.ExerciseDate)
	}
}

func TestValidateNotNumeric(t *testing.T) {
	for _, duration := range []string{"abc", "", "1e3", "0x10", "NaN", "Inf", "12.", "1,5"} {
		_, violations := Validate(RawWorkout{ExerciseName: "Run", ExerciseDate: "2024-01-15", ExerciseDuration: duration})
		require.Len(t, violations, 1, "duration %q", duration)
		require.True(t, violations.Has(FieldExerciseDuration, KindNotNumeric), "duration %q", duration)
	}
}

func TestValidateAcceptsPermissiveDurations(t *testing.T) {
	cases := map[string]float64{"30": 30, "-5": -5, "+7": 7, "12.5": 12.5, ".5": 0.5, "0": 0}
	for raw, want := range cases {
		input, violations := Validate(RawWorkout{ExerciseName: "Run", ExerciseDate: "2024-01-15", ExerciseDuration: raw})
		require.Empty(t, violations, "duration %q", raw)
		require.Equal(t, want, input.ExerciseDuration)
	}
}

func TestValidateAccumulatesInFieldOrder(t *testing.T) {
	input, violations := Validate(RawWorkout{ExerciseName: "", ExerciseDate: "not-a-date", ExerciseDuration: "abc"})
	require.Equal(t, WorkoutInput{}, input)
	require.Len(t, violations, 3)
	require.Equal(t, KindEmptyField, violations[0].Kind)
	require.Equal(t, KindInvalidDate, violations[1].Kind)
	require.Equal(t, KindNotNumeric, violations[2].Kind)
	require.Equal(t, "abc", violations[2].Value)
	require.Contains(t, violations.Error(), "exerciseDate: Invalid date format")
}

