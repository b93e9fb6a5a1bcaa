package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Form field names shared by the HTML forms, JSON bodies and violation paths.
const (
	FieldExerciseName     = "exerciseName"
	FieldExerciseDate     = "exerciseDate"
	FieldExerciseDuration = "exerciseDuration"
)

// ViolationKind is the machine-readable category of a field violation.
type ViolationKind string

const (
	KindEmptyField  ViolationKind = "EmptyField"
	KindInvalidDate ViolationKind = "InvalidDate"
	KindNotNumeric  ViolationKind = "NotNumeric"
)

// Violation describes a single rejected field.
type Violation struct {
	Field   string
	Kind    ViolationKind
	Message string
	Value   string
}

// Violations is the ordered list of field failures produced by Validate.
type Violations []Violation

// Error implements error so violations can travel through error returns.
func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", violation.Field, violation.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether a violation of kind exists for field.
func (v Violations) Has(field string, kind ViolationKind) bool {
	for _, violation := range v {
		if violation.Field == field && violation.Kind == kind {
			return true
		}
	}
	return false
}

// RawWorkout carries the untyped values submitted by a client.
type RawWorkout struct {
	ExerciseName     string
	ExerciseDate     string
	ExerciseDuration string
}

// WorkoutInput is the accepted, normalised triple handed to the store.
type WorkoutInput struct {
	ExerciseName     string
	ExerciseDate     civil.Date
	ExerciseDuration float64
}

var numericPattern = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)

// Validate checks every field of raw and returns either the normalised input
// or the full list of violations. It never short-circuits.
func Validate(raw RawWorkout) (WorkoutInput, Violations) {
	var (
		input      WorkoutInput
		violations Violations
	)

	name := strings.TrimSpace(raw.ExerciseName)
	if name == "" {
		violations = append(violations, Violation{
			Field:   FieldExerciseName,
			Kind:    KindEmptyField,
			Message: "Exercise name is required",
			Value:   raw.ExerciseName,
		})
	}
	input.ExerciseName = name

	date, err := ParseDate(raw.ExerciseDate)
	if err != nil {
		violations = append(violations, Violation{
			Field:   FieldExerciseDate,
			Kind:    KindInvalidDate,
			Message: "Invalid date format",
			Value:   raw.ExerciseDate,
		})
	}
	input.ExerciseDate = date

	duration, err := ParseDuration(raw.ExerciseDuration)
	if err != nil {
		violations = append(violations, Violation{
			Field:   FieldExerciseDuration,
			Kind:    KindNotNumeric,
			Message: "Duration should be a number",
			Value:   raw.ExerciseDuration,
		})
	}
	input.ExerciseDuration = duration

	if len(violations) > 0 {
		return WorkoutInput{}, violations
	}
	return input, nil
}

// ParseDate accepts zero-padded YYYY-MM-DD or YYYY/MM/DD and rejects days
// that do not exist.
func ParseDate(value string) (civil.Date, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		if strings.Contains(value, "-") {
			return civil.Date{}, fmt.Errorf("mixed date delimiters in %q", value)
		}
		value = strings.ReplaceAll(value, "/", "-")
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

// ParseDuration accepts plain decimal numbers only: no exponents, hex, NaN or Inf.
func ParseDuration(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if !numericPattern.MatchString(value) {
		return 0, fmt.Errorf("%q is not numeric", value)
	}
	return strconv.ParseFloat(value, 64)
}
