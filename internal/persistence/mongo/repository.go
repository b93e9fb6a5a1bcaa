package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"example.com/workouts/internal/domain"
)

var _ domain.WorkoutRepository = (*Repository)(nil)

// Repository provides MongoDB-backed persistence for workouts.
// The caller owns the client lifecycle.
type Repository struct {
	col *mongod.Collection
}

// NewRepository constructs a Repository over the workouts collection of db.
func NewRepository(db *mongod.Database) *Repository {
	return &Repository{col: db.Collection(CollectionWorkouts)}
}

// List returns all workouts in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Workout, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, classify("list", err)
	}
	defer cursor.Close(ctx)

	var models []workoutModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, classify("list decode", err)
	}

	workouts := make([]domain.Workout, 0, len(models))
	for i := range models {
		workouts = append(workouts, fromWorkoutModel(&models[i]))
	}
	return workouts, nil
}

// Create inserts a workout with a freshly generated ObjectID.
func (r *Repository) Create(ctx context.Context, input domain.WorkoutInput) (*domain.Workout, error) {
	m := toWorkoutModel(bson.NewObjectID(), input, now())
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return nil, classify("create", err)
	}
	workout := fromWorkoutModel(m)
	return &workout, nil
}

// Get retrieves a workout by its hex ObjectID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Workout, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var m workoutModel
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, classify("get", err)
	}
	workout := fromWorkoutModel(&m)
	return &workout, nil
}

// Update replaces the three workout fields and returns the stored result.
func (r *Repository) Update(ctx context.Context, id string, input domain.WorkoutInput) (*domain.Workout, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"exerciseName":     input.ExerciseName,
		"exerciseDate":     dateToTime(input.ExerciseDate),
		"exerciseDuration": input.ExerciseDuration,
		"updatedAt":        now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m workoutModel
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, classify("update", err)
	}
	workout := fromWorkoutModel(&m)
	return &workout, nil
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}
