// Package mongo persists workouts in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/topology"

	"example.com/workouts/internal/domain"
)

// Collection name constants.
const (
	CollectionWorkouts = "workouts"
	CollectionEvents   = "workout_events"
)

// DefaultDatabase is used when the connection string names no database.
const DefaultDatabase = "workoutTrackerDB"

// Connect opens a client whose server selection, dial and operations are
// bounded by timeout, and verifies the server answers a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongod.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout).
		SetTimeout(timeout)

	client, err := mongod.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("workouts/mongo: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, classify("ping", err)
	}
	return client, nil
}

// Close disconnects client, waiting at most timeout for in-flight work.
func Close(client *mongod.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil && !errors.Is(err, mongod.ErrClientDisconnected) {
		return fmt.Errorf("workouts/mongo: disconnect: %w", err)
	}
	return nil
}

// DatabaseName returns the database named in uri, or DefaultDatabase.
func DatabaseName(uri string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

// Migrate creates the indexes used by the workout and event collections.
func Migrate(ctx context.Context, db *mongod.Database) error {
	indexes := map[string][]mongod.IndexModel{
		CollectionWorkouts: {
			{Keys: bson.D{{Key: "exerciseDate", Value: 1}}},
		},
		CollectionEvents: {
			{Keys: bson.D{{Key: "workout_id", Value: 1}, {Key: "received_at", Value: 1}}},
		},
	}

	for col, models := range indexes {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return classify("migrate "+col, err)
		}
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────

func now() time.Time {
	return time.Now().UTC()
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// isUnavailable reports driver failures that mean the server could not be reached in time.
func isUnavailable(err error) bool {
	var selection topology.ServerSelectionError
	return mongod.IsNetworkError(err) ||
		mongod.IsTimeout(err) ||
		errors.As(err, &selection) ||
		errors.Is(err, mongod.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func classify(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("workouts/mongo: %s: %w", op, err)
}
