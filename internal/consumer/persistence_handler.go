package consumer

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
)

// PersistenceHandler appends consumed workout events to an audit collection.
type PersistenceHandler struct {
	col *mongod.Collection
}

// NewPersistenceHandler constructs a handler writing into col.
func NewPersistenceHandler(col *mongod.Collection) *PersistenceHandler {
	return &PersistenceHandler{col: col}
}

// Handle stores the event alongside its Kafka coordinates.
func (h *PersistenceHandler) Handle(ctx context.Context, msg Message) error {
	doc, err := eventDocument(msg, time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := h.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert workout event: %w", err)
	}
	return nil
}

func eventDocument(msg Message, receivedAt time.Time) (bson.D, error) {
	var payload bson.D
	if err := bson.UnmarshalExtJSON(msg.Payload, false, &payload); err != nil {
		return nil, fmt.Errorf("convert payload: %w", err)
	}
	return bson.D{
		{Key: "event_type", Value: msg.EventType},
		{Key: "workout_id", Value: msg.WorkoutID},
		{Key: "topic", Value: msg.Topic},
		{Key: "partition", Value: msg.Partition},
		{Key: "record_offset", Value: msg.Offset},
		{Key: "payload", Value: payload},
		{Key: "produced_at", Value: msg.Timestamp},
		{Key: "received_at", Value: receivedAt},
	}, nil
}
