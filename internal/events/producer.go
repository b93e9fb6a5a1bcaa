package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"

	"example.com/workouts/internal/domain"
)

// Message header keys attached to every workout event.
const (
	HeaderEventType = "event_type"
	HeaderWorkoutID = "workout_id"
)

// DefaultTopic receives workout events unless configured otherwise.
const DefaultTopic = "workout_events"

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// KafkaProducer lazily manages writers per topic.
type KafkaProducer struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

// WriteMessages writes messages to the given topic, creating a writer if necessary.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	writer := p.writerForTopic(topic)
	return writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = writer
	return writer
}

// Close releases all writers.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}

// Publisher implements domain.EventPublisher on top of a Kafka writer.
type Publisher struct {
	writer messageWriter
	topic  string
}

var _ domain.EventPublisher = (*Publisher)(nil)

// NewPublisher constructs a Publisher writing to topic.
func NewPublisher(writer messageWriter, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{writer: writer, topic: topic}
}

// Publish encodes the workout and writes it keyed by workout id, so events
// for one workout stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, eventType string, workout domain.Workout) error {
	body, err := json.Marshal(NewWorkoutChanged(workout))
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(workout.ID),
		Value: body,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderWorkoutID, Value: []byte(workout.ID)},
		},
	}
	return p.writer.WriteMessages(ctx, p.topic, msg)
}
