package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"example.com/workouts/internal/config"
	"example.com/workouts/internal/consumer"
	mongostore "example.com/workouts/internal/persistence/mongo"
)

func main() {
	cfg := config.Load()
	if !cfg.EventsEnabled() {
		log.Fatal("KAFKA_BROKERS must be set to run the audit consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mongostore.Connect(ctx, cfg.MongoURL, cfg.StoreTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() {
		if err := mongostore.Close(client, cfg.StoreTimeout); err != nil {
			log.Printf("mongo close: %v", err)
		}
	}()

	db := client.Database(mongostore.DatabaseName(cfg.MongoURL))
	if err := mongostore.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to migrate mongo: %v", err)
	}
	handler := consumer.NewPersistenceHandler(db.Collection(mongostore.CollectionEvents))

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}

	go func() {
		log.Printf("consumer metrics listening on %s", cfg.MetricsAddress)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         cfg.KafkaBrokers,
		GroupID:         cfg.ConsumerGroupID,
		Topic:           cfg.EventsTopic,
		MinBytes:        1e3,
		MaxBytes:        10e6,
		CommitInterval:  time.Second,
		RetentionTime:   24 * time.Hour,
		ReadLagInterval: -1,
	})
	defer reader.Close()

	proc := consumer.NewProcessor(reader, handler)

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Printf("consumer started (topic=%s, group=%s)", cfg.EventsTopic, cfg.ConsumerGroupID)
		if err := proc.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("consumer stopped with error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("consumer shutdown requested")
	case <-done:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics server shutdown error: %v", err)
	}

	<-done
}
