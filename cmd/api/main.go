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

	"example.com/workouts/internal/api"
	"example.com/workouts/internal/config"
	"example.com/workouts/internal/domain"
	"example.com/workouts/internal/events"
	"example.com/workouts/internal/persistence/memory"
	mongostore "example.com/workouts/internal/persistence/mongo"
	pgstore "example.com/workouts/internal/persistence/postgres"
	httptransport "example.com/workouts/internal/transport/http"
	"example.com/workouts/internal/web"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	opts := []domain.Option{domain.WithOperationTimeout(cfg.StoreTimeout)}
	if cfg.EventsEnabled() {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()
		opts = append(opts, domain.WithPublisher(events.NewPublisher(producer, cfg.EventsTopic)))
		log.Printf("publishing workout events to %s", cfg.EventsTopic)
	}

	service := domain.NewService(repo, opts...)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	router := api.NewHandler(service, renderer).Routes()
	router.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress()), router)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("workout tracker listening on %s (store=%s)", cfg.HTTPAddress(), cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// openStore connects the configured backend and returns a func releasing it.
func openStore(ctx context.Context, cfg config.Config) (domain.WorkoutRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.NewRepository(), func() {}, nil
	case config.StorePostgres:
		pool, err := pgstore.NewPool(ctx, cfg.PostgresURL, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		repo := pgstore.NewRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	default:
		client, err := mongostore.Connect(ctx, cfg.MongoURL, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			if err := mongostore.Close(client, cfg.StoreTimeout); err != nil {
				log.Printf("mongo close: %v", err)
			}
		}
		db := client.Database(mongostore.DatabaseName(cfg.MongoURL))
		if err := mongostore.Migrate(ctx, db); err != nil {
			disconnect()
			return nil, nil, err
		}
		return mongostore.NewRepository(db), disconnect, nil
	}
}

