package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/quangdng/starlog/adapters/event"
	"github.com/quangdng/starlog/adapters/persistence"
	ratingUC "github.com/quangdng/starlog/internal/application/usecase/rating"
	"github.com/quangdng/starlog/internal/config"
	"github.com/quangdng/starlog/pkg/logger"
)

func main() {
	fmt.Println("Starting Starlog Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	// Repositories
	mediaRepo := persistence.NewPostgresMediaRepo(dbPool)
	ratingRepo := persistence.NewPostgresRatingRepo(dbPool)

	// Worker Use Case
	refreshStatsUC := ratingUC.NewRefreshStatsUseCase(ratingRepo, mediaRepo)

	// Kafka Consumer
	ratingConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicRatingEvents,
		GroupID:  "rating-stats-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer ratingConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicRatingEvents)

	ctx := context.Background()
	for {
		msg, err := ratingConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.RatingEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(ratingConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for MediaID: %s", payload.EventType, payload.MediaID)

		err = refreshStatsUC.Execute(ctx, payload)
		if err != nil {
			log.Printf("ERROR: Failed to process event for MediaID %s: %v", payload.MediaID, err)
			continue
		}

		commitMessage(ratingConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
