package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/quangdng/starlog/internal/config"
)

const (
	TopicMediaEvents  = "media.events"
	TopicRatingEvents = "rating.events"
)

// Publisher is what the use cases depend on; the Kafka client is the
// production implementation.
type Publisher interface {
	PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error
	PublishRatingEvent(ctx context.Context, payload RatingEventPayload) error
}

type KafkaProducerClient struct {
	MediaEventsWriter  *kafka.Writer
	RatingEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'media.events'
	mediaWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMediaEvents,
		Balancer: &kafka.LeastBytes{},
	}

	// writer 'rating.events'
	ratingWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicRatingEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		MediaEventsWriter:  mediaWriter,
		RatingEventsWriter: ratingWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal media event: %w", err)
	}
	return c.MediaEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.MediaID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishRatingEvent(ctx context.Context, payload RatingEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal rating event: %w", err)
	}
	return c.RatingEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.MediaID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.MediaEventsWriter != nil {
		c.MediaEventsWriter.Close()
	}
	if c.RatingEventsWriter != nil {
		c.RatingEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
