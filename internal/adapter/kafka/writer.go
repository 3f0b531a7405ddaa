// Package kafka publishes transformed listings to an optional sink topic for
// downstream import tooling.
package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/gotostcroix/geodir-migrate/internal/config"
	"github.com/gotostcroix/geodir-migrate/internal/domain"
)

// Writer produces listing messages to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes and publishes one listing to the sink topic.
func (w *Writer) Load(ctx context.Context, listing domain.Listing) error {
	msg, err := toMessage(listing)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage marshals a listing into a Kafka message.
func toMessage(listing domain.Listing) (kafkago.Message, error) {
	out, err := domain.SerializeListing(listing)
	if err != nil {
		return kafkago.Message{}, err
	}

	headers := make([]kafkago.Header, 0, len(out.Headers))
	for _, key := range []string{"listing_id", "generated_at"} {
		headers = append(headers, kafkago.Header{Key: key, Value: []byte(out.Headers[key])})
	}

	return kafkago.Message{
		Key:     out.Key,
		Value:   out.Value,
		Headers: headers,
	}, nil
}
