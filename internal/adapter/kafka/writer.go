package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/couchcryptid/wind-window-finder/internal/config"
	kafkago "github.com/segmentio/kafka-go"
)

// MonthMessage is the JSON value published for each qualifying month.
type MonthMessage struct {
	Month       string    `json:"month"`     // yyyy-mm
	FirstDay    string    `json:"first_day"` // yyyy-mm-dd
	GeneratedAt time.Time `json:"generated_at"`
}

// Writer publishes qualifying months to a Kafka topic.
// It implements pipeline.MonthSink.
type Writer struct {
	writer     *kafkago.Writer
	logger     *slog.Logger
	maxElapsed time.Duration
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		MaxAttempts:            1, // retried by LoadMonths
	}
	return &Writer{
		writer:     w,
		logger:     logger,
		maxElapsed: cfg.KafkaRetryTimeout,
	}
}

// LoadMonths publishes every month in a single WriteMessages call, retrying
// the whole batch with exponential backoff until the retry budget runs out.
func (w *Writer) LoadMonths(ctx context.Context, months []time.Time) error {
	if len(months) == 0 {
		return nil
	}
	msgs, err := buildMessages(months)
	if err != nil {
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = w.maxElapsed

	attempt := 0
	operation := func() error {
		attempt++
		err := w.writer.WriteMessages(ctx, msgs...)
		if err != nil {
			w.logger.Warn("publish months failed", "error", err, "attempt", attempt, "topic", w.writer.Topic)
		}
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("publish %d months to %s: %w", len(months), w.writer.Topic, err)
	}

	w.logger.Info("months published", "topic", w.writer.Topic, "count", len(months))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// buildMessages serializes months into one batch stamped with a single
// generation time.
func buildMessages(months []time.Time) ([]kafkago.Message, error) {
	generatedAt := clock.Now().UTC()
	msgs := make([]kafkago.Message, len(months))
	for i, m := range months {
		msg, err := serializeToMessage(m, generatedAt)
		if err != nil {
			return nil, err
		}
		msgs[i] = msg
	}
	return msgs, nil
}

// serializeToMessage marshals a month into a Kafka message keyed by yyyy-mm,
// so republishing a month lands on the same partition.
func serializeToMessage(month time.Time, generatedAt time.Time) (kafkago.Message, error) {
	key := month.Format("2006-01")
	data, err := json.Marshal(MonthMessage{
		Month:       key,
		FirstDay:    month.Format(time.DateOnly),
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize month %s: %w", key, err)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
