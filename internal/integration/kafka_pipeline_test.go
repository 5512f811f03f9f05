//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/adapter/console"
	"github.com/couchcryptid/wind-window-finder/internal/adapter/file"
	"github.com/couchcryptid/wind-window-finder/internal/adapter/kafka"
	"github.com/couchcryptid/wind-window-finder/internal/config"
	"github.com/couchcryptid/wind-window-finder/internal/domain"
	"github.com/couchcryptid/wind-window-finder/internal/observability"
	"github.com/couchcryptid/wind-window-finder/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "test-good-wind-months"

// publishedMonth holds a deserialized message read from the months topic.
type publishedMonth struct {
	Message kafka.MonthMessage
	Key     string
	Headers map[string]string
}

func readMonth(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMonth {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from months topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var m kafka.MonthMessage
	require.NoError(t, json.Unmarshal(msg.Value, &m), "unmarshal month message")

	return publishedMonth{Message: m, Key: string(msg.Key), Headers: headers}
}

// TestPipelineEndToEnd runs the file source through the pipeline into the
// console and Kafka sinks and reads the months back from the topic.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaTopic:        testTopic,
		KafkaRetryTimeout: 30 * time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	writer := kafka.NewWriter(cfg, logger)
	defer writer.Close()

	var out bytes.Buffer
	sinks := pipeline.MultiSink{console.NewWriter(&out), writer}
	source := file.NewReader(filepath.Join("..", "adapter", "file", "testdata", "sample.tsv"), "\t")
	metrics := observability.NewMetrics()

	hours, err := domain.NewHourRange(0, 23)
	require.NoError(t, err)

	report, err := pipeline.New(source, sinks, logger, metrics).
		Run(ctx, pipeline.Criteria{Predicate: domain.AcceptAll, Hours: hours, MinWind: 0, MaxPrecip: 100})
	require.NoError(t, err)
	require.Len(t, report.Months, 3)
	assert.Equal(t, "2014-01-01\n2014-04-01\n2014-12-01\n", out.String())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.QualifyingMonths))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer consumer.Close()

	wantKeys := []string{"2014-01", "2014-04", "2014-12"}
	for _, want := range wantKeys {
		got := readMonth(ctx, t, consumer)
		assert.Equal(t, want, got.Key)
		assert.Equal(t, want, got.Message.Month)
		assert.Equal(t, want+"-01", got.Message.FirstDay)
		assert.NotEmpty(t, got.Headers["generated_at"])
	}
}
