package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "wg_data.csv", cfg.Input)
	assert.Equal(t, date(2013, time.December, 31), cfg.From)
	assert.Equal(t, date(2014, time.July, 1), cfg.To)
	assert.Equal(t, 9, cfg.Hours.Start())
	assert.Equal(t, 18, cfg.Hours.End())
	assert.InDelta(t, 16.0, cfg.MinWind, 1e-9)
	assert.InDelta(t, 0.2, cfg.MaxPrecip, 1e-9)
	assert.Equal(t, "\t", cfg.Delimiter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "good-wind-months", cfg.KafkaTopic)
	assert.Equal(t, 30*time.Second, cfg.KafkaRetryTimeout)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, 30*time.Second, cfg.FTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WINDFINDER_INPUT", "/data/station.tsv")
	t.Setenv("WINDFINDER_FROM", "2015-01-01")
	t.Setenv("WINDFINDER_TO", "2016-01-01")
	t.Setenv("WINDFINDER_START_HOUR", "6")
	t.Setenv("WINDFINDER_END_HOUR", "12")
	t.Setenv("WINDFINDER_MIN_WIND", "20.5")
	t.Setenv("WINDFINDER_MAX_PRECIP", "1")
	t.Setenv("WINDFINDER_DELIMITER", "comma")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-months")
	t.Setenv("KAFKA_RETRY_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FTP_TIMEOUT", "45s")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/data/station.tsv", cfg.Input)
	assert.Equal(t, date(2015, time.January, 1), cfg.From)
	assert.Equal(t, date(2016, time.January, 1), cfg.To)
	assert.Equal(t, "[06:00,12:00)", cfg.Hours.String())
	assert.InDelta(t, 20.5, cfg.MinWind, 1e-9)
	assert.InDelta(t, 1.0, cfg.MaxPrecip, 1e-9)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "custom-months", cfg.KafkaTopic)
	assert.Equal(t, 5*time.Second, cfg.KafkaRetryTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 45*time.Second, cfg.FTPTimeout)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("WINDFINDER_MIN_WIND", "30")

	cfg, err := Load([]string{"--min-wind=12", "--start-hour=0", "--end-hour=23", "other.tsv"})
	require.NoError(t, err)

	assert.Equal(t, "other.tsv", cfg.Input)
	assert.InDelta(t, 12.0, cfg.MinWind, 1e-9)
	assert.Equal(t, 23, cfg.Hours.Span())
}

func TestLoad_OpenDateBounds(t *testing.T) {
	cfg, err := Load([]string{"--from=", "--to="})
	require.NoError(t, err)

	assert.True(t, cfg.From.IsZero())
	assert.True(t, cfg.To.IsZero())
}

func TestLoad_Predicate(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	pred := cfg.Predicate()
	var wind [domain.HoursPerDay]int
	var precip [domain.HoursPerDay]float64
	assert.False(t, pred(domain.NewDailyRecord(date(2013, time.December, 31), wind, precip)))
	assert.True(t, pred(domain.NewDailyRecord(date(2014, time.January, 1), wind, precip)))
	assert.True(t, pred(domain.NewDailyRecord(date(2014, time.June, 30), wind, precip)))
	assert.False(t, pred(domain.NewDailyRecord(date(2014, time.July, 1), wind, precip)))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad from date", []string{"--from=31.12.2013"}, "invalid WINDFINDER_FROM"},
		{"bad to date", []string{"--to=tomorrow"}, "invalid WINDFINDER_TO"},
		{"inverted dates", []string{"--from=2014-07-01", "--to=2013-12-31"}, "WINDFINDER_FROM must be before WINDFINDER_TO"},
		{"inverted hours", []string{"--start-hour=18", "--end-hour=9"}, "WINDFINDER_START_HOUR"},
		{"hour out of range", []string{"--end-hour=24"}, "invalid argument"},
		{"empty delimiter", []string{"--delimiter="}, "WINDFINDER_DELIMITER is required"},
		{"brokers without topic", []string{"--kafka-brokers=b:9092", "--kafka-topic="}, "KAFKA_TOPIC is required"},
		{"zero shutdown timeout", []string{"--shutdown-timeout=0s"}, "invalid SHUTDOWN_TIMEOUT"},
		{"zero ftp timeout", []string{"--ftp-timeout=0s"}, "invalid FTP_TIMEOUT"},
		{"unknown log format", []string{"--log-format=xml"}, "log-format"},
		{"not a number", []string{"--min-wind=lots"}, "min-wind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]string{
		"tab":       "\t",
		"TAB":       "\t",
		`\t`:        "\t",
		"comma":     ",",
		"semicolon": ";",
		"|":         "|",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseDelimiter(in), in)
	}
}
