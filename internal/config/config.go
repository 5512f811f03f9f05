package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/couchcryptid/wind-window-finder/internal/domain"
)

// Config holds all run settings, populated from flags or environment variables.
type Config struct {
	Input      string // local path or ftp:// URL
	From       time.Time
	To         time.Time
	Hours      domain.HourRange
	MinWind    float64
	MaxPrecip  float64
	Delimiter  string
	FTPTimeout time.Duration

	LogLevel  string
	LogFormat string

	KafkaBrokers      []string
	KafkaTopic        string
	KafkaRetryTimeout time.Duration

	HTTPAddr        string
	PushgatewayURL  string
	ShutdownTimeout time.Duration
}

// flags is the command line surface. Every flag falls back to an environment
// variable and then to a default that reproduces the classic analysis run.
type flags struct {
	Input     string  `arg:"" optional:"" default:"wg_data.csv" env:"WINDFINDER_INPUT" help:"Weather log path or ftp:// URL."`
	From      string  `default:"2013-12-31" env:"WINDFINDER_FROM" help:"Keep days strictly after this date (yyyy-mm-dd). Empty leaves it open."`
	To        string  `default:"2014-07-01" env:"WINDFINDER_TO" help:"Keep days strictly before this date (yyyy-mm-dd). Empty leaves it open."`
	StartHour int     `default:"9" env:"WINDFINDER_START_HOUR" help:"First hour of the window (inclusive)."`
	EndHour   int     `default:"18" env:"WINDFINDER_END_HOUR" help:"Last hour of the window (exclusive)."`
	MinWind   float64 `default:"16" env:"WINDFINDER_MIN_WIND" help:"Mean wind must exceed this."`
	MaxPrecip float64 `default:"0.2" env:"WINDFINDER_MAX_PRECIP" help:"Mean precipitation must stay below this."`
	Delimiter string  `default:"tab" env:"WINDFINDER_DELIMITER" help:"Field delimiter: tab, comma, semicolon or a literal string."`

	FTPTimeout time.Duration `default:"30s" env:"FTP_TIMEOUT" help:"Dial timeout for ftp:// inputs."`

	LogLevel  string `default:"info" env:"LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level."`
	LogFormat string `default:"text" env:"LOG_FORMAT" enum:"text,json" help:"Log format."`

	KafkaBrokers      []string      `env:"KAFKA_BROKERS" sep:"," help:"Publish months to these brokers. Empty disables the Kafka sink."`
	KafkaTopic        string        `default:"good-wind-months" env:"KAFKA_TOPIC" help:"Topic for published months."`
	KafkaRetryTimeout time.Duration `default:"30s" env:"KAFKA_RETRY_TIMEOUT" help:"How long to keep retrying a failed publish."`

	HTTPAddr        string        `env:"HTTP_ADDR" help:"Serve /healthz, /readyz and /metrics here during the run. Empty disables the server."`
	PushgatewayURL  string        `env:"PUSHGATEWAY_URL" help:"Push run metrics to this Pushgateway. Empty disables pushing."`
	ShutdownTimeout time.Duration `default:"10s" env:"SHUTDOWN_TIMEOUT" help:"Budget for flushing sinks and metrics after a signal."`
}

// Load parses args (without the program name) and the environment, applying
// defaults where unset.
func Load(args []string) (*Config, error) {
	var f flags
	parser, err := kong.New(&f,
		kong.Name("windfinder"),
		kong.Description("Find the months that had at least one good wind window."),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return f.config()
}

func (f *flags) config() (*Config, error) {
	from, err := parseDate("WINDFINDER_FROM", f.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("WINDFINDER_TO", f.To)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, errors.New("WINDFINDER_FROM must be before WINDFINDER_TO")
	}

	hours, err := domain.NewHourRange(f.StartHour, f.EndHour)
	if err != nil {
		return nil, fmt.Errorf("invalid WINDFINDER_START_HOUR/WINDFINDER_END_HOUR: %w", err)
	}

	if f.Input == "" {
		return nil, errors.New("WINDFINDER_INPUT is required")
	}
	delimiter := ParseDelimiter(f.Delimiter)
	if delimiter == "" {
		return nil, errors.New("WINDFINDER_DELIMITER is required")
	}

	brokers := make([]string, 0, len(f.KafkaBrokers))
	for _, b := range f.KafkaBrokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) > 0 && f.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if f.FTPTimeout <= 0 {
		return nil, errors.New("invalid FTP_TIMEOUT")
	}
	if f.KafkaRetryTimeout <= 0 {
		return nil, errors.New("invalid KAFKA_RETRY_TIMEOUT")
	}
	if f.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	return &Config{
		Input:             f.Input,
		From:              from,
		To:                to,
		Hours:             hours,
		MinWind:           f.MinWind,
		MaxPrecip:         f.MaxPrecip,
		Delimiter:         delimiter,
		FTPTimeout:        f.FTPTimeout,
		LogLevel:          f.LogLevel,
		LogFormat:         f.LogFormat,
		KafkaBrokers:      brokers,
		KafkaTopic:        f.KafkaTopic,
		KafkaRetryTimeout: f.KafkaRetryTimeout,
		HTTPAddr:          f.HTTPAddr,
		PushgatewayURL:    f.PushgatewayURL,
		ShutdownTimeout:   f.ShutdownTimeout,
	}, nil
}

// Predicate keeps days strictly between From and To. A zero bound is open.
func (c *Config) Predicate() domain.Predicate {
	return domain.Between(c.From, c.To)
}

// KafkaEnabled reports whether months should also be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDate(name, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return t, nil
}

// ParseDelimiter maps the names tab, comma and semicolon (and a literal \t)
// to their characters. Anything else is used as given.
func ParseDelimiter(s string) string {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return "\t"
	case "comma":
		return ","
	case "semicolon":
		return ";"
	default:
		return s
	}
}
