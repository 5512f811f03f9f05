package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Pusher sends a finished run's metrics to a Prometheus Pushgateway. A batch
// job exits before any scraper could reach it, so metrics are pushed instead.
type Pusher struct {
	pusher     *push.Pusher
	maxElapsed time.Duration
}

// NewPusher creates a Pusher for the gateway at url, grouping under job.
func NewPusher(url, job string, g prometheus.Gatherer, maxElapsed time.Duration) *Pusher {
	return &Pusher{
		pusher:     push.New(url, job).Gatherer(g),
		maxElapsed: maxElapsed,
	}
}

// Push replaces the job's metric group on the gateway, retrying with
// exponential backoff until maxElapsed has passed or ctx is done.
func (p *Pusher) Push(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = p.maxElapsed

	operation := func() error {
		return p.pusher.PushContext(ctx)
	}
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
