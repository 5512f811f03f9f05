package pipeline

import (
	"context"
	"fmt"
	"time"
)

// MultiSink hands the same months to every sink in order, stopping at the
// first failure.
type MultiSink []MonthSink

func (m MultiSink) LoadMonths(ctx context.Context, months []time.Time) error {
	for i, s := range m {
		if err := s.LoadMonths(ctx, months); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}
