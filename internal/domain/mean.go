package domain

import "fmt"

// Reading is the set of hourly value types that can be averaged.
type Reading interface {
	~int | ~float64
}

// MeanOver returns the arithmetic mean of values over the hours selected by r.
// Values are summed left to right in float64 and divided once, so repeated calls
// give bit-identical results.
func MeanOver[T Reading](values []T, r HourRange) (float64, error) {
	span := r.Span()
	if span == 0 {
		return 0, fmt.Errorf("mean over %s: %w", r, ErrEmptyRange)
	}
	if r.Start()+span > len(values) {
		return 0, fmt.Errorf("%w: %s exceeds %d readings", ErrInvalidArgument, r, len(values))
	}

	var sum float64
	for _, v := range values[r.Start() : r.Start()+span] {
		sum += float64(v)
	}
	return sum / float64(span), nil
}
