package domain

import "fmt"

// HourRange is a half-open window of hours [start, end) within one day.
// The zero value is the empty window at midnight.
type HourRange struct {
	start int
	end   int
}

// NewHourRange validates and builds a window. Both bounds must lie in 0..23
// and start must not exceed end; start == end yields an empty window.
func NewHourRange(start, end int) (HourRange, error) {
	if start < 0 || end > HoursPerDay-1 || start > end {
		return HourRange{}, fmt.Errorf("%w: hour range [%d,%d) must satisfy 0 <= start <= end <= %d",
			ErrInvalidArgument, start, end, HoursPerDay-1)
	}
	return HourRange{start: start, end: end}, nil
}

func (r HourRange) Start() int { return r.start }
func (r HourRange) End() int   { return r.end }

// Span is the number of hours covered by the window.
func (r HourRange) Span() int { return r.end - r.start }

func (r HourRange) String() string {
	return fmt.Sprintf("[%02d:00,%02d:00)", r.start, r.end)
}
