package kafka

import "github.com/jonboulle/clockwork"

// clock stamps generated_at on published batches.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for generated_at. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
