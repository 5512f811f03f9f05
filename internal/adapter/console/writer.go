// Package console prints qualifying months.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"
)

// Writer prints one yyyy-mm-dd line per month.
// It implements pipeline.MonthSink.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) LoadMonths(_ context.Context, months []time.Time) error {
	bw := bufio.NewWriter(w.out)
	for _, m := range months {
		if _, err := fmt.Fprintln(bw, m.Format(time.DateOnly)); err != nil {
			return fmt.Errorf("write months: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write months: %w", err)
	}
	return nil
}
