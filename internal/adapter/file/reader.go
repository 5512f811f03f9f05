// Package file reads weather logs from local files or any io.Reader.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/couchcryptid/wind-window-finder/internal/domain"
)

// maxLineBytes bounds a single row. Well-formed rows are a few hundred bytes.
const maxLineBytes = 1 << 20

// Reader yields the daily records of a weather log on disk.
// It implements pipeline.RecordSource.
type Reader struct {
	path      string
	delimiter string
}

// NewReader creates a Reader for the file at path.
func NewReader(path, delimiter string) *Reader {
	return &Reader{path: path, delimiter: delimiter}
}

// Records opens the file lazily, on the first pull, and closes it when
// iteration ends.
func (r *Reader) Records(ctx context.Context) iter.Seq2[domain.DailyRecord, error] {
	return func(yield func(domain.DailyRecord, error) bool) {
		f, err := os.Open(r.path)
		if err != nil {
			yield(domain.DailyRecord{}, fmt.Errorf("open data file: %w", err))
			return
		}
		defer f.Close()

		for rec, err := range Scan(ctx, f, r.delimiter) {
			if !yield(rec, err) {
				return
			}
		}
	}
}

// Scan parses rows from rd. The first line is a header and is skipped, as are
// blank lines. Parse errors carry the 1-based line number and end the sequence.
func Scan(ctx context.Context, rd io.Reader, delimiter string) iter.Seq2[domain.DailyRecord, error] {
	return func(yield func(domain.DailyRecord, error) bool) {
		sc := bufio.NewScanner(rd)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		line := 0
		for sc.Scan() {
			line++
			if line == 1 {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(domain.DailyRecord{}, err)
				return
			}
			text := sc.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}

			rec, err := domain.ParseLine(text, delimiter)
			if err != nil {
				yield(domain.DailyRecord{}, fmt.Errorf("line %d: %w", line, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(domain.DailyRecord{}, fmt.Errorf("read data file after line %d: %w", line, err))
		}
	}
}
