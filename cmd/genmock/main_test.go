package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/adapter/file"
	"github.com/couchcryptid/wind-window-finder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	start := time.Date(2013, time.October, 1, 0, 0, 0, 0, time.UTC)

	a := generate(start, 60, 7)
	b := generate(start, 60, 7)
	c := generate(start, 60, 8)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, start.AddDate(0, 0, 59), a[59].Date)
}

func TestWriteLog_RoundTrip(t *testing.T) {
	records := generate(time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC), 40, 1)
	path := filepath.Join(t.TempDir(), "mock", "wg_data.csv")
	require.NoError(t, writeLog(path, "\t", records))

	var got []domain.DailyRecord
	for rec, err := range file.NewReader(path, "\t").Records(context.Background()) {
		require.NoError(t, err)
		got = append(got, rec)
	}
	assert.Equal(t, records, got)
}

func TestRun_NamedDelimiter(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"tab", "\t"},
		{"semicolon", ";"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "wg_data.csv")
			require.NoError(t, run([]string{"-out", path, "-days", "10", "-delimiter", tt.flag}))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotContains(t, string(raw), tt.flag)

			var n int
			for _, err := range file.NewReader(path, tt.want).Records(context.Background()) {
				require.NoError(t, err)
				n++
			}
			assert.Equal(t, 10, n)
		})
	}
}

func TestRun_RequiresOut(t *testing.T) {
	require.ErrorContains(t, run([]string{"-days", "3"}), "missing required flag: -out")
}
