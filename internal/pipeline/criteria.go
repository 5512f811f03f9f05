package pipeline

import (
	"fmt"

	"github.com/couchcryptid/wind-window-finder/internal/domain"
)

// Stage names the filter step that dropped a record.
type Stage string

const (
	StageQualified Stage = ""
	StagePredicate Stage = "predicate"
	StagePrecip    Stage = "precip"
	StageWind      Stage = "wind"
)

// Criteria describes a good wind window: the caller's predicate, the hours of
// the day to average over, and the thresholds the averages must clear.
type Criteria struct {
	Predicate domain.Predicate // nil keeps every record
	Hours     domain.HourRange
	MinWind   float64 // mean wind must be strictly greater
	MaxPrecip float64 // mean precipitation must be strictly less
}

// Evaluate runs rec through the filter chain and returns the stage that
// rejected it, or StageQualified. The predicate runs first, then the
// precipitation mean, then the wind mean; a record rejected at one stage is
// never aggregated by a later one.
func (c Criteria) Evaluate(rec domain.DailyRecord) (Stage, error) {
	if c.Predicate != nil && !c.Predicate(rec) {
		return StagePredicate, nil
	}

	precip, err := domain.MeanOver(rec.Precip[:], c.Hours)
	if err != nil {
		return "", fmt.Errorf("precip mean for %s: %w", rec.Date.Format("2006-01-02"), err)
	}
	if !(precip < c.MaxPrecip) {
		return StagePrecip, nil
	}

	wind, err := domain.MeanOver(rec.Wind[:], c.Hours)
	if err != nil {
		return "", fmt.Errorf("wind mean for %s: %w", rec.Date.Format("2006-01-02"), err)
	}
	if !(wind > c.MinWind) {
		return StageWind, nil
	}
	return StageQualified, nil
}
