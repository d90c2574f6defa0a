package stats

import (
	"fmt"
	"time"

	"github.com/2beens/daybyday/internal/gymstats/periods"
)

const (
	// NoDataLabel marks a delta whose baseline and current values are both zero.
	NoDataLabel = "no data"
	// FromZeroLabel marks growth from a zero baseline.
	FromZeroLabel = "+100%"

	MetricWorkouts = "workouts"
	MetricDuration = "duration_seconds"
	MetricVolume   = "volume_kg"
	// per category rep metrics are keyed "reps.<category key>"
	metricRepsPrefix = "reps."
)

// Delta is the change of a metric versus the prior window. Percent is nil
// when the baseline is zero.
type Delta struct {
	Percent *float64 `json:"percent"`
	Label   string   `json:"label"`
}

// PctVsPrior computes the percentage change from prior to current.
func PctVsPrior(prior, current float64) Delta {
	if prior == 0 {
		if current > 0 {
			return Delta{Label: FromZeroLabel}
		}
		return Delta{Label: NoDataLabel}
	}

	pct := (current - prior) / prior * 100
	return Delta{
		Percent: &pct,
		Label:   fmt.Sprintf("%+.0f%%", pct),
	}
}

// WindowMetrics are the metrics of one comparison window.
type WindowMetrics struct {
	Workouts        int            `json:"workouts"`
	DurationSeconds float64        `json:"duration_seconds"`
	RepsByCategory  map[string]int `json:"reps_by_category"`
	VolumeKg        float64        `json:"volume_kg"`
}

// Totals cover the whole snapshot, dated or not.
type Totals struct {
	Workouts int     `json:"workouts"`
	Reps     int     `json:"reps"`
	VolumeKg float64 `json:"volume_kg"`
}

type SummaryMetrics struct {
	Period          periods.Period     `json:"period"`
	Comparison      periods.Comparison `json:"comparison"`
	ComparisonLabel string             `json:"comparison_label"`
	WindowMetrics
	DurationDisplay string           `json:"duration_display"`
	Prior           WindowMetrics    `json:"prior"`
	Deltas          map[string]Delta `json:"deltas"`
	AllTime         Totals           `json:"all_time"`
}

// RepsMetric is the Deltas key of a category's reps.
func RepsMetric(categoryKey string) string {
	return metricRepsPrefix + categoryKey
}

// ComputeSummaryMetrics compares the current window of the period with its
// prior window over all rows (not only tracked ones). No deltas are produced
// for the All period.
func ComputeSummaryMetrics(
	rows []Row,
	categories *Categories,
	period periods.Period,
	now time.Time,
) (*SummaryMetrics, error) {
	cmp, err := periods.NewComparison(period, now)
	if err != nil {
		return nil, err
	}

	current := windowMetrics(filterRows(rows, inBounds(cmp.Current)), categories)
	prior := windowMetrics(filterRows(rows, inBounds(cmp.Prior)), categories)

	summary := &SummaryMetrics{
		Period:          period,
		Comparison:      cmp,
		ComparisonLabel: cmp.Label,
		WindowMetrics:   current,
		DurationDisplay: FormatDuration(current.DurationSeconds),
		Prior:           prior,
		Deltas:          make(map[string]Delta),
		AllTime:         allTimeTotals(rows),
	}

	if !cmp.HasDelta {
		return summary, nil
	}

	summary.Deltas[MetricWorkouts] = PctVsPrior(float64(prior.Workouts), float64(current.Workouts))
	summary.Deltas[MetricDuration] = PctVsPrior(prior.DurationSeconds, current.DurationSeconds)
	summary.Deltas[MetricVolume] = PctVsPrior(prior.VolumeKg, current.VolumeKg)
	for _, c := range categories.List() {
		summary.Deltas[RepsMetric(c.Key)] = PctVsPrior(
			float64(prior.RepsByCategory[c.Key]),
			float64(current.RepsByCategory[c.Key]),
		)
	}

	return summary, nil
}

func windowMetrics(rows []Row, categories *Categories) WindowMetrics {
	m := WindowMetrics{
		RepsByCategory: make(map[string]int),
	}
	for _, c := range categories.List() {
		m.RepsByCategory[c.Key] = 0
	}

	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.workoutKey] {
			seen[r.workoutKey] = true
			m.Workouts++
			m.DurationSeconds += r.WorkoutDuration
		}
		m.VolumeKg += r.TotalVolumeKg
		for _, key := range categories.Matches(r.ExerciseTitle) {
			m.RepsByCategory[key] += r.TotalReps
		}
	}
	return m
}

func allTimeTotals(rows []Row) Totals {
	t := Totals{}
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.workoutKey] {
			seen[r.workoutKey] = true
			t.Workouts++
		}
		t.Reps += r.TotalReps
		t.VolumeKg += r.TotalVolumeKg
	}
	return t
}
