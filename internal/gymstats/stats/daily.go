package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/2beens/daybyday/internal/gymstats/periods"
)

const (
	// TotalKey holds the all-exercises sum in the series maps.
	TotalKey = "total"
	// TrendWindowDays is the width of the trailing mean.
	TrendWindowDays = 7

	dateLayout = "2006-01-02"
)

// DailyAggregates are the per-day series for the chart. Every slice is
// aligned with Dates, which covers the whole period including rest days.
type DailyAggregates struct {
	Period   periods.Period `json:"period"`
	Exercise string         `json:"exercise,omitempty"`
	Dates    []string       `json:"dates"`
	Labels   []string       `json:"labels"`
	// Series holds reps per exercise title, plus TotalKey.
	Series map[string][]float64 `json:"series"`
	// Volume holds volume in kg per exercise title, plus TotalKey.
	Volume      map[string][]float64 `json:"volume"`
	Trend       []float64            `json:"trend"`
	VolumeTrend []float64            `json:"volume_trend"`
}

// Exercises lists the series keys other than TotalKey.
func (d *DailyAggregates) Exercises() []string {
	var names []string
	for name := range d.Series {
		if name != TotalKey {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ComputeDailyAggregates keeps the tracked rows inside the period (and of the
// selected exercise, when not empty) and sums their reps and volume per day.
// For the All period the day range spans the first to the last dated row.
func ComputeDailyAggregates(
	rows []Row,
	categories *Categories,
	period periods.Period,
	exercise string,
	now time.Time,
) (*DailyAggregates, error) {
	bounds, err := periods.Resolve(period, now)
	if err != nil {
		return nil, err
	}

	selected := filterRows(rows, tracked(categories))
	selected = filterRows(selected, inBounds(bounds))
	if exercise != "" {
		selected = filterRows(selected, exerciseTitled(exercise))
	}

	var days []time.Time
	if bounds.Unbounded {
		days = observedDays(selected)
	} else {
		days = bounds.Days()
	}

	agg := &DailyAggregates{
		Period:   period,
		Exercise: exercise,
		Dates:    make([]string, 0, len(days)),
		Labels:   make([]string, 0, len(days)),
		Series:   make(map[string][]float64),
		Volume:   make(map[string][]float64),
	}
	for _, d := range days {
		agg.Dates = append(agg.Dates, d.Format(dateLayout))
		agg.Labels = append(agg.Labels, DateLabel(d))
	}

	repsByExercise := make(map[string]map[string]float64)
	volumeByExercise := make(map[string]map[string]float64)
	for _, r := range selected {
		day := r.WorkoutStart.UTC().Format(dateLayout)
		if repsByExercise[r.ExerciseTitle] == nil {
			repsByExercise[r.ExerciseTitle] = make(map[string]float64)
			volumeByExercise[r.ExerciseTitle] = make(map[string]float64)
		}
		repsByExercise[r.ExerciseTitle][day] += float64(r.TotalReps)
		volumeByExercise[r.ExerciseTitle][day] += r.TotalVolumeKg
	}

	totalReps := make([]float64, len(agg.Dates))
	totalVolume := make([]float64, len(agg.Dates))
	for title, byDay := range repsByExercise {
		reps := Reindex(byDay, agg.Dates)
		volume := Reindex(volumeByExercise[title], agg.Dates)
		agg.Series[title] = reps
		agg.Volume[title] = volume
		for i := range agg.Dates {
			totalReps[i] += reps[i]
			totalVolume[i] += volume[i]
		}
	}
	agg.Series[TotalKey] = totalReps
	agg.Volume[TotalKey] = totalVolume
	agg.Trend = RollingMean(totalReps, TrendWindowDays)
	agg.VolumeTrend = RollingMean(totalVolume, TrendWindowDays)

	return agg, nil
}

func observedDays(rows []Row) []time.Time {
	var first, last time.Time
	for i, r := range rows {
		t := *r.WorkoutStart
		if i == 0 || t.Before(first) {
			first = t
		}
		if i == 0 || t.After(last) {
			last = t
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return periods.DayRange(first, last)
}

// Reindex aligns sparse per-date values onto dates, filling absent dates
// with zero. Values for dates outside the list are dropped.
func Reindex(values map[string]float64, dates []string) []float64 {
	out := make([]float64, len(dates))
	for i, d := range dates {
		out[i] = values[d]
	}
	return out
}

// RollingMean is a trailing mean over window values. Leading positions use
// however many values are available, so there is no warm-up gap.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		from := max(0, i-window+1)
		sum := 0.0
		for _, v := range values[from : i+1] {
			sum += v
		}
		out[i] = sum / float64(i+1-from)
	}
	return out
}

// DateLabel formats a date the short way, e.g. "8 Feb 26".
func DateLabel(t time.Time) string {
	return t.Format("2 Jan 06")
}

// FormatDuration renders seconds as "45 min" or "1 Hour 5 min".
func FormatDuration(seconds float64) string {
	total := int(max(0, seconds) + 0.5)
	minutes := total / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours, mins := minutes/60, minutes%60
	unit := "Hours"
	if hours == 1 {
		unit = "Hour"
	}
	return fmt.Sprintf("%d %s %d min", hours, unit, mins)
}
