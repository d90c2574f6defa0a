package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/daybyday/internal/gymstats/periods"
	"github.com/2beens/daybyday/internal/gymstats/stats"
)

func TestPctVsPrior(t *testing.T) {
	d := stats.PctVsPrior(0, 0)
	assert.Nil(t, d.Percent)
	assert.Equal(t, stats.NoDataLabel, d.Label)

	d = stats.PctVsPrior(0, 5)
	assert.Nil(t, d.Percent)
	assert.Equal(t, "+100%", d.Label)

	d = stats.PctVsPrior(10, 15)
	require.NotNil(t, d.Percent)
	assert.InDelta(t, 50.0, *d.Percent, 1e-9)
	assert.Equal(t, "+50%", d.Label)

	d = stats.PctVsPrior(4, 1)
	require.NotNil(t, d.Percent)
	assert.InDelta(t, -75.0, *d.Percent, 1e-9)
	assert.Equal(t, "-75%", d.Label)

	d = stats.PctVsPrior(3, 3)
	assert.Equal(t, "+0%", d.Label)
}

func TestComputeSummaryMetrics_ThisWeek(t *testing.T) {
	// now is Wednesday 2024-01-17; this week starts Monday the 15th
	now := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)
	snapshot := snapshotOf(70,
		workoutRecord("w1", "2024-01-15T08:00:00Z", 3600, map[string][]any{
			"Pull Up":     setsOf(10),
			"Bench Press": setsOf(5),
		}),
		workoutRecord("w2", "2024-01-16T08:00:00Z", 1800, map[string][]any{"Dips": setsOf(12)}),
		// last week
		workoutRecord("w3", "2024-01-10T08:00:00Z", 3600, map[string][]any{"Pull Up": setsOf(5)}),
		// undated
		workoutRecord("w4", "", 600, map[string][]any{"Pull Up": setsOf(7)}),
	)

	summary, err := stats.ComputeSummaryMetrics(rowsOf(snapshot), stats.MustDefaultCategories(), periods.ThisWeek, now)
	require.NoError(t, err)

	assert.Equal(t, "vs last week", summary.ComparisonLabel)
	assert.Equal(t, 2, summary.Workouts)
	assert.Equal(t, 5400.0, summary.DurationSeconds)
	assert.Equal(t, "1 Hour 30 min", summary.DurationDisplay)
	assert.Equal(t, 10, summary.RepsByCategory["pullups"])
	assert.Equal(t, 12, summary.RepsByCategory["dips"])
	assert.Equal(t, 0, summary.RepsByCategory["curls"])
	// untracked exercises still count toward volume
	assert.InDelta(t, (10+5+12)*70.0, summary.VolumeKg, 1e-9)

	assert.Equal(t, 1, summary.Prior.Workouts)
	assert.Equal(t, 5, summary.Prior.RepsByCategory["pullups"])

	assert.Equal(t, "+100%", summary.Deltas[stats.MetricWorkouts].Label)
	assert.Equal(t, "+50%", summary.Deltas[stats.MetricDuration].Label)
	assert.Equal(t, "+100%", summary.Deltas[stats.RepsMetric("pullups")].Label)
	assert.Equal(t, "+100%", summary.Deltas[stats.RepsMetric("dips")].Label)
	assert.Equal(t, stats.NoDataLabel, summary.Deltas[stats.RepsMetric("curls")].Label)

	assert.Equal(t, 4, summary.AllTime.Workouts)
	assert.Equal(t, 10+5+12+5+7, summary.AllTime.Reps)
}

func TestComputeSummaryMetrics_LastWeekWithoutWorkouts(t *testing.T) {
	now := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)
	snapshot := snapshotOf(70,
		workoutRecord("w1", "2024-01-16T08:00:00Z", 3600, map[string][]any{"Pull Up": setsOf(10)}),
	)

	summary, err := stats.ComputeSummaryMetrics(rowsOf(snapshot), stats.MustDefaultCategories(), periods.LastWeek, now)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Workouts)
	assert.Equal(t, 0.0, summary.VolumeKg)
	assert.Equal(t, "0 min", summary.DurationDisplay)
	assert.Equal(t, "vs prev. week", summary.ComparisonLabel)
	for metric, d := range summary.Deltas {
		assert.Equal(t, stats.NoDataLabel, d.Label, metric)
		assert.Nil(t, d.Percent, metric)
	}
	assert.Len(t, summary.Deltas, 3+4)
}

func TestComputeSummaryMetrics_AllHasNoDeltas(t *testing.T) {
	now := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)
	snapshot := snapshotOf(70,
		workoutRecord("w1", "2024-01-16T08:00:00Z", 3600, map[string][]any{"Pull Up": setsOf(10)}),
		workoutRecord("w2", "2022-01-16T08:00:00Z", 3600, map[string][]any{"Pull Up": setsOf(10)}),
	)

	summary, err := stats.ComputeSummaryMetrics(rowsOf(snapshot), stats.MustDefaultCategories(), periods.All, now)
	require.NoError(t, err)

	assert.False(t, summary.Comparison.HasDelta)
	assert.Equal(t, "vs prev. 365d", summary.ComparisonLabel)
	assert.Empty(t, summary.Deltas)
	// the trailing 365 days only hold w1
	assert.Equal(t, 1, summary.Workouts)
	assert.Equal(t, 2, summary.AllTime.Workouts)
}

func TestComputeSummaryMetrics_WorkoutsWithoutID(t *testing.T) {
	now := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)
	snapshot := snapshotOf(70,
		workoutRecord("", "2024-01-15T08:00:00Z", 600, map[string][]any{"Pull Up": setsOf(1), "Dips": setsOf(1)}),
		workoutRecord("", "2024-01-16T08:00:00Z", 600, map[string][]any{"Pull Up": setsOf(1)}),
	)

	summary, err := stats.ComputeSummaryMetrics(rowsOf(snapshot), stats.MustDefaultCategories(), periods.ThisWeek, now)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Workouts)
	assert.Equal(t, 1200.0, summary.DurationSeconds)
}
