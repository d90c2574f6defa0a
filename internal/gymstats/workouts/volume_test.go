package workouts_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/daybyday/internal/gymstats/workouts"
)

func kg(v float64) *float64 {
	return &v
}

func TestVolumeCalculator_SetVolume(t *testing.T) {
	calc := workouts.NewVolumeCalculator(70, nil)

	testCases := []struct {
		name      string
		set       workouts.Set
		addedLoad bool
		expected  float64
	}{
		{name: "weighted set", set: workouts.Set{Reps: 10, WeightKg: kg(20)}, expected: 200},
		{name: "missing weight uses bodyweight", set: workouts.Set{Reps: 5}, expected: 350},
		{name: "zero weight uses bodyweight", set: workouts.Set{Reps: 2, WeightKg: kg(0)}, expected: 140},
		{name: "negative weight uses bodyweight", set: workouts.Set{Reps: 2, WeightKg: kg(-15)}, expected: 140},
		{name: "zero reps", set: workouts.Set{Reps: 0, WeightKg: kg(100)}, expected: 0},
		{name: "added load", set: workouts.Set{Reps: 3, WeightKg: kg(10)}, addedLoad: true, expected: 240},
		{name: "added load without weight", set: workouts.Set{Reps: 3}, addedLoad: true, expected: 210},
		{name: "added load zero reps", set: workouts.Set{Reps: 0, WeightKg: kg(10)}, addedLoad: true, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, calc.SetVolume(tc.set, tc.addedLoad), 1e-9)
		})
	}
}

func TestVolumeCalculator_BodyweightScenario(t *testing.T) {
	// 8 reps, no weight, default bodyweight
	r := workouts.NewResolver(nil)
	user := r.ParseUserProfile(workouts.Record{})
	calc := workouts.NewVolumeCalculator(user.BodyweightKg, nil)

	set := r.ParseSet(workouts.Record{"reps": 8.0})
	assert.Equal(t, 496.0, calc.SetVolume(set, false))
}

func TestVolumeCalculator_IsAddedLoad(t *testing.T) {
	calc := workouts.NewVolumeCalculator(70, nil)
	assert.True(t, calc.IsAddedLoad("Tractions lestées"))
	assert.True(t, calc.IsAddedLoad("DIPS LESTÉS"))
	assert.True(t, calc.IsAddedLoad("Weighted Pull Up"))
	assert.False(t, calc.IsAddedLoad("Pull Up"))

	custom := workouts.NewVolumeCalculator(70, []string{" Belt ", ""})
	assert.True(t, custom.IsAddedLoad("dip belt"))
	assert.False(t, custom.IsAddedLoad("Tractions lestées"))
}

func TestVolumeCalculator_DefaultBodyweight(t *testing.T) {
	calc := workouts.NewVolumeCalculator(0, nil)
	assert.Equal(t, workouts.DefaultBodyweightKg, calc.BodyweightKg())
}

func TestVolumeCalculator_ExerciseTotals(t *testing.T) {
	calc := workouts.NewVolumeCalculator(70, nil)

	totals := calc.ExerciseTotals(workouts.Exercise{
		Title: "Tractions lestées",
		Sets: []workouts.Set{
			{Reps: 5, WeightKg: kg(10), Completed: true},
			{Reps: 4, Completed: true},
			{Reps: 6, WeightKg: kg(10), Completed: false},
		},
	})
	assert.Equal(t, 9, totals.Reps)
	assert.Equal(t, 2, totals.CountedSets)
	assert.InDelta(t, 80*5+70*4, totals.VolumeKg, 1e-9)
	assert.Equal(t, []string{"bw+added(70+10)", "bw+added(70+0)"}, totals.LoadNotes)

	totals = calc.ExerciseTotals(workouts.Exercise{
		Title: "Bench Press",
		Sets: []workouts.Set{
			{Reps: 10, WeightKg: kg(60), Completed: true},
			{Reps: 8, Completed: true},
		},
	})
	assert.Equal(t, 18, totals.Reps)
	assert.InDelta(t, 600+560, totals.VolumeKg, 1e-9)
	assert.Equal(t, []string{"60", "bw(70)"}, totals.LoadNotes)

	empty := calc.ExerciseTotals(workouts.Exercise{Title: "Nothing"})
	assert.Zero(t, empty.Reps)
	assert.Zero(t, empty.VolumeKg)
}

func TestVolumeCalculator_Properties(t *testing.T) {
	gofakeit.Seed(42)

	for i := 0; i < 500; i++ {
		bw := gofakeit.Float64Range(40, 120)
		calc := workouts.NewVolumeCalculator(bw, nil)
		weight := gofakeit.Float64Range(-20, 200)
		addedLoad := gofakeit.Bool()

		// non-positive reps never produce volume
		nonPositive := workouts.Set{Reps: gofakeit.IntRange(-10, 0), WeightKg: kg(weight)}
		require.Zero(t, calc.SetVolume(nonPositive, addedLoad))

		reps := gofakeit.IntRange(1, 50)

		// missing weight is bodyweight times reps
		require.InDelta(t, bw*float64(reps), calc.SetVolume(workouts.Set{Reps: reps}, false), 1e-6)

		// added load is bodyweight plus added weight, times reps
		added := gofakeit.Float64Range(0, 60)
		require.InDelta(t,
			(bw+added)*float64(reps),
			calc.SetVolume(workouts.Set{Reps: reps, WeightKg: kg(added)}, true),
			1e-6,
		)

		require.GreaterOrEqual(t, calc.SetVolume(workouts.Set{Reps: reps, WeightKg: kg(weight)}, addedLoad), 0.0)
	}
}
