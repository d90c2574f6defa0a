package stats_test

import (
	"time"

	"github.com/2beens/daybyday/internal/gymstats/stats"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func setsOf(reps ...int) []any {
	sets := make([]any, 0, len(reps))
	for _, r := range reps {
		sets = append(sets, map[string]any{"reps": float64(r)})
	}
	return sets
}

func workoutRecord(id, start string, durationSecs float64, exercises map[string][]any) workouts.Record {
	var exs []any
	for title, sets := range exercises {
		exs = append(exs, map[string]any{"title": title, "sets": sets})
	}
	rec := workouts.Record{
		"id":        id,
		"title":     "Workout " + id,
		"exercises": exs,
		"duration":  durationSecs,
	}
	if start != "" {
		rec["start_time"] = start
	}
	return rec
}

func snapshotOf(bodyweight float64, recs ...workouts.Record) *workouts.Snapshot {
	return workouts.NewSnapshot(workouts.RawSnapshot{
		User:     workouts.Record{"weight": bodyweight},
		Workouts: recs,
	}, nil)
}

func rowsOf(s *workouts.Snapshot) []stats.Row {
	return stats.Flatten(s, workouts.NewVolumeCalculator(s.User.BodyweightKg, nil))
}
