package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/2beens/daybyday/internal/gymstats/periods"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
)

// Row is one exercise of one workout with its derived totals.
type Row struct {
	WorkoutID       string          `json:"workout_id"`
	WorkoutTitle    string          `json:"workout_title"`
	WorkoutStart    *time.Time      `json:"workout_start,omitempty"`
	WorkoutDuration float64         `json:"workout_duration_seconds"`
	ExerciseTitle   string          `json:"exercise_title"`
	TotalReps       int             `json:"total_reps"`
	TotalVolumeKg   float64         `json:"total_volume_kg"`
	LoadNotes       []string        `json:"load_notes,omitempty"`
	Raw             workouts.Record `json:"raw,omitempty"`

	// workoutKey identifies the workout even when it has no id
	workoutKey string
}

// Flatten turns a snapshot into rows, one per exercise.
func Flatten(s *workouts.Snapshot, calc *workouts.VolumeCalculator) []Row {
	if s == nil {
		return nil
	}

	var rows []Row
	for i, w := range s.Workouts {
		key := w.ID
		if key == "" {
			key = "#" + strconv.Itoa(i)
		}
		for _, ex := range w.Exercises {
			totals := calc.ExerciseTotals(ex)
			rows = append(rows, Row{
				WorkoutID:       w.ID,
				WorkoutTitle:    w.Title,
				WorkoutStart:    w.StartTime,
				WorkoutDuration: w.DurationSeconds,
				ExerciseTitle:   ex.Title,
				TotalReps:       totals.Reps,
				TotalVolumeKg:   totals.VolumeKg,
				LoadNotes:       totals.LoadNotes,
				Raw:             ex.Raw,
				workoutKey:      key,
			})
		}
	}
	return rows
}

func filterRows(rows []Row, keep func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// inBounds keeps dated rows within b. Undated rows never belong to a window.
func inBounds(b periods.Bounds) func(Row) bool {
	return func(r Row) bool {
		return r.WorkoutStart != nil && b.Contains(*r.WorkoutStart)
	}
}

func tracked(c *Categories) func(Row) bool {
	return func(r Row) bool {
		return c.Tracked(r.ExerciseTitle)
	}
}

func exerciseTitled(title string) func(Row) bool {
	return func(r Row) bool {
		return r.ExerciseTitle == title
	}
}

// exerciseTitles lists the distinct exercise titles, sorted.
func exerciseTitles(rows []Row) []string {
	seen := make(map[string]bool)
	var titles []string
	for _, r := range rows {
		if !seen[r.ExerciseTitle] {
			seen[r.ExerciseTitle] = true
			titles = append(titles, r.ExerciseTitle)
		}
	}
	sort.Strings(titles)
	return titles
}
