package workouts

import (
	"time"
)

// DefaultBodyweightKg is used when the user profile carries no usable bodyweight.
const DefaultBodyweightKg = 62.0

type Set struct {
	Reps      int      `json:"reps"`
	WeightKg  *float64 `json:"weight_kg,omitempty"`
	Completed bool     `json:"completed"`
}

type Exercise struct {
	Title string `json:"title"`
	Sets  []Set  `json:"sets"`
	// Raw holds every exercise-level field as received, for the debug views.
	Raw Record `json:"-"`
}

type Workout struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationSeconds float64    `json:"duration_seconds"`
	Exercises       []Exercise `json:"exercises"`
}

type UserProfile struct {
	BodyweightKg float64 `json:"bodyweight_kg"`
}

// ParseSet reads one set. Missing or unparsable reps become 0 and negative
// reps are clamped to 0. Sets without a completion flag count as completed.
func (r *Resolver) ParseSet(rec Record) Set {
	reps, _ := r.Int(rec, FieldSetReps)
	if reps < 0 {
		reps = 0
	}

	s := Set{
		Reps:      reps,
		Completed: true,
	}
	if w, ok := r.Float(rec, FieldSetWeight); ok {
		s.WeightKg = &w
	}
	if completed, ok := r.Bool(rec, FieldSetCompleted); ok {
		s.Completed = completed
	}
	return s
}

func (r *Resolver) ParseExercise(rec Record) Exercise {
	ex := Exercise{
		Title: r.ExerciseName(rec),
		Raw:   rec,
	}
	for _, setRec := range r.Objects(rec, FieldExerciseSets) {
		ex.Sets = append(ex.Sets, r.ParseSet(setRec))
	}
	return ex
}

func (r *Resolver) ParseWorkout(rec Record) Workout {
	w := Workout{}
	w.ID, _ = r.String(rec, FieldWorkoutID)
	w.Title, _ = r.String(rec, FieldWorkoutTitle)
	if start, ok := r.Time(rec, FieldWorkoutStart); ok {
		w.StartTime = &start
	}
	w.DurationSeconds = r.WorkoutDuration(rec)
	for _, exRec := range r.Objects(rec, FieldWorkoutExercises) {
		w.Exercises = append(w.Exercises, r.ParseExercise(exRec))
	}
	return w
}

// WorkoutDuration prefers an explicit duration in seconds and otherwise uses
// end minus start. Never negative.
func (r *Resolver) WorkoutDuration(rec Record) float64 {
	if d, ok := r.Float(rec, FieldWorkoutDuration); ok {
		return max(0, d)
	}

	start, okStart := r.Time(rec, FieldWorkoutStart)
	end, okEnd := r.Time(rec, FieldWorkoutEnd)
	if !okStart || !okEnd {
		return 0
	}
	return max(0, end.Sub(start).Seconds())
}

// ParseUserProfile resolves the bodyweight from the top-level user fields,
// then from the nested profile object, then DefaultBodyweightKg.
func (r *Resolver) ParseUserProfile(rec Record) UserProfile {
	if bw, ok := r.Float(rec, FieldUserBodyweight); ok && bw > 0 {
		return UserProfile{BodyweightKg: bw}
	}
	if profile, ok := r.Object(rec, FieldUserProfile); ok {
		if bw, ok := r.Float(profile, FieldProfileWeight); ok && bw > 0 {
			return UserProfile{BodyweightKg: bw}
		}
	}
	return UserProfile{BodyweightKg: DefaultBodyweightKg}
}

// HasSetData reports whether any set of the workout carries reps or weight.
// List responses sometimes omit them, in which case the workout is refetched.
func (r *Resolver) HasSetData(rec Record) bool {
	for _, ex := range r.Objects(rec, FieldWorkoutExercises) {
		for _, s := range r.Objects(ex, FieldExerciseSets) {
			if _, ok := r.Lookup(s, FieldSetReps); ok {
				return true
			}
			if _, ok := r.Lookup(s, FieldSetWeight); ok {
				return true
			}
		}
	}
	return false
}
