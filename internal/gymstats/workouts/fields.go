package workouts

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const UnknownExercise = "Unknown exercise"

// Record is a single loosely-typed object as decoded from the upstream JSON.
type Record map[string]any

// Field is a logical field name, resolved to physical keys through FieldAliases.
type Field string

const (
	FieldWorkoutID        Field = "workout.id"
	FieldWorkoutTitle     Field = "workout.title"
	FieldWorkoutStart     Field = "workout.start"
	FieldWorkoutEnd       Field = "workout.end"
	FieldWorkoutDuration  Field = "workout.duration"
	FieldWorkoutExercises Field = "workout.exercises"
	FieldExerciseTemplate Field = "exercise.template"
	FieldExerciseTitle    Field = "exercise.title"
	FieldExerciseName     Field = "exercise.name"
	FieldExerciseSets     Field = "exercise.sets"
	FieldSetReps          Field = "set.reps"
	FieldSetWeight        Field = "set.weight"
	FieldSetCompleted     Field = "set.completed"
	FieldUserBodyweight   Field = "user.bodyweight"
	FieldUserProfile      Field = "user.profile"
	FieldProfileWeight    Field = "profile.bodyweight"
	FieldPageItems        Field = "page.items"
	FieldPageCount        Field = "page.count"
)

// FieldAliases maps a logical field to its physical keys, most authoritative first.
type FieldAliases map[Field][]string

// DefaultFieldAliases covers the schema variants seen across the list and
// single-workout endpoints (camelCase vs snake_case, nested profile objects).
func DefaultFieldAliases() FieldAliases {
	return FieldAliases{
		FieldWorkoutID:    {"id", "workout_id", "workoutId"},
		FieldWorkoutTitle: {"title", "name"},
		FieldWorkoutStart: {
			"startTime", "startedAt", "createdAt", "date",
			"start_time", "started_at", "created_at", "end_time",
		},
		FieldWorkoutEnd:       {"end_time", "endTime", "endedAt", "completedAt"},
		FieldWorkoutDuration:  {"duration", "duration_seconds", "length"},
		FieldWorkoutExercises: {"exercises"},
		FieldExerciseTemplate: {"exerciseTemplate", "template", "exercise"},
		FieldExerciseTitle:    {"title"},
		FieldExerciseName:     {"name"},
		FieldExerciseSets:     {"sets"},
		FieldSetReps:          {"reps", "repCount"},
		FieldSetWeight:        {"weight_kg", "weightKg", "weight", "load"},
		FieldSetCompleted:     {"completed", "isCompleted", "done"},
		FieldUserBodyweight:   {"weight", "body_weight", "bodyWeight", "bodyweight", "weight_kg", "mass"},
		FieldUserProfile:      {"profile"},
		FieldProfileWeight:    {"weight", "body_weight", "bodyWeight", "weight_kg"},
		FieldPageItems:        {"workouts", "items", "data", "results"},
		FieldPageCount:        {"page_count", "pageCount"},
	}
}

// Resolver reads logical fields out of records. It never fails: absent or
// malformed values resolve to the zero value and found=false.
type Resolver struct {
	aliases FieldAliases
}

// NewResolver builds a resolver over the default alias table; entries in
// overrides replace the defaults for their field.
func NewResolver(overrides FieldAliases) *Resolver {
	aliases := DefaultFieldAliases()
	for f, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		aliases[f] = append([]string(nil), keys...)
	}
	return &Resolver{aliases: aliases}
}

func (r *Resolver) Keys(f Field) []string {
	return r.aliases[f]
}

// Lookup returns the first present non-nil value among the field's keys.
func (r *Resolver) Lookup(rec Record, f Field) (any, bool) {
	if rec == nil {
		return nil, false
	}
	for _, k := range r.aliases[f] {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r *Resolver) String(rec Record, f Field) (string, bool) {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return "", false
	}
	return asString(v)
}

func (r *Resolver) Int(rec Record, f Field) (int, bool) {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return 0, false
	}
	return asInt(v)
}

func (r *Resolver) Float(rec Record, f Field) (float64, bool) {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func (r *Resolver) Bool(rec Record, f Field) (bool, bool) {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return false, false
	}
	return asBool(v)
}

// Time resolves a timestamp, always returned in UTC. Values without zone
// information are taken to be UTC already.
func (r *Resolver) Time(rec Record, f Field) (time.Time, bool) {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return time.Time{}, false
	}
	return asTime(v)
}

// Object resolves a nested object field.
func (r *Resolver) Object(rec Record, f Field) (Record, bool) {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return nil, false
	}
	return asRecord(v)
}

// Objects resolves a list field, keeping only the object elements.
func (r *Resolver) Objects(rec Record, f Field) []Record {
	v, ok := r.Lookup(rec, f)
	if !ok {
		return nil
	}
	return asRecords(v)
}

// ExerciseName picks a display name for an exercise: a nested template name,
// then the title, then the name, then any string field whose key mentions
// "name". Falls back to UnknownExercise.
func (r *Resolver) ExerciseName(ex Record) string {
	for _, k := range r.aliases[FieldExerciseTemplate] {
		tmpl, ok := asRecord(ex[k])
		if !ok {
			continue
		}
		if name := trimmedString(tmpl["name"]); name != "" {
			return name
		}
	}

	for _, f := range []Field{FieldExerciseTitle, FieldExerciseName} {
		for _, k := range r.aliases[f] {
			if name := trimmedString(ex[k]); name != "" {
				return name
			}
		}
	}

	keys := make([]string, 0, len(ex))
	for k := range ex {
		if strings.Contains(strings.ToLower(k), "name") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if name := trimmedString(ex[k]); name != "" {
			return name
		}
	}

	return UnknownExercise
}

// Items extracts the workout list from a page payload: either a bare list or
// an envelope object holding the list under one of the known keys.
func (r *Resolver) Items(payload any) []Record {
	if list, ok := payload.([]any); ok {
		return asRecords(list)
	}
	rec, ok := asRecord(payload)
	if !ok {
		return nil
	}
	for _, k := range r.aliases[FieldPageItems] {
		if list, ok := rec[k].([]any); ok {
			return asRecords(list)
		}
	}
	return nil
}

func trimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		if f, err := t.Float64(); err == nil {
			return asInt(f)
		}
		return 0, false
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return i, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0", "":
			return false, true
		default:
			return true, true
		}
	default:
		if f, ok := asFloat(v); ok {
			return f != 0, true
		}
		return false, false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 MST",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func asTime(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}

	secs, ok := asFloat(v)
	if !ok {
		return time.Time{}, false
	}
	// millisecond epochs
	if math.Abs(secs) > 1e11 {
		return time.UnixMilli(int64(secs)).UTC(), true
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}

func asRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}

func asRecords(v any) []Record {
	var list []any
	switch t := v.(type) {
	case []any:
		list = t
	case []Record:
		return t
	case []map[string]any:
		out := make([]Record, 0, len(t))
		for _, m := range t {
			out = append(out, m)
		}
		return out
	default:
		return nil
	}

	out := make([]Record, 0, len(list))
	for _, item := range list {
		if rec, ok := asRecord(item); ok {
			out = append(out, rec)
		}
	}
	return out
}
