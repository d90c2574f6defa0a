package workouts

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RawSnapshot is what the upstream fetch yields: the user object and every
// workout object, untouched.
type RawSnapshot struct {
	User      Record    `json:"user"`
	Workouts  []Record  `json:"workouts"`
	AuthMode  string    `json:"auth_mode"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Snapshot is the parsed, immutable view every aggregation pass runs on.
// It is replaced as a whole on refresh, never modified.
type Snapshot struct {
	ID         uuid.UUID   `json:"id"`
	FetchedAt  time.Time   `json:"fetched_at"`
	AuthMode   string      `json:"auth_mode"`
	User       UserProfile `json:"user"`
	Workouts   []Workout   `json:"workouts"`
	Duplicates int         `json:"duplicates"`
}

// NewSnapshot parses the raw snapshot. Workouts sharing an id are kept once
// (first occurrence wins) so that overlapping pages do not double count.
// Workouts without an id are always kept.
func NewSnapshot(raw RawSnapshot, resolver *Resolver) *Snapshot {
	if resolver == nil {
		resolver = NewResolver(nil)
	}

	s := &Snapshot{
		ID:        uuid.New(),
		FetchedAt: raw.FetchedAt,
		AuthMode:  raw.AuthMode,
		User:      resolver.ParseUserProfile(raw.User),
		Workouts:  make([]Workout, 0, len(raw.Workouts)),
	}

	seen := make(map[string]struct{}, len(raw.Workouts))
	for _, rec := range raw.Workouts {
		w := resolver.ParseWorkout(rec)
		if w.ID != "" {
			if _, ok := seen[w.ID]; ok {
				s.Duplicates++
				continue
			}
			seen[w.ID] = struct{}{}
		}
		s.Workouts = append(s.Workouts, w)
	}

	if s.Duplicates > 0 {
		log.Warnf("snapshot %s: dropped %d duplicate workouts", s.ID, s.Duplicates)
	}
	log.Debugf("snapshot %s: %d workouts, bodyweight %.1f kg", s.ID, len(s.Workouts), s.User.BodyweightKg)

	return s
}
