package workouts

import (
	"strconv"
	"strings"
)

// DefaultAddedLoadMarkers flag exercises where the set weight is extra load
// strapped on top of the bodyweight.
var DefaultAddedLoadMarkers = []string{"leste", "lesté", "weighted"}

type ExerciseTotals struct {
	Reps        int      `json:"reps"`
	VolumeKg    float64  `json:"volume_kg"`
	CountedSets int      `json:"counted_sets"`
	LoadNotes   []string `json:"load_notes,omitempty"`
}

type VolumeCalculator struct {
	bodyweightKg float64
	markers      []string
}

// NewVolumeCalculator builds a calculator for one user. A non-positive
// bodyweight falls back to DefaultBodyweightKg, and nil markers fall back to
// DefaultAddedLoadMarkers.
func NewVolumeCalculator(bodyweightKg float64, addedLoadMarkers []string) *VolumeCalculator {
	if bodyweightKg <= 0 {
		bodyweightKg = DefaultBodyweightKg
	}
	if addedLoadMarkers == nil {
		addedLoadMarkers = DefaultAddedLoadMarkers
	}

	markers := make([]string, 0, len(addedLoadMarkers))
	for _, m := range addedLoadMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}

	return &VolumeCalculator{
		bodyweightKg: bodyweightKg,
		markers:      markers,
	}
}

func (c *VolumeCalculator) BodyweightKg() float64 {
	return c.bodyweightKg
}

// IsAddedLoad reports whether the exercise title carries an added-load marker.
func (c *VolumeCalculator) IsAddedLoad(title string) bool {
	title = strings.ToLower(title)
	for _, m := range c.markers {
		if strings.Contains(title, m) {
			return true
		}
	}
	return false
}

// SetVolume returns the load volume of one set in kg.
//
// For added-load exercises the effective load is bodyweight plus the set
// weight (0 when absent). Otherwise the set weight is used, with the
// bodyweight substituted when the weight is absent or not positive.
func (c *VolumeCalculator) SetVolume(s Set, addedLoad bool) float64 {
	volume, _ := c.setVolume(s, addedLoad)
	return volume
}

func (c *VolumeCalculator) setVolume(s Set, addedLoad bool) (float64, string) {
	if addedLoad {
		added := 0.0
		if s.WeightKg != nil {
			added = *s.WeightKg
		}
		note := "bw+added(" + formatKg(c.bodyweightKg) + "+" + formatKg(added) + ")"
		if s.Reps <= 0 {
			return 0, note
		}
		return max(0, c.bodyweightKg+added) * float64(s.Reps), note
	}

	weight := c.bodyweightKg
	note := "bw(" + formatKg(c.bodyweightKg) + ")"
	if s.WeightKg != nil {
		note = formatKg(*s.WeightKg)
		if *s.WeightKg > 0 {
			weight = *s.WeightKg
		}
	}
	if s.Reps <= 0 {
		return 0, note
	}
	return weight * float64(s.Reps), note
}

// ExerciseTotals sums reps and volume over the sets that count, i.e. all
// sets except those explicitly flagged as not completed.
func (c *VolumeCalculator) ExerciseTotals(ex Exercise) ExerciseTotals {
	addedLoad := c.IsAddedLoad(ex.Title)

	totals := ExerciseTotals{}
	for _, s := range ex.Sets {
		if !s.Completed {
			continue
		}
		volume, note := c.setVolume(s, addedLoad)
		totals.Reps += s.Reps
		totals.VolumeKg += volume
		totals.CountedSets++
		totals.LoadNotes = append(totals.LoadNotes, note)
	}
	return totals
}

func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
