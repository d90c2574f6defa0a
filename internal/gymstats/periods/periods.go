package periods

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownPeriod = errors.New("unknown period")

type Period string

const (
	All       Period = "all"
	ThisWeek  Period = "this_week"
	LastWeek  Period = "last_week"
	ThisMonth Period = "this_month"
	LastMonth Period = "last_month"
	ThisYear  Period = "this_year"
	LastYear  Period = "last_year"

	// prior periods are comparison baselines only, never selectable
	PriorWeek  Period = "prior_week"
	PriorMonth Period = "prior_month"
	PriorYear  Period = "prior_year"
)

// Default is the period shown when none is requested.
const Default = ThisMonth

// trailingWindowDays is the window used to compare the All period.
const trailingWindowDays = 365

var selectable = []Period{All, ThisWeek, ThisMonth, ThisYear, LastWeek, LastMonth, LastYear}

var labels = map[Period]string{
	All:        "All",
	ThisWeek:   "This week",
	LastWeek:   "Last week",
	ThisMonth:  "This month",
	LastMonth:  "Last month",
	ThisYear:   "This year",
	LastYear:   "Last year",
	PriorWeek:  "Prior week",
	PriorMonth: "Prior month",
	PriorYear:  "Prior year",
}

// Selectable lists the user-facing periods in display order.
func Selectable() []Period {
	return append([]Period(nil), selectable...)
}

// Parse accepts a period id ("last_month") or its label ("Last month"),
// case-insensitively. Prior periods are rejected.
func Parse(s string) (Period, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, p := range selectable {
		if string(p) == norm {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

func (p Period) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return string(p)
}

// Bounds is a resolved time range. Start is always inclusive; EndInclusive
// tells whether End itself belongs to the range. Unbounded ranges contain
// every instant and have no calendar days of their own.
type Bounds struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	EndInclusive bool      `json:"end_inclusive"`
	Unbounded    bool      `json:"unbounded,omitempty"`
}

func (b Bounds) Contains(t time.Time) bool {
	if b.Unbounded {
		return true
	}
	if t.Before(b.Start) {
		return false
	}
	if b.EndInclusive {
		return !t.After(b.End)
	}
	return t.Before(b.End)
}

// LastDay is the calendar date (UTC midnight) of the last instant in range.
func (b Bounds) LastDay() time.Time {
	endDay := Midnight(b.End)
	if !b.EndInclusive && endDay.Equal(b.End) {
		return endDay.AddDate(0, 0, -1)
	}
	return endDay
}

// Days lists every calendar date covered by the bounds, oldest first.
func (b Bounds) Days() []time.Time {
	if b.Unbounded {
		return nil
	}
	return DayRange(b.Start, b.LastDay())
}

// DayRange lists the UTC dates from the day of from through the day of to.
func DayRange(from, to time.Time) []time.Time {
	first, last := Midnight(from), Midnight(to)
	if last.Before(first) {
		return nil
	}
	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Midnight truncates t to the start of its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the midnight of the Monday starting t's week.
func mondayOf(t time.Time) time.Time {
	day := Midnight(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func monthStart(t time.Time, shift int) time.Time {
	t = t.UTC()
	// time.Date normalizes month overflow, so January minus one is December of the year before
	return time.Date(t.Year(), t.Month()+time.Month(shift), 1, 0, 0, 0, 0, time.UTC)
}

func yearStart(t time.Time, shift int) time.Time {
	return time.Date(t.UTC().Year()+shift, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func halfOpen(start, end time.Time) Bounds {
	return Bounds{Start: start, End: end}
}

func upToNow(start, now time.Time) Bounds {
	return Bounds{Start: start, End: now, EndInclusive: true}
}

// Resolve computes the bounds of a period relative to now (taken in UTC).
// This-periods run up to and including now; last and prior periods are
// half-open full calendar units.
func Resolve(p Period, now time.Time) (Bounds, error) {
	now = now.UTC()
	thisMonday := mondayOf(now)

	switch p {
	case All:
		return Bounds{Unbounded: true}, nil
	case ThisWeek:
		return upToNow(thisMonday, now), nil
	case LastWeek:
		return halfOpen(thisMonday.AddDate(0, 0, -7), thisMonday), nil
	case PriorWeek:
		return halfOpen(thisMonday.AddDate(0, 0, -14), thisMonday.AddDate(0, 0, -7)), nil
	case ThisMonth:
		return upToNow(monthStart(now, 0), now), nil
	case LastMonth:
		return halfOpen(monthStart(now, -1), monthStart(now, 0)), nil
	case PriorMonth:
		return halfOpen(monthStart(now, -2), monthStart(now, -1)), nil
	case ThisYear:
		return upToNow(yearStart(now, 0), now), nil
	case LastYear:
		return halfOpen(yearStart(now, -1), yearStart(now, 0)), nil
	case PriorYear:
		return halfOpen(yearStart(now, -2), yearStart(now, -1)), nil
	default:
		return Bounds{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, p)
	}
}

// Comparison pairs a period with the baseline it is compared against.
type Comparison struct {
	Period  Period `json:"period"`
	Current Bounds `json:"current"`
	Prior   Bounds `json:"prior"`
	Label   string `json:"label"`
	// HasDelta is false for All: its comparison window is informational only.
	HasDelta bool `json:"has_delta"`
}

var baselines = map[Period]struct {
	prior Period
	label string
}{
	ThisWeek:  {prior: LastWeek, label: "vs last week"},
	ThisMonth: {prior: LastMonth, label: "vs last month"},
	ThisYear:  {prior: LastYear, label: "vs last year"},
	LastWeek:  {prior: PriorWeek, label: "vs prev. week"},
	LastMonth: {prior: PriorMonth, label: "vs prev. month"},
	LastYear:  {prior: PriorYear, label: "vs prev. year"},
}

// NewComparison resolves the current and prior windows of a selectable period.
// For All the current window is the trailing 365 days and the prior window
// the 365 days before that, both with inclusive ends.
func NewComparison(p Period, now time.Time) (Comparison, error) {
	now = now.UTC()

	if p == All {
		currentStart := Midnight(now.AddDate(0, 0, -trailingWindowDays))
		return Comparison{
			Period:  All,
			Current: upToNow(currentStart, now),
			Prior: Bounds{
				Start:        Midnight(currentStart.AddDate(0, 0, -trailingWindowDays)),
				End:          currentStart,
				EndInclusive: true,
			},
			Label: "vs prev. 365d",
		}, nil
	}

	baseline, ok := baselines[p]
	if !ok {
		return Comparison{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, p)
	}
	current, err := Resolve(p, now)
	if err != nil {
		return Comparison{}, err
	}
	prior, err := Resolve(baseline.prior, now)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Period:   p,
		Current:  current,
		Prior:    prior,
		Label:    baseline.label,
		HasDelta: true,
	}, nil
}
