package mcp

import (
	"context"

	"github.com/2beens/daybyday/internal/gymstats/periods"
	"github.com/2beens/daybyday/internal/gymstats/stats"
)

// gymAnalyzer provides the aggregation passes over the current snapshot (for dependency injection and testing).
type gymAnalyzer interface {
	DailyAggregates(ctx context.Context, period periods.Period, exercise string) (*stats.DailyAggregates, error)
	SummaryMetrics(ctx context.Context, period periods.Period) (*stats.SummaryMetrics, error)
	TrackedExercises(ctx context.Context) ([]string, error)
	Categories() []stats.Category
}

// contextService provides the training data exposed to MCP clients.
// Used by Handler for testability.
type contextService interface {
	DailyAggregates(ctx context.Context, period, exercise string) (*stats.DailyAggregates, error)
	SummaryMetrics(ctx context.Context, period string) (*stats.SummaryMetrics, error)
	TrackedExercises(ctx context.Context) (*TrackedExercises, error)
}

// TrackedExercises is the result of list_tracked_exercises.
type TrackedExercises struct {
	Exercises  []string         `json:"exercises"`
	Categories []stats.Category `json:"categories"`
	Periods    []periods.Period `json:"periods"`
}

// ContextService resolves tool arguments and runs them through the analyzer.
type ContextService struct {
	analyzer gymAnalyzer
}

func NewContextService(analyzer gymAnalyzer) *ContextService {
	return &ContextService{
		analyzer: analyzer,
	}
}

// DailyAggregates returns the per-day reps and volume for the period. An empty
// period means periods.Default, an empty exercise means all tracked exercises.
func (s *ContextService) DailyAggregates(ctx context.Context, period, exercise string) (*stats.DailyAggregates, error) {
	p, err := parsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.analyzer.DailyAggregates(ctx, p, exercise)
}

// SummaryMetrics returns the period metrics compared with the prior window.
func (s *ContextService) SummaryMetrics(ctx context.Context, period string) (*stats.SummaryMetrics, error) {
	p, err := parsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.analyzer.SummaryMetrics(ctx, p)
}

func (s *ContextService) TrackedExercises(ctx context.Context) (*TrackedExercises, error) {
	titles, err := s.analyzer.TrackedExercises(ctx)
	if err != nil {
		return nil, err
	}
	return &TrackedExercises{
		Exercises:  titles,
		Categories: s.analyzer.Categories(),
		Periods:    periods.Selectable(),
	}, nil
}

func parsePeriod(s string) (periods.Period, error) {
	if s == "" {
		return periods.Default, nil
	}
	return periods.Parse(s)
}
