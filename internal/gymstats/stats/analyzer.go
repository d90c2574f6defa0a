package stats

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/daybyday/internal/gymstats/periods"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type snapshotProvider interface {
	Current(ctx context.Context) (*workouts.Snapshot, error)
}

type AnalyzerParams struct {
	Categories       *Categories
	AddedLoadMarkers []string
	// Now defaults to time.Now
	Now func() time.Time
}

// Analyzer runs the aggregation passes on the current snapshot.
type Analyzer struct {
	snapshots        snapshotProvider
	categories       *Categories
	addedLoadMarkers []string
	now              func() time.Time

	mu         sync.Mutex
	rowsFor    uuid.UUID
	cachedRows []Row
}

func NewAnalyzer(snapshots snapshotProvider, params AnalyzerParams) *Analyzer {
	if params.Categories == nil {
		params.Categories = MustDefaultCategories()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Analyzer{
		snapshots:        snapshots,
		categories:       params.Categories,
		addedLoadMarkers: params.AddedLoadMarkers,
		now:              params.Now,
	}
}

func (a *Analyzer) Categories() []Category {
	return a.categories.List()
}

// rows flattens the current snapshot. Rows are kept until the snapshot is replaced.
func (a *Analyzer) rows(ctx context.Context) (_ []Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot, err := a.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cachedRows != nil && a.rowsFor == snapshot.ID {
		span.SetAttributes(attribute.Bool("cached", true))
		return a.cachedRows, nil
	}

	calc := workouts.NewVolumeCalculator(snapshot.User.BodyweightKg, a.addedLoadMarkers)
	rows := Flatten(snapshot, calc)
	if rows == nil {
		rows = []Row{}
	}
	a.rowsFor = snapshot.ID
	a.cachedRows = rows

	span.SetAttributes(
		attribute.String("snapshot", snapshot.ID.String()),
		attribute.Int("rows", len(rows)),
	)
	return rows, nil
}

func (a *Analyzer) DailyAggregates(
	ctx context.Context,
	period periods.Period,
	exercise string,
) (_ *DailyAggregates, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.daily-aggregates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("period", string(period)),
		attribute.String("exercise", exercise),
	)

	rows, err := a.rows(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeDailyAggregates(rows, a.categories, period, exercise, a.now())
}

func (a *Analyzer) SummaryMetrics(ctx context.Context, period periods.Period) (_ *SummaryMetrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.summary-metrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period", string(period)))

	rows, err := a.rows(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeSummaryMetrics(rows, a.categories, period, a.now())
}

// TrackedExercises lists the distinct titles of exercises in any category,
// i.e. the choices for the exercise selector.
func (a *Analyzer) TrackedExercises(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.tracked-exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := a.rows(ctx)
	if err != nil {
		return nil, err
	}
	titles := exerciseTitles(filterRows(rows, tracked(a.categories)))
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}
