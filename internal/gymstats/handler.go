package gymstats

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/daybyday/internal/gymstats/periods"
	"github.com/2beens/daybyday/internal/gymstats/snapshot"
	"github.com/2beens/daybyday/internal/gymstats/stats"
	"github.com/2beens/daybyday/internal/gymstats/syncs"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/hevy"
	"github.com/2beens/daybyday/internal/telemetry/tracing"
	"github.com/2beens/daybyday/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=gymstats_test

type analyzer interface {
	DailyAggregates(ctx context.Context, period periods.Period, exercise string) (*stats.DailyAggregates, error)
	SummaryMetrics(ctx context.Context, period periods.Period) (*stats.SummaryMetrics, error)
	TrackedExercises(ctx context.Context) ([]string, error)
	Categories() []stats.Category
}

type refresher interface {
	Refresh(ctx context.Context, trigger syncs.Trigger) (*workouts.Snapshot, error)
}

type syncLister interface {
	List(ctx context.Context, limit int) ([]syncs.Sync, error)
}

const notLoadedHint = "no snapshot loaded yet, trigger one with POST /gymstats/refresh"

type PeriodOption struct {
	ID      periods.Period `json:"id"`
	Label   string         `json:"label"`
	Default bool           `json:"default,omitempty"`
}

type ExercisesResponse struct {
	Exercises  []string         `json:"exercises"`
	Categories []stats.Category `json:"categories"`
}

type RefreshResponse struct {
	SnapshotID uuid.UUID `json:"snapshot_id"`
	FetchedAt  time.Time `json:"fetched_at"`
	AuthMode   string    `json:"auth_mode"`
	Workouts   int       `json:"workouts"`
	Duplicates int       `json:"duplicates"`
}

type SyncsResponse struct {
	Syncs []syncs.Sync `json:"syncs"`
}

type Handler struct {
	analyzer  analyzer
	refresher refresher
	syncs     syncLister
}

func NewHandler(analyzer analyzer, refresher refresher, syncs syncLister) *Handler {
	return &Handler{
		analyzer:  analyzer,
		refresher: refresher,
		syncs:     syncs,
	}
}

// SetupRoutes registers the gymstats routes. refreshMiddleware wraps only the
// refresh route (rate limiting).
func (handler *Handler) SetupRoutes(router *mux.Router, refreshMiddleware ...mux.MiddlewareFunc) {
	gymstatsRouter := router.PathPrefix("/gymstats").Subrouter()
	gymstatsRouter.HandleFunc("/periods", handler.HandlePeriods).Methods("GET").Name("gymstats-periods")
	gymstatsRouter.HandleFunc("/exercises", handler.HandleExercises).Methods("GET").Name("gymstats-exercises")
	gymstatsRouter.HandleFunc("/daily", handler.HandleDaily).Methods("GET").Name("gymstats-daily")
	gymstatsRouter.HandleFunc("/summary", handler.HandleSummary).Methods("GET").Name("gymstats-summary")
	gymstatsRouter.HandleFunc("/chart", handler.HandleChart).Methods("GET").Name("gymstats-chart")
	gymstatsRouter.HandleFunc("/syncs", handler.HandleSyncs).Methods("GET").Name("gymstats-syncs")

	var refresh http.Handler = http.HandlerFunc(handler.HandleRefresh)
	for i := len(refreshMiddleware) - 1; i >= 0; i-- {
		refresh = refreshMiddleware[i].Middleware(refresh)
	}
	gymstatsRouter.Handle("/refresh", refresh).Methods("POST", "OPTIONS").Name("gymstats-refresh")
}

func (handler *Handler) HandlePeriods(w http.ResponseWriter, _ *http.Request) {
	var options []PeriodOption
	for _, p := range periods.Selectable() {
		options = append(options, PeriodOption{
			ID:      p,
			Label:   p.Label(),
			Default: p == periods.Default,
		})
	}
	pkg.WriteJSON(w, options, http.StatusOK)
}

func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises")
	defer span.End()

	titles, err := handler.analyzer.TrackedExercises(ctx)
	if err != nil {
		handler.writeError(w, "list exercises", err)
		return
	}
	pkg.WriteJSON(w, ExercisesResponse{
		Exercises:  titles,
		Categories: handler.analyzer.Categories(),
	}, http.StatusOK)
}

func (handler *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.daily")
	defer span.End()

	period, err := periodParam(r)
	if err != nil {
		handler.writeError(w, "daily aggregates", err)
		return
	}
	exercise := r.URL.Query().Get("exercise")
	span.SetAttributes(attribute.String("period", string(period)), attribute.String("exercise", exercise))

	daily, err := handler.analyzer.DailyAggregates(ctx, period, exercise)
	if err != nil {
		handler.writeError(w, "daily aggregates", err)
		return
	}
	pkg.WriteJSON(w, daily, http.StatusOK)
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.summary")
	defer span.End()

	period, err := periodParam(r)
	if err != nil {
		handler.writeError(w, "summary metrics", err)
		return
	}
	span.SetAttributes(attribute.String("period", string(period)))

	summary, err := handler.analyzer.SummaryMetrics(ctx, period)
	if err != nil {
		handler.writeError(w, "summary metrics", err)
		return
	}
	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (handler *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.chart")
	defer span.End()

	period, err := periodParam(r)
	if err != nil {
		handler.writeError(w, "chart", err)
		return
	}
	exercise := r.URL.Query().Get("exercise")

	daily, err := handler.analyzer.DailyAggregates(ctx, period, exercise)
	if err != nil {
		handler.writeError(w, "chart", err)
		return
	}

	w.Header().Set("Content-Type", pkg.ContentType.HTML)
	if err := RenderDailyChart(w, daily); err != nil {
		log.Errorf("render chart [%s]: %s", period, err)
	}
}

func (handler *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.refresh")
	defer span.End()

	snap, err := handler.refresher.Refresh(ctx, syncs.TriggerManual)
	if err != nil {
		handler.writeError(w, "refresh", err)
		return
	}

	log.Debugf("snapshot refreshed on request: %s, %d workouts", snap.ID, len(snap.Workouts))
	pkg.WriteJSON(w, RefreshResponse{
		SnapshotID: snap.ID,
		FetchedAt:  snap.FetchedAt,
		AuthMode:   snap.AuthMode,
		Workouts:   len(snap.Workouts),
		Duplicates: snap.Duplicates,
	}, http.StatusOK)
}

func (handler *Handler) HandleSyncs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.syncs")
	defer span.End()

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "error, limit must be a positive number", http.StatusBadRequest)
			return
		}
	}

	list, err := handler.syncs.List(ctx, limit)
	if err != nil {
		handler.writeError(w, "list syncs", err)
		return
	}
	if list == nil {
		list = []syncs.Sync{}
	}
	pkg.WriteJSON(w, SyncsResponse{Syncs: list}, http.StatusOK)
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, periods.ErrUnknownPeriod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, snapshot.ErrNotLoaded):
		http.Error(w, notLoadedHint, http.StatusConflict)
	case errors.Is(err, hevy.ErrFetch):
		log.Errorf("%s: %s", op, err)
		http.Error(w, "error, hevy fetch failed: "+err.Error(), http.StatusBadGateway)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "error, "+op+" failed", http.StatusInternalServerError)
	}
}

// periodParam reads the period query param, falling back to periods.Default.
func periodParam(r *http.Request) (periods.Period, error) {
	p := r.URL.Query().Get("period")
	if p == "" {
		return periods.Default, nil
	}
	return periods.Parse(p)
}
