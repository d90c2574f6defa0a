package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/daybyday/internal/gymstats/syncs"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/telemetry/metrics"
	"github.com/2beens/daybyday/internal/telemetry/tracing"
)

const (
	RawSnapshotRedisKey = "daybyday::snapshot::raw"

	scheduledRefreshTimeout = 5 * time.Minute
)

var ErrNotLoaded = errors.New("no workout snapshot loaded yet")

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=snapshot_test

type fetcher interface {
	FetchSnapshot(ctx context.Context) (*workouts.RawSnapshot, error)
}

type syncRecorder interface {
	Add(ctx context.Context, sync syncs.Sync) (*syncs.Sync, error)
}

type Params struct {
	Fetcher fetcher
	// Syncs and Redis are optional.
	Syncs    syncRecorder
	Redis    *redis.Client
	Resolver *workouts.Resolver
	Metrics  *metrics.Manager
	// PersistTTL of the raw snapshot in redis, 0 keeps it forever.
	PersistTTL time.Duration
}

// Store holds the active snapshot. Readers never block on a refresh: a new
// snapshot is built aside and swapped in once complete.
type Store struct {
	current   atomic.Pointer[workouts.Snapshot]
	refreshMu sync.Mutex

	fetcher    fetcher
	syncs      syncRecorder
	redis      *redis.Client
	resolver   *workouts.Resolver
	metrics    *metrics.Manager
	persistTTL time.Duration

	cronMu sync.Mutex
	cron   *cron.Cron
}

func NewStore(params Params) *Store {
	if params.Resolver == nil {
		params.Resolver = workouts.NewResolver(nil)
	}
	if params.Metrics == nil {
		params.Metrics = metrics.NewTestManager()
	}
	return &Store{
		fetcher:    params.Fetcher,
		syncs:      params.Syncs,
		redis:      params.Redis,
		resolver:   params.Resolver,
		metrics:    params.Metrics,
		persistTTL: params.PersistTTL,
	}
}

func (s *Store) Current(_ context.Context) (*workouts.Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Refresh fetches and activates a new snapshot. Concurrent calls run one
// after the other. On failure the active snapshot is left as it was.
func (s *Store) Refresh(ctx context.Context, trigger syncs.Trigger) (_ *workouts.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.snapshot.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("trigger", string(trigger)))

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := time.Now()
	raw, err := s.fetcher.FetchSnapshot(ctx)
	elapsed := time.Since(started)
	s.metrics.HistSnapshotRefreshDuration.Observe(elapsed.Seconds())

	if err != nil {
		s.metrics.CounterSnapshotRefreshes.WithLabelValues(string(trigger), "error").Inc()
		errMsg := err.Error()
		s.recordSync(ctx, syncs.Sync{
			StartedAt:  started,
			DurationMs: elapsed.Milliseconds(),
			Trigger:    trigger,
			Error:      &errMsg,
		})
		return nil, err
	}

	snap := workouts.NewSnapshot(*raw, s.resolver)
	s.activate(snap)
	s.metrics.CounterSnapshotRefreshes.WithLabelValues(string(trigger), "ok").Inc()

	if err := s.persist(ctx, raw); err != nil {
		log.Errorf("persist raw snapshot: %s", err)
	}

	snapshotID := snap.ID
	s.recordSync(ctx, syncs.Sync{
		SnapshotID: &snapshotID,
		StartedAt:  started,
		DurationMs: elapsed.Milliseconds(),
		Workouts:   len(snap.Workouts),
		Duplicates: snap.Duplicates,
		AuthMode:   snap.AuthMode,
		Trigger:    trigger,
	})

	span.SetAttributes(attribute.Int("workouts", len(snap.Workouts)))
	log.Infof("snapshot %s refreshed [%s]: %d workouts in %s", snap.ID, trigger, len(snap.Workouts), elapsed)

	return snap, nil
}

func (s *Store) activate(snap *workouts.Snapshot) {
	s.current.Store(snap)
	s.metrics.GaugeSnapshotWorkouts.Set(float64(len(snap.Workouts)))
	s.metrics.GaugeSnapshotFetchedAt.Set(float64(snap.FetchedAt.Unix()))
}

func (s *Store) recordSync(ctx context.Context, sync syncs.Sync) {
	if s.syncs == nil {
		return
	}
	// the sync is recorded even when the caller went away meanwhile
	if _, err := s.syncs.Add(context.WithoutCancel(ctx), sync); err != nil {
		log.Errorf("record snapshot sync: %s", err)
	}
}

func (s *Store) persist(ctx context.Context, raw *workouts.RawSnapshot) error {
	if s.redis == nil {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal raw snapshot: %w", err)
	}
	return s.redis.Set(ctx, RawSnapshotRedisKey, string(b), s.persistTTL).Err()
}

// Restore activates the raw snapshot persisted in redis, if any, so that a
// restart does not need to refetch. It reports whether one was found.
func (s *Store) Restore(ctx context.Context) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.snapshot.restore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if s.redis == nil {
		return false, nil
	}

	val, err := s.redis.Get(ctx, RawSnapshotRedisKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get raw snapshot: %w", err)
	}

	raw := &workouts.RawSnapshot{}
	if err := json.Unmarshal([]byte(val), raw); err != nil {
		return false, fmt.Errorf("unmarshal raw snapshot: %w", err)
	}

	snap := workouts.NewSnapshot(*raw, s.resolver)
	s.activate(snap)
	span.SetAttributes(attribute.String("snapshot", snap.ID.String()))
	log.Infof("restored snapshot %s fetched at %s: %d workouts", snap.ID, snap.FetchedAt, len(snap.Workouts))

	return true, nil
}

// SnapshotID returns the id of the active snapshot, uuid.Nil if none.
func (s *Store) SnapshotID() uuid.UUID {
	if snap := s.current.Load(); snap != nil {
		return snap.ID
	}
	return uuid.Nil
}

// StartSchedule refreshes the snapshot on a cron schedule (with seconds,
// e.g. "0 0 */6 * * *"). An empty spec does nothing.
func (s *Store) StartSchedule(spec string) error {
	if spec == "" {
		return nil
	}

	s.cronMu.Lock()
	defer s.cronMu.Unlock()
	if s.cron != nil {
		return errors.New("refresh schedule already started")
	}

	c := cron.New()
	if err := c.AddFunc(spec, s.scheduledRefresh); err != nil {
		return fmt.Errorf("add refresh schedule [%s]: %w", spec, err)
	}
	c.Start()
	s.cron = c
	log.Infof("snapshot refresh scheduled: %s", spec)

	return nil
}

func (s *Store) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledRefreshTimeout)
	defer cancel()
	if _, err := s.Refresh(ctx, syncs.TriggerSchedule); err != nil {
		log.Errorf("scheduled snapshot refresh: %s", err)
	}
}

func (s *Store) Stop() {
	s.cronMu.Lock()
	defer s.cronMu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
