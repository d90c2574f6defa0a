package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/daybyday/internal/config"
	"github.com/2beens/daybyday/internal/db"
	"github.com/2beens/daybyday/internal/gymstats"
	gymstatsmcp "github.com/2beens/daybyday/internal/gymstats/mcp"
	"github.com/2beens/daybyday/internal/gymstats/snapshot"
	"github.com/2beens/daybyday/internal/gymstats/stats"
	"github.com/2beens/daybyday/internal/gymstats/syncs"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/hevy"
	"github.com/2beens/daybyday/internal/middleware"
	"github.com/2beens/daybyday/internal/telemetry/metrics"
	"github.com/2beens/daybyday/internal/telemetry/tracing"
	"github.com/2beens/daybyday/pkg"
)

const (
	startupRefreshTimeout = 5 * time.Minute
	// mcp json-rpc calls are the largest bodies we accept
	maxRequestBodyBytes = 1 << 20
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	adminToken        string // guards refresh and sync history
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	snapshots      *snapshot.Store
	analyzer       *stats.Analyzer
	syncsRepo      *syncs.Repo
	refreshLimiter middleware.RequestRateLimiter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	HevyAPIKey              string
	AdminToken              string
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	aliases, err := cfg.Aliases()
	if err != nil {
		return nil, err
	}
	categories, err := stats.NewCategories(cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	resolver := workouts.NewResolver(aliases)

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if _, err := dbPool.Exec(ctx, syncs.Schema); err != nil {
		log.Errorf("failed to create sync history table: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("daybyday", "dashboard", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "daybyday-dashboard", rdb)
	if err != nil {
		return nil, err
	}

	hevyClient, err := hevy.NewClient(hevy.Params{
		BaseURL: cfg.HevyBaseURL,
		APIKey:  params.HevyAPIKey,
		HTTPClient: &http.Client{
			Timeout:   cfg.HevyTimeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Resolver: resolver,
	})
	if err != nil {
		return nil, fmt.Errorf("new hevy client: %w", err)
	}

	syncsRepo := syncs.NewRepo(dbPool)
	store := snapshot.NewStore(snapshot.Params{
		Fetcher:    hevyClient,
		Syncs:      syncsRepo,
		Redis:      rdb,
		Resolver:   resolver,
		Metrics:    metricsManager,
		PersistTTL: cfg.SnapshotPersistTTL(),
	})

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		adminToken:  params.AdminToken,
		versionInfo: params.VersionInfo,

		snapshots: store,
		analyzer: stats.NewAnalyzer(store, stats.AnalyzerParams{
			Categories:       categories,
			AddedLoadMarkers: cfg.AddedLoadMarkers,
		}),
		syncsRepo:      syncsRepo,
		refreshLimiter: redis_rate.NewLimiter(rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("dashboard-router"))

	gymstatsHandler := gymstats.NewHandler(s.analyzer, s.snapshots, s.syncsRepo)
	gymstatsHandler.SetupRoutes(r, middleware.RateLimit(
		s.refreshLimiter,
		s.metricsManager,
		"gymstats-refresh",
		s.config.RefreshRateLimitAllowedMin,
	))

	mcpServer := gymstatsmcp.NewServer(s.analyzer, s.metricsManager)
	r.PathPrefix("/mcp").Handler(gymstatsmcp.NewHTTPHandler(mcpServer)).Name("mcp")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.adminToken)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r, nil
}

// LoadSnapshot restores the last snapshot from redis and, when configured,
// refreshes it from Hevy.
func (s *Server) LoadSnapshot(ctx context.Context) {
	restored, err := s.snapshots.Restore(ctx)
	if err != nil {
		log.Errorf("restore snapshot: %s", err)
	}
	if !s.config.RefreshOnStartup {
		if !restored {
			log.Warnln("no snapshot loaded, waiting for a refresh")
		}
		return
	}

	ctx, cancel := context.WithTimeout(ctx, startupRefreshTimeout)
	defer cancel()
	if _, err := s.snapshots.Refresh(ctx, syncs.TriggerStartup); err != nil {
		log.Errorf("startup snapshot refresh: %s", err)
	}
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.LoadSnapshot(ctx)

	if err := s.snapshots.StartSchedule(s.config.RefreshSchedule); err != nil {
		log.Errorf("snapshot refresh schedule: %s", err)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)
	s.snapshots.Stop()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var errs error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return errs
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
