//go:build integration

package integration_testing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/daybyday/internal"
	"github.com/2beens/daybyday/internal/config"
	"github.com/2beens/daybyday/internal/db"
	"github.com/2beens/daybyday/internal/gymstats/stats"
	"github.com/2beens/daybyday/internal/gymstats/syncs"
	"github.com/2beens/daybyday/pkg"
)

const (
	serverPort     = 9000
	serverHost     = "localhost"
	testAdminToken = "integration-admin-token"
	testHevyAPIKey = "integration-hevy-key"
	testDBName     = "daybyday"
	testDBPassword = "postgres"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Environment struct {
	DB         *pgxpool.Pool
	RedisPort  string
	Hevy       *fakeHevy
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newEnvironment(ctx context.Context) (_ *Environment, err error) {
	env := &Environment{
		teardown: make([]func(), 0),
	}
	defer func() {
		if err != nil {
			env.cleanup()
		}
	}()

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	env.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}
	env.dockerPool.MaxWait = 2 * time.Minute

	// uses pool to try to connect to Docker
	if err = env.dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	env.RedisPort, err = env.redisSetup()
	if err != nil {
		return nil, fmt.Errorf("failed to setup redis: %w", err)
	}

	pgPort, err := env.postgresSetup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to setup postgres: %w", err)
	}

	env.Hevy = newFakeHevy(120)
	env.teardown = append(env.teardown, env.Hevy.Close)

	cfg := getTestConfig(env.RedisPort, pgPort, env.Hevy.URL)
	env.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			HevyAPIKey:              testHevyAPIKey,
			AdminToken:              testAdminToken,
			VersionInfo:             "test-version-info",
			RedisPassword:           "",
			PostgresPassword:        testDBPassword,
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}

	env.server.Serve(ctx, cfg.Host, cfg.Port)

	return env, nil
}

func (e *Environment) cleanup() {
	if e.server != nil {
		if err := e.server.GracefulShutdown(); err != nil {
			log.Errorf("shutdown: %s", err)
		}
	}
	if e.DB != nil {
		e.DB.Close()
	}
	for _, teardown := range e.teardown {
		teardown()
	}
}

func getTestConfig(redisPort, postgresPort, hevyURL string) *config.Config {
	return &config.Config{
		Environment:                "development",
		Host:                       serverHost,
		Port:                       serverPort,
		PrometheusMetricsHost:      serverHost,
		PrometheusMetricsPort:      "9002",
		RedisHost:                  "localhost",
		RedisPort:                  redisPort,
		PostgresPort:               postgresPort,
		PostgresHost:               "localhost",
		PostgresDBName:             testDBName,
		HevyBaseURL:                hevyURL,
		HevyTimeoutSeconds:         5,
		RefreshOnStartup:           true,
		RefreshRateLimitAllowedMin: 3,
		Categories:                 stats.DefaultCategories(),
	}
}

func (e *Environment) redisSetup() (string, error) {
	redisResource, err := e.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "daybyday-redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}

	e.teardown = append(e.teardown, func() {
		if err := redisResource.Close(); err != nil {
			log.Errorf("close redis resource: %s", err)
		}
	})

	return redisResource.GetPort("6379/tcp"), nil
}

func (e *Environment) postgresSetup(ctx context.Context) (string, error) {
	pgResource, err := e.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=" + testDBPassword,
			"POSTGRES_DB=" + testDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %w", err)
	}

	e.teardown = append(e.teardown, func() {
		if err := pgResource.Close(); err != nil {
			log.Errorf("close postgres resource: %s", err)
		}
	})

	pgPort := pgResource.GetPort("5432/tcp")
	if err := e.dockerPool.Retry(func() error {
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     "localhost",
			DBPort:     pgPort,
			DBName:     testDBName,
			DBPassword: testDBPassword,
		})
		if err != nil {
			return err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return err
		}
		e.DB = pool
		return nil
	}); err != nil {
		return "", fmt.Errorf("connect to postgres: %w", err)
	}

	if _, err := e.DB.Exec(ctx, syncs.Schema); err != nil {
		return "", fmt.Errorf("run init script: %w", err)
	}

	return pgPort, nil
}

// fakeHevy serves a fixed history of pullup workouts, one per day going back
// from today, through the three endpoints the client uses.
type fakeHevy struct {
	*httptest.Server
	workouts []map[string]any
	// failing makes every request fail with 503.
	failing  atomic.Bool
	requests atomic.Int32
}

func newFakeHevy(count int) *fakeHevy {
	f := &fakeHevy{}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		start := today.AddDate(0, 0, -i).Add(7 * time.Hour)
		f.workouts = append(f.workouts, map[string]any{
			"id":         fmt.Sprintf("w-%03d", i),
			"title":      "Upper body",
			"start_time": start.Format(time.RFC3339),
			"end_time":   start.Add(time.Hour).Format(time.RFC3339),
			"exercises": []any{
				map[string]any{
					"title": "Pull Up",
					"sets": []any{
						map[string]any{"reps": 10, "weight_kg": nil},
						map[string]any{"reps": 8, "weight_kg": nil},
					},
				},
			},
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/user/info", f.guard(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSON(w, map[string]any{"name": "integration", "weight": 70}, http.StatusOK)
	}))
	mux.HandleFunc("/v1/workouts", f.guard(f.handleWorkouts))
	mux.HandleFunc("/v1/workouts/", f.guard(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/v1/workouts/")
		for _, wk := range f.workouts {
			if wk["id"] == id {
				pkg.WriteJSON(w, map[string]any{"workout": wk}, http.StatusOK)
				return
			}
		}
		http.NotFound(w, r)
	}))
	f.Server = httptest.NewServer(mux)

	return f
}

func (f *fakeHevy) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if r.Header.Get("api-key") != testHevyAPIKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if f.failing.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	}
}

func (f *fakeHevy) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	from := min((page-1)*limit, len(f.workouts))
	to := min(from+limit, len(f.workouts))
	pageCount := (len(f.workouts) + limit - 1) / limit

	pkg.WriteJSON(w, map[string]any{
		"page":       page,
		"page_count": pageCount,
		"workouts":   f.workouts[from:to],
	}, http.StatusOK)
}
