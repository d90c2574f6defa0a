package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/2beens/daybyday/internal/middleware"
	"github.com/2beens/daybyday/internal/telemetry/metrics"
)

func TestRequestMetrics(t *testing.T) {
	m := metrics.NewTestManager()

	r := mux.NewRouter()
	r.HandleFunc("/gymstats/daily", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Name("daily")
	r.Use(middleware.RequestMetrics(m))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/gymstats/daily", nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "418")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HistogramRequestDuration))
}
