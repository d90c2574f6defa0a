package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2beens/daybyday/internal/middleware"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	testCases := []struct {
		name               string
		adminToken         string
		path               string
		method             string
		token              string
		expectedStatusCode int
		expectNextCalled   bool
	}{
		{
			name:               "OpenPathWithoutToken",
			adminToken:         "secret",
			path:               "/gymstats/daily",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "Options",
			adminToken:         "secret",
			path:               "/gymstats/refresh",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "ProtectedPathWithoutToken",
			adminToken:         "secret",
			path:               "/gymstats/refresh",
			method:             "POST",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ProtectedPathWrongToken",
			adminToken:         "secret",
			path:               "/gymstats/syncs",
			method:             "GET",
			token:              "nope",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ProtectedPathValidToken",
			adminToken:         "secret",
			path:               "/gymstats/refresh",
			method:             "POST",
			token:              "secret",
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "ProtectedPrefix",
			adminToken:         "secret",
			path:               "/gymstats/debug/rows",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "NoAdminTokenConfigured",
			adminToken:         "",
			path:               "/gymstats/refresh",
			method:             "POST",
			token:              "anything",
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			authMiddleware := middleware.NewAuthMiddlewareHandler(tc.adminToken)

			req, err := http.NewRequest(tc.method, tc.path, nil)
			assert.NoError(t, err)
			if tc.token != "" {
				req.Header.Add(middleware.AuthTokenHeader, tc.token)
			}

			nextCalled := false
			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectNextCalled, nextCalled)
		})
	}
}
