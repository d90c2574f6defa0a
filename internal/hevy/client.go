package hevy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/telemetry/tracing"
)

const (
	DefaultBaseURL = "https://api.hevyapp.com"
	DefaultTimeout = 15 * time.Second
	APIKeyEnvVar   = "HEVY_API_KEY"

	userAgent = "daybyday-dashboard/0.1"

	megabyte         = 1024 * 1024
	defaultCacheSize = 20 * megabyte
	// finished workouts do not change upstream
	workoutCacheExpire = 24 * 60 * 60
)

// authHeaders are tried in this order. A bearer Authorization header is never
// sent: the API treats it as a login token and rejects it.
var authHeaders = []string{"api-key", "x-api-key", "x_api_key"}

// Response is a decoded JSON body together with the auth header that was
// accepted for it.
type Response struct {
	Body     any
	AuthMode string
}

type Params struct {
	BaseURL string
	APIKey  string
	// HTTPClient defaults to a traced client with DefaultTimeout.
	HTTPClient *http.Client
	Resolver   *workouts.Resolver
	CacheSize  int
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	resolver   *workouts.Resolver
	cache      *freecache.Cache
}

func NewClient(params Params) (*Client, error) {
	apiKey := strings.TrimSpace(params.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("hevy api key not set (env %s)", APIKeyEnvVar)
	}

	if params.BaseURL == "" {
		params.BaseURL = DefaultBaseURL
	}
	if params.HTTPClient == nil {
		params.HTTPClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if params.Resolver == nil {
		params.Resolver = workouts.NewResolver(nil)
	}
	if params.CacheSize <= 0 {
		params.CacheSize = defaultCacheSize
	}

	return &Client{
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		apiKey:     apiKey,
		httpClient: params.HTTPClient,
		resolver:   params.Resolver,
		cache:      freecache.NewCache(params.CacheSize),
	}, nil
}

// APIKeyFromEnv reads the API key, trimming stray whitespace from .env files.
func APIKeyFromEnv() string {
	return strings.TrimSpace(os.Getenv(APIKeyEnvVar))
}

// get calls path trying each auth header in turn. Only a 401 moves on to the
// next header; any other failure is returned as is.
func (c *Client) get(ctx context.Context, path string, query url.Values) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hevy.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	for _, header := range authHeaders {
		body, status, err := c.do(ctx, reqURL, header)
		if err != nil {
			return nil, &FetchError{Kind: KindTransport, Path: path, Err: err}
		}

		if status == http.StatusUnauthorized {
			log.Debugf("hevy %s: auth header [%s] rejected", path, header)
			continue
		}
		if status < 200 || status > 299 {
			return nil, &FetchError{Kind: KindStatus, Path: path, StatusCode: status, Body: excerpt(body)}
		}

		var decoded any
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, &FetchError{Kind: KindMalformed, Path: path, StatusCode: status, Err: err}
		}

		span.SetAttributes(attribute.String("auth_mode", header))
		return &Response{Body: decoded, AuthMode: header}, nil
	}

	return nil, &FetchError{Kind: KindAuth, Path: path, StatusCode: http.StatusUnauthorized}
}

func (c *Client) do(ctx context.Context, reqURL, authHeader string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	// set directly, the canonical form would rewrite x_api_key
	req.Header[authHeader] = []string{c.apiKey}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func asObject(path string, resp *Response) (workouts.Record, error) {
	rec, ok := resp.Body.(map[string]any)
	if !ok {
		return nil, &FetchError{
			Kind: KindMalformed,
			Path: path,
			Err:  fmt.Errorf("expected a JSON object, got %T", resp.Body),
		}
	}
	return rec, nil
}

// UserInfo calls GET /v1/user/info.
func (c *Client) UserInfo(ctx context.Context) (workouts.Record, *Response, error) {
	const path = "/v1/user/info"
	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, nil, err
	}
	rec, err := asObject(path, resp)
	if err != nil {
		return nil, nil, err
	}
	return rec, resp, nil
}

// WorkoutsPage calls GET /v1/workouts. Pages start at 1.
func (c *Client) WorkoutsPage(ctx context.Context, page, limit int) (*Response, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))
	return c.get(ctx, "/v1/workouts", query)
}

// Workout calls GET /v1/workouts/{id}. Responses are cached in memory.
func (c *Client) Workout(ctx context.Context, id string) (workouts.Record, error) {
	cacheKey := []byte("workout::" + id)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		rec := workouts.Record{}
		unmarshalErr := json.Unmarshal(cached, &rec)
		if unmarshalErr == nil {
			log.Tracef("workout %s found in cache", id)
			return rec, nil
		}
		log.Errorf("failed to unmarshal cached workout %s: %s", id, unmarshalErr)
		c.cache.Del(cacheKey)
	}

	path := "/v1/workouts/" + url.PathEscape(id)
	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	rec, err := asObject(path, resp)
	if err != nil {
		return nil, err
	}
	// some responses wrap the workout in an envelope
	if inner, ok := rec["workout"].(map[string]any); ok {
		rec = inner
	}

	if b, err := json.Marshal(rec); err == nil {
		if err := c.cache.Set(cacheKey, b, workoutCacheExpire); err != nil {
			log.Errorf("failed to cache workout %s: %s", id, err)
		}
	}
	return rec, nil
}
