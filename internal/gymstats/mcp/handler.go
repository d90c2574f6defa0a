package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/daybyday/internal/gymstats/snapshot"
	"github.com/2beens/daybyday/internal/telemetry/metrics"
)

const (
	ToolDailyAggregates  = "get_daily_aggregates"
	ToolSummaryMetrics   = "get_summary_metrics"
	ToolTrackedExercises = "list_tracked_exercises"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service        contextService
	metricsManager *metrics.Manager
}

// NewHandler builds a handler with the given service. metricsManager may be nil.
func NewHandler(service contextService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

// DailyAggregatesInput is the input for get_daily_aggregates.
type DailyAggregatesInput struct {
	Period   string `json:"period,omitempty" jsonschema:"Period id (all, this_week, last_week, this_month, last_month, this_year, last_year); defaults to this_month"`
	Exercise string `json:"exercise,omitempty" jsonschema:"Exact exercise title to narrow the series to (see list_tracked_exercises)"`
}

// SummaryMetricsInput is the input for get_summary_metrics.
type SummaryMetricsInput struct {
	Period string `json:"period,omitempty" jsonschema:"Period id (all, this_week, last_week, this_month, last_month, this_year, last_year); defaults to this_month"`
}

// GetDailyAggregatesTool returns the MCP tool handler for get_daily_aggregates.
func (h *Handler) GetDailyAggregatesTool() func(context.Context, *mcp.CallToolRequest, DailyAggregatesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DailyAggregatesInput) (*mcp.CallToolResult, any, error) {
		daily, err := h.service.DailyAggregates(ctx, in.Period, in.Exercise)
		if err != nil {
			return h.errorResult(ToolDailyAggregates, "Error computing daily aggregates", err), nil, nil
		}
		return h.jsonResult(ToolDailyAggregates, daily), nil, nil
	}
}

// GetSummaryMetricsTool returns the MCP tool handler for get_summary_metrics.
func (h *Handler) GetSummaryMetricsTool() func(context.Context, *mcp.CallToolRequest, SummaryMetricsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SummaryMetricsInput) (*mcp.CallToolResult, any, error) {
		summary, err := h.service.SummaryMetrics(ctx, in.Period)
		if err != nil {
			return h.errorResult(ToolSummaryMetrics, "Error computing summary metrics", err), nil, nil
		}
		return h.jsonResult(ToolSummaryMetrics, summary), nil, nil
	}
}

// TrackedExercisesInput is the (empty) input for list_tracked_exercises.
type TrackedExercisesInput struct{}

// ListTrackedExercisesTool returns the MCP tool handler for list_tracked_exercises.
func (h *Handler) ListTrackedExercisesTool() func(context.Context, *mcp.CallToolRequest, TrackedExercisesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ TrackedExercisesInput) (*mcp.CallToolResult, any, error) {
		tracked, err := h.service.TrackedExercises(ctx)
		if err != nil {
			return h.errorResult(ToolTrackedExercises, "Error listing exercises", err), nil, nil
		}
		return h.jsonResult(ToolTrackedExercises, tracked), nil, nil
	}
}

func (h *Handler) jsonResult(tool string, v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return h.errorResult(tool, "Error encoding response", err)
	}
	h.countCall(tool, "ok")
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) errorResult(tool, prefix string, err error) *mcp.CallToolResult {
	text := prefix + ": " + err.Error()
	if errors.Is(err, snapshot.ErrNotLoaded) {
		text = prefix + ": no training data loaded yet, the dashboard has to refresh from Hevy first"
	} else {
		log.Errorf("mcp tool %s: %s", tool, err)
	}
	h.countCall(tool, "error")
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func (h *Handler) countCall(tool, result string) {
	if h.metricsManager == nil {
		return
	}
	h.metricsManager.CounterMCPToolCalls.WithLabelValues(tool, result).Inc()
}
