package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/daybyday/internal/telemetry/metrics"
)

// NewServer builds an MCP server with the training analytics tools: daily
// aggregates, summary metrics and the tracked exercise list.
// Served over stdio by cmd/gymstats_mcp and over HTTP at /mcp by the dashboard.
func NewServer(analyzer gymAnalyzer, metricsManager *metrics.Manager) *mcp.Server {
	h := NewHandler(NewContextService(analyzer), metricsManager)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "daybyday-gymstats",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolDailyAggregates,
		Description: "Returns reps and volume (kg) per day for the tracked exercises (pullups, dips, leg raises, curls) over a calendar period, with the daily total and its 7-day trailing mean. Rest days are zero. Optional: period, exercise. Use when you need the day by day progression.",
	}, h.GetDailyAggregatesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolSummaryMetrics,
		Description: "Returns workouts, total duration, reps per category and volume for a period together with the same metrics of the prior window and the percentage change. Optional: period. Use when asked how training compares with last week, month or year.",
	}, h.GetSummaryMetricsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolTrackedExercises,
		Description: "Returns the exercise titles that fall in a tracked category, the category definitions and the selectable period ids. Use before get_daily_aggregates to pick a valid exercise.",
	}, h.ListTrackedExercisesTool())

	return s
}

// NewHTTPHandler serves s over the streamable HTTP transport.
func NewHTTPHandler(s *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s
	}, nil)
}
