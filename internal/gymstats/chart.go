package gymstats

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/2beens/daybyday/internal/gymstats/stats"
)

const trendSeriesName = "7-day trend"

// RenderDailyChart writes an HTML page with the reps per exercise stacked by
// day and the trailing mean of the daily total drawn over them.
func RenderDailyChart(w io.Writer, daily *stats.DailyAggregates) error {
	subtitle := fmt.Sprintf("Reps per day, %s", daily.Period.Label())
	if daily.Exercise != "" {
		subtitle += ", " + daily.Exercise
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "daybyday",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Training volume",
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)
	bar.SetXAxis(daily.Labels)

	// exercise titles come in whatever case the user typed them in hevy
	caser := cases.Title(language.English)
	for _, name := range daily.Exercises() {
		bar.AddSeries(
			caser.String(name),
			barData(daily.Series[name]),
			charts.WithBarChartOpts(opts.BarChart{Stack: "total"}),
		)
	}

	trend := charts.NewLine()
	trend.SetXAxis(daily.Labels)
	trend.AddSeries(trendSeriesName, lineData(daily.Trend))
	bar.Overlap(trend)

	return bar.Render(w)
}

func barData(values []float64) []opts.BarData {
	items := make([]opts.BarData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.LineData{Value: fmt.Sprintf("%.2f", v)})
	}
	return items
}
