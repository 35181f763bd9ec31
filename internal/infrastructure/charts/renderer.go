// Package charts renders the four-panel review analysis page: score
// histogram, daily review counts, daily average score, and sentiment share.
package charts

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StorePulse/internal/domain"
)

// Average-score panels draw a fixed reference line at this rating.
const ratingThreshold = 3.5

// Renderer builds the go-echarts page for one app's research report.
type Renderer struct{}

// Render writes the four-panel HTML page to w.
func (Renderer) Render(research domain.ResearchReport, w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = fmt.Sprintf("Review Analysis: %s", research.AppName)

	dates := sortedDates(research.Trends.ReviewCounts)

	page.AddCharts(
		ratingHistogram(research),
		dailyCountLine(research, dates),
		dailyAverageLine(research, dates),
		sentimentPie(research),
	)

	return page.Render(w)
}

func ratingHistogram(research domain.ResearchReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Rating Distribution"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Score"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Reviews"}),
	)

	labels := make([]string, 0, 5)
	data := make([]opts.BarData, 0, 5)
	for score := 1; score <= 5; score++ {
		labels = append(labels, strconv.Itoa(score))
		data = append(data, opts.BarData{Value: research.Statistics.RatingDist[score]})
	}

	bar.SetXAxis(labels).AddSeries("reviews", data)
	return bar
}

func dailyCountLine(research domain.ResearchReport, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Review Volume"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Reviews"}),
	)

	data := make([]opts.LineData, len(dates))
	for i, date := range dates {
		data[i] = opts.LineData{Value: research.Trends.ReviewCounts[date]}
	}

	line.SetXAxis(dates).AddSeries("reviews", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	return line
}

func dailyAverageLine(research domain.ResearchReport, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Average Rating"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Rating", Max: 5}),
	)

	data := make([]opts.LineData, len(dates))
	for i, date := range dates {
		data[i] = opts.LineData{Value: research.Trends.AverageRatings[date]}
	}

	line.SetXAxis(dates).AddSeries("average rating", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  "3.5 threshold",
			YAxis: ratingThreshold,
		}),
	)
	return line
}

func sentimentPie(research domain.ResearchReport) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sentiment Share"}),
	)

	stats := research.Statistics
	pie.AddSeries("sentiment", []opts.PieData{
		{Name: "positive", Value: stats.PositivePercentage},
		{Name: "neutral", Value: stats.NeutralPercentage},
		{Name: "negative", Value: stats.NegativePercentage},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))

	return pie
}

func sortedDates(counts map[string]int) []string {
	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
