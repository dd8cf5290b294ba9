package report

import (
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/marine-data/behavior.report/internal/tracking"
)

// InteractionPie builds a pie chart of interaction-type frequencies.
func InteractionPie(samples []tracking.Sample) *charts.Pie {
	counts := map[tracking.InteractionLabel]int{}
	for _, s := range samples {
		counts[s.Interaction]++
	}

	data := make([]opts.PieData, 0, len(tracking.InteractionLabels))
	for _, label := range tracking.InteractionLabels {
		if counts[label] == 0 {
			continue
		}
		data = append(data, opts.PieData{Name: string(label), Value: counts[label]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Interaction Types"}),
		charts.WithTitleOpts(opts.Title{Title: "Interaction Types", Subtitle: fmt.Sprintf("n=%d", len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("interactions", data)
	return pie
}

// DistanceLine builds a line chart of the inter-subject distance series, with
// a horizontal marker at the proximity threshold.
func DistanceLine(distances []float64) *charts.Line {
	xs := make([]int, len(distances))
	data := make([]opts.LineData, len(distances))
	for i, d := range distances {
		xs[i] = i
		data[i] = opts.LineData{Value: d}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Inter-subject Distance"}),
		charts.WithTitleOpts(opts.Title{Title: "Distance Between Subjects", Subtitle: fmt.Sprintf("k=%d, threshold=%.1f m", len(distances), tracking.ProximityThreshold)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sample index"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance (m)"}),
	)
	line.SetXAxis(xs)
	line.AddSeries("distance", data)
	line.SetSeriesOptions(
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "proximity threshold", YAxis: tracking.ProximityThreshold}),
	)
	return line
}

// WriteCharts renders both HTML charts into dir and returns the written paths.
func WriteCharts(dir string, samples []tracking.Sample, distances []float64, now time.Time) ([]string, error) {
	stamp := now.Format("20060102_150405")

	piePath, err := safeOutputPath(dir, fmt.Sprintf("interactions_%s.html", stamp))
	if err != nil {
		return nil, err
	}
	pf, err := os.Create(piePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart file: %w", err)
	}
	defer pf.Close()
	if err := InteractionPie(samples).Render(pf); err != nil {
		return nil, fmt.Errorf("failed to render interaction chart: %w", err)
	}

	linePath, err := safeOutputPath(dir, fmt.Sprintf("distance_%s.html", stamp))
	if err != nil {
		return nil, err
	}
	lf, err := os.Create(linePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart file: %w", err)
	}
	defer lf.Close()
	if err := DistanceLine(distances).Render(lf); err != nil {
		return nil, fmt.Errorf("failed to render distance chart: %w", err)
	}

	return []string{piePath, linePath}, nil
}
