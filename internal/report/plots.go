package report

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/marine-data/behavior.report/internal/tracking"
)

// subjectColors gives each subject a stable line color.
var subjectColors = map[tracking.SubjectID]color.RGBA{
	tracking.SubjectA: {R: 31, G: 119, B: 180, A: 255},
	tracking.SubjectB: {R: 255, G: 127, B: 14, A: 255},
}

// PlotTrajectories writes a PNG of both subjects' movement trajectories and
// returns the written path.
func PlotTrajectories(dir string, samples []tracking.Sample, now time.Time) (string, error) {
	path, err := safeOutputPath(dir, fmt.Sprintf("trajectories_%s.png", now.Format("20060102_150405")))
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = "Movement Trajectories"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	for _, id := range tracking.Subjects {
		series := tracking.BySubject(samples, id)
		if len(series) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(series))
		for i, s := range series {
			pts[i].X = s.X
			pts[i].Y = s.Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("failed to build %s trajectory: %w", id, err)
		}
		line.Color = subjectColors[id]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(string(id), line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save trajectory plot: %w", err)
	}
	return path, nil
}

// PlotVelocityHistogram writes a PNG histogram of sample velocities and
// returns the written path.
func PlotVelocityHistogram(dir string, samples []tracking.Sample, now time.Time) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}
	path, err := safeOutputPath(dir, fmt.Sprintf("velocity_hist_%s.png", now.Format("20060102_150405")))
	if err != nil {
		return "", err
	}

	values := make(plotter.Values, len(samples))
	for i, s := range samples {
		values[i] = s.Velocity
	}

	p := plot.New()
	p.Title.Text = "Velocity Distribution"
	p.X.Label.Text = "Velocity (m/s)"
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(values, 30)
	if err != nil {
		return "", fmt.Errorf("failed to build velocity histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save velocity histogram: %w", err)
	}
	return path, nil
}
