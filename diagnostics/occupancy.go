// Package diagnostics renders queue occupancy over time to a PNG chart, an
// opt-in tool for visualizing a stress run rather than a feature of the
// queue itself.
package diagnostics

import (
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Sample is one occupancy reading taken at t, relative to the start of the
// recording.
type Sample struct {
	At    time.Duration
	Depth int
}

// OccupancyRecorder accumulates samples of a queue's depth over the
// lifetime of a run.
type OccupancyRecorder struct {
	start   time.Time
	samples []Sample
}

// NewOccupancyRecorder starts a recording clock at now.
func NewOccupancyRecorder(now time.Time) *OccupancyRecorder {
	return &OccupancyRecorder{start: now}
}

// Record appends a depth reading at now.
func (r *OccupancyRecorder) Record(now time.Time, depth int) {
	r.samples = append(r.samples, Sample{At: now.Sub(r.start), Depth: depth})
}

// Samples returns the recorded readings in chronological order.
func (r *OccupancyRecorder) Samples() []Sample {
	return r.samples
}

// SaveOccupancyChart renders the recorder's samples as a depth-over-time
// line chart and saves it as a PNG at path.
func SaveOccupancyChart(r *OccupancyRecorder, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "elapsed"
	p.Y.Label.Text = "queue depth"
	p.BackgroundColor = color.White

	pts := make(plotter.XYs, len(r.samples))
	for i, s := range r.samples {
		pts[i].X = s.At.Seconds()
		pts[i].Y = float64(s.Depth)
	}

	if err := plotutil.AddLinePoints(p, "depth", pts); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 3*vg.Inch, path)
}
