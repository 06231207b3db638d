// Package report renders search diagnostics as PNG charts.
package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/heliofit/heliofit/internal/optimization"
)

var (
	traceColor   = color.RGBA{B: 255, A: 255}
	optimumColor = color.RGBA{R: 255, A: 255}
)

// ConvergencePNG renders the evaluation history of a search: energy against
// evaluation index, with the found optimum as a dashed reference line.
func ConvergencePNG(res *optimization.Result) ([]byte, error) {
	if res == nil || len(res.History) == 0 {
		return nil, fmt.Errorf("no evaluation history to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Convergence (%s)", res.Method)
	p.X.Label.Text = "Evaluation"
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(res.History))
	for i, rec := range res.History {
		pts[i] = plotter.XY{X: float64(i + 1), Y: rec.Energy}
	}
	trace, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("building convergence trace: %w", err)
	}
	trace.Color = traceColor
	trace.LineStyle.Width = vg.Points(1.5)
	p.Add(trace)
	p.Legend.Add("evaluations", trace)

	optLine, err := plotter.NewLine(plotter.XYs{
		{X: 1, Y: res.OptimalEnergy},
		{X: float64(len(res.History)), Y: res.OptimalEnergy},
	})
	if err != nil {
		return nil, fmt.Errorf("building optimum line: %w", err)
	}
	optLine.Color = optimumColor
	optLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(optLine)
	p.Legend.Add(fmt.Sprintf("optimum %.2f° ", res.OptimalAngleDeg), optLine)

	return renderPNG(p)
}

// SensitivityPNG renders an energy-vs-angle curve around a found optimum,
// with a dashed vertical marker at the optimum angle.
func SensitivityPNG(records []optimization.EvaluationRecord, optimumDeg float64) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no sensitivity records to plot")
	}

	p := plot.New()
	p.Title.Text = "Tilt sensitivity"
	p.X.Label.Text = "Tilt (deg)"
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(records))
	minE, maxE := records[0].Energy, records[0].Energy
	for i, rec := range records {
		pts[i] = plotter.XY{X: rec.AngleDeg, Y: rec.Energy}
		if rec.Energy < minE {
			minE = rec.Energy
		}
		if rec.Energy > maxE {
			maxE = rec.Energy
		}
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("building sensitivity curve: %w", err)
	}
	curve.Color = traceColor
	curve.LineStyle.Width = vg.Points(1.5)
	p.Add(curve)

	marker, err := plotter.NewLine(plotter.XYs{
		{X: optimumDeg, Y: minE},
		{X: optimumDeg, Y: maxE},
	})
	if err != nil {
		return nil, fmt.Errorf("building optimum marker: %w", err)
	}
	marker.Color = optimumColor
	marker.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(marker)
	p.Legend.Add(fmt.Sprintf("optimum %.2f°", optimumDeg), marker)

	return renderPNG(p)
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	writer, err := p.WriterTo(vg.Points(800), vg.Points(400), "png")
	if err != nil {
		return nil, fmt.Errorf("creating png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("rendering png: %w", err)
	}
	return buf.Bytes(), nil
}
