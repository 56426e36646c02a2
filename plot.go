package nccprob

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultColors are the curve colors, one per group.
var DefaultColors = []color.Color{
	color.RGBA{R: 0x00, G: 0x40, B: 0xff, A: 0xff},
	color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	color.RGBA{R: 0xb0, G: 0xb0, B: 0x00, A: 0xff},
	color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

var guideGray = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

func constTicks(vals []float64) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)}
	}
	return plot.ConstantTicks(ticks)
}

func curveXYs(c GroupCurve) plotter.XYs {
	pts := make(plotter.XYs, len(c.Points))
	for i, p := range c.Points {
		pts[i].X = p.X
		pts[i].Y = p.Y
	}
	return pts
}

func bandErrs(c GroupCurve) plotter.YErrors {
	errs := make(plotter.YErrors, len(c.Band))
	for i, b := range c.Band {
		errs[i].Low = float64(b.Lower)
		errs[i].High = float64(b.Upper)
	}
	return errs
}

// guideSlopes draws two gray reference slopes bracketing typical decay
// exponents, anchored near the curve's third point.
func guideSlopes(p *plot.Plot, c GroupCurve) error {
	if len(c.Points) < 3 {
		return nil
	}
	x1 := c.Points[2].X
	y1 := c.Points[2].Y
	dy := 0.25

	guides := []struct {
		name string
		pts  plotter.XYs
	}{
		{"λ=1.0", plotter.XYs{{X: x1, Y: y1 + dy}, {X: x1 + 1.5, Y: y1 + dy - 1.5}}},
		{"λ=1.5", plotter.XYs{{X: x1, Y: y1 - dy}, {X: x1 + 1.5, Y: y1 - dy - 2.25}}},
	}
	for _, g := range guides {
		line, err := plotter.NewLine(g.pts)
		if err != nil {
			return err
		}
		line.Color = guideGray
		p.Add(line)
		p.Legend.Add(g.name, line)
	}
	return nil
}

// PlotCurves renders the pre-log-transformed curves on fixed axes. The
// output format follows the file extension.
func PlotCurves(outpath string, axes Axes, curves ...GroupCurve) error {
	p := plot.New()
	p.Title.Text = "Contact sequence separations"
	p.X.Label.Text = "Sequence separation (log10 bp)"
	p.Y.Label.Text = "Contact probability (log10 density)"
	p.X.Min, p.X.Max = axes.XMin, axes.XMax
	p.Y.Min, p.Y.Max = axes.YMin, axes.YMax
	p.X.Tick.Marker = constTicks(axes.XTicks)
	p.Y.Tick.Marker = constTicks(axes.YTicks)

	for i, c := range curves {
		line, err := plotter.NewLine(curveXYs(c))
		if err != nil {
			return err
		}
		line.Width = vg.Points(1)
		line.Color = DefaultColors[i%len(DefaultColors)]
		p.Add(line)
		if c.Label != "" {
			p.Legend.Add(c.Label, line)
		}

		if c.Band != nil {
			bars, err := plotter.NewYErrorBars(struct {
				plotter.XYs
				plotter.YErrors
			}{curveXYs(c), bandErrs(c)})
			if err != nil {
				return err
			}
			bars.Color = line.Color
			p.Add(bars)
		}
	}

	if len(curves) == 1 {
		if err := guideSlopes(p, curves[0]); err != nil {
			return err
		}
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, outpath)
}
