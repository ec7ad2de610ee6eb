package report

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/roach88/connective/internal/ir"
)

var (
	allColor      = color.RGBA{R: 120, G: 120, B: 120, A: 160}
	frontierColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

// NewPlot builds a scatter of complexity against informativeness over every
// record of t, with the frontier drawn on top and joined by a line.
func NewPlot(t *ir.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = t.Experiment.Name
	p.X.Label.Text = "complexity"
	p.Y.Label.Text = "informativeness"
	p.Add(plotter.NewGrid())

	all, err := plotter.NewScatter(points(t.Records))
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	all.GlyphStyle.Color = allColor
	all.GlyphStyle.Shape = draw.CircleGlyph{}
	all.GlyphStyle.Radius = vg.Points(2)
	p.Add(all)
	p.Legend.Add("languages", all)

	frontier := t.FrontierRecords()
	if len(frontier) > 0 {
		line, front, err := plotter.NewLinePoints(frontierPath(frontier))
		if err != nil {
			return nil, fmt.Errorf("frontier: %w", err)
		}
		line.Color = frontierColor
		front.Color = frontierColor
		front.Shape = draw.CircleGlyph{}
		front.Radius = vg.Points(3)
		p.Add(line, front)
		p.Legend.Add("pareto frontier", line, front)
	}
	p.Legend.Top = false
	p.Legend.Left = false
	return p, nil
}

// WritePlot renders the plot to path. The image format follows the file
// extension (.svg, .png, .pdf, .eps, .jpg, .tif).
func WritePlot(path string, t *ir.Table) error {
	p, err := NewPlot(t)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

func points(records []ir.Record) plotter.XYs {
	xys := make(plotter.XYs, len(records))
	for i, r := range records {
		xys[i].X = float64(r.Complexity)
		xys[i].Y = r.InformativenessFloat()
	}
	return xys
}

// frontierPath orders frontier points by complexity so the line reads left
// to right.
func frontierPath(records []ir.Record) plotter.XYs {
	xys := points(records)
	slices.SortFunc(xys, func(a, b plotter.XY) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return xys
}
