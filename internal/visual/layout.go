// Package visual renders stitch plans as diagnostic charts: a static PNG
// layout for offline review and an interactive HTML page for the API.
package visual

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/surround.view/internal/stitch"
)

const (
	layoutWidth  = 14 * vg.Inch
	layoutHeight = 6 * vg.Inch

	// overlapRow is the y position of the overlap band row; camera i is
	// drawn at y = i.
	overlapRow = -1.0
)

// SaveLayoutPNG writes the layout chart of plan to path, creating parent
// directories as needed.
func SaveLayoutPNG(plan *stitch.Plan, path string) error {
	p, err := layoutPlot(plan)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := p.Save(layoutWidth, layoutHeight, path); err != nil {
		return fmt.Errorf("failed to save layout plot: %w", err)
	}
	return nil
}

// WriteLayoutPNG encodes the layout chart of plan as PNG to w.
func WriteLayoutPNG(plan *stitch.Plan, w io.Writer) error {
	p, err := layoutPlot(plan)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(layoutWidth, layoutHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write layout plot: %w", err)
	}
	return nil
}

// layoutPlot draws one row per camera holding its copy areas as thick
// segments over the output columns, a row of overlap bands below them and
// dashed seam markers at column 0 and the output width.
func layoutPlot(plan *stitch.Plan) (*plot.Plot, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil plan")
	}
	if plan.OutputWidth <= 0 {
		return nil, fmt.Errorf("plan has no output width")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Stitch layout: %d cameras, %dx%d", plan.CameraNum, plan.OutputWidth, plan.OutputHeight)
	p.X.Label.Text = "Output column (px)"
	p.Y.Label.Text = "Camera"
	p.X.Min = -float64(plan.OutputWidth) * 0.02
	p.X.Max = float64(plan.OutputWidth) * 1.02
	p.Y.Min = overlapRow - 0.5
	p.Y.Max = float64(plan.CameraNum) - 0.5

	inLegend := make(map[int]bool)
	for _, area := range plan.CopyAreas {
		seg, err := segment(area.OutArea, float64(area.InIdx))
		if err != nil {
			return nil, err
		}
		seg.Color = plotutil.Color(area.InIdx)
		seg.Width = vg.Points(10)
		p.Add(seg)
		if !inLegend[area.InIdx] {
			p.Legend.Add(fmt.Sprintf("cam %d", area.InIdx), seg)
			inLegend[area.InIdx] = true
		}
	}

	for i, ov := range plan.Overlaps {
		out := ov.OutArea
		// A band may straddle the seam; draw the part past the right edge
		// again from column 0.
		parts := []stitch.Rect{out}
		if out.Right() > plan.OutputWidth {
			head := out
			head.Width = plan.OutputWidth - out.PosX
			tail := stitch.Rect{PosX: 0, PosY: out.PosY, Width: out.Right() - plan.OutputWidth, Height: out.Height}
			parts = []stitch.Rect{head, tail}
		}
		for _, part := range parts {
			seg, err := segment(part, overlapRow)
			if err != nil {
				return nil, err
			}
			seg.Color = plotutil.Color(i)
			seg.Width = vg.Points(6)
			seg.Dashes = plotutil.Dashes(1)
			p.Add(seg)
		}
	}

	for _, x := range []float64{0, float64(plan.OutputWidth)} {
		seam, err := plotter.NewLine(plotter.XYs{{X: x, Y: p.Y.Min}, {X: x, Y: p.Y.Max}})
		if err != nil {
			return nil, fmt.Errorf("failed to create seam line: %w", err)
		}
		seam.Color = plotutil.Color(plan.CameraNum + 1)
		seam.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(seam)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	p.Add(plotter.NewGrid())
	return p, nil
}

func segment(r stitch.Rect, y float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{
		{X: float64(r.PosX), Y: y},
		{X: float64(r.Right()), Y: y},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create segment: %w", err)
	}
	line.LineStyle = draw.LineStyle{Width: vg.Points(1)}
	return line, nil
}
