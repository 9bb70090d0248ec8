package visual

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/surround.view/internal/stitch"
)

// AssetsHost is where rendered pages load the echarts javascript from.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// stripSamples is the number of points drawn across the full output width.
const stripSamples = 360

// RenderLayoutHTML writes an HTML page with a scatter strip of the copy
// areas and overlap bands and a bar chart of output columns per camera.
func RenderLayoutHTML(plan *stitch.Plan, w io.Writer) error {
	if plan == nil {
		return fmt.Errorf("nil plan")
	}
	if plan.OutputWidth <= 0 {
		return fmt.Errorf("plan has no output width")
	}

	page := components.NewPage()
	page.SetAssetsHost(AssetsHost)
	page.AddCharts(layoutScatter(plan), coverageBar(plan))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}

func layoutScatter(plan *stitch.Plan) *charts.Scatter {
	step := plan.OutputWidth / stripSamples
	if step < 1 {
		step = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "480px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Copy areas", Subtitle: fmt.Sprintf("cameras=%d output=%dx%d areas=%d", plan.CameraNum, plan.OutputWidth, plan.OutputHeight, len(plan.CopyAreas))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: plan.OutputWidth, Name: "Output column (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: overlapRow - 1, Max: plan.CameraNum, Name: "Camera", NameLocation: "middle", NameGap: 30}),
	)

	for i := 0; i < plan.CameraNum; i++ {
		var pts []opts.ScatterData
		for _, area := range plan.CopyAreas {
			if area.InIdx != i {
				continue
			}
			pts = append(pts, stripPoints(area.OutArea, plan.OutputWidth, step, i)...)
		}
		scatter.AddSeries(fmt.Sprintf("cam %d", i), pts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	}

	var overlaps []opts.ScatterData
	for _, ov := range plan.Overlaps {
		overlaps = append(overlaps, stripPoints(ov.OutArea, plan.OutputWidth, step, overlapRow)...)
	}
	scatter.AddSeries("overlap", overlaps,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
	)
	return scatter
}

// stripPoints samples r every step columns at height y, wrapping columns
// past the output width back to the start.
func stripPoints(r stitch.Rect, width, step int, y interface{}) []opts.ScatterData {
	pts := make([]opts.ScatterData, 0, r.Width/step+1)
	for x := r.PosX; x < r.Right(); x += step {
		pts = append(pts, opts.ScatterData{Value: []interface{}{x % width, y}})
	}
	return pts
}

func coverageBar(plan *stitch.Plan) *charts.Bar {
	cols := make([]int, plan.CameraNum)
	for _, area := range plan.CopyAreas {
		if area.InIdx >= 0 && area.InIdx < len(cols) {
			cols[area.InIdx] += area.OutArea.Width
		}
	}

	x := make([]string, plan.CameraNum)
	y := make([]opts.BarData, plan.CameraNum)
	for i, c := range cols {
		x[i] = fmt.Sprintf("cam %d", i)
		y[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "360px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Copied columns per camera"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("columns", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
