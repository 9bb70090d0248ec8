// Package report derives summary statistics from a stitch plan.
package report

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/surround.view/internal/stitch"
)

// CameraSummary describes how one camera contributes to the output.
type CameraSummary struct {
	Index           int     `json:"index"`
	Name            string  `json:"name,omitempty"`
	PixelsPerDegree float64 `json:"pixels_per_degree"`
	CopyColumns     int     `json:"copy_columns"`
	CopyAreas       int     `json:"copy_areas"`
}

// Summary aggregates a plan. CoverageRatio is the share of output columns
// filled by copy areas and overlap bands together; a plan that tiles the
// output exactly has a ratio of 1.
type Summary struct {
	CameraNum             int             `json:"camera_num"`
	OutputWidth           int             `json:"output_width"`
	Cameras               []CameraSummary `json:"cameras"`
	MeanPixelsPerDegree   float64         `json:"mean_pixels_per_degree"`
	StdDevPixelsPerDegree float64         `json:"stddev_pixels_per_degree"`
	TotalCopyWidth        int             `json:"total_copy_width"`
	TotalOverlapWidth     int             `json:"total_overlap_width"`
	MinOverlapWidth       int             `json:"min_overlap_width"`
	MaxOverlapWidth       int             `json:"max_overlap_width"`
	CoverageRatio         float64         `json:"coverage_ratio"`
}

// Summarize computes a Summary of plan. cameras must hold the calibration
// of every camera in the plan, indexed like the plan.
func Summarize(plan *stitch.Plan, cameras []stitch.CameraInfo) (*Summary, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil plan")
	}
	if len(cameras) < plan.CameraNum {
		return nil, fmt.Errorf("plan has %d cameras, got calibration for %d", plan.CameraNum, len(cameras))
	}

	sum := &Summary{
		CameraNum:   plan.CameraNum,
		OutputWidth: plan.OutputWidth,
		Cameras:     make([]CameraSummary, plan.CameraNum),
	}

	ppd := make([]float64, plan.CameraNum)
	for i := range sum.Cameras {
		v := cameras[i].SliceView
		cs := &sum.Cameras[i]
		cs.Index = i
		cs.Name = cameras[i].Name
		if v.HoriAngleRange > 0 {
			cs.PixelsPerDegree = float64(v.Width) / v.HoriAngleRange
		}
		ppd[i] = cs.PixelsPerDegree
	}
	if len(ppd) > 0 {
		sum.MeanPixelsPerDegree = stat.Mean(ppd, nil)
	}
	if len(ppd) > 1 {
		sum.StdDevPixelsPerDegree = stat.StdDev(ppd, nil)
	}

	copyWidths := make([]float64, 0, len(plan.CopyAreas))
	for _, area := range plan.CopyAreas {
		copyWidths = append(copyWidths, float64(area.OutArea.Width))
		if area.InIdx >= 0 && area.InIdx < len(sum.Cameras) {
			sum.Cameras[area.InIdx].CopyColumns += area.OutArea.Width
			sum.Cameras[area.InIdx].CopyAreas++
		}
	}
	sum.TotalCopyWidth = int(floats.Sum(copyWidths))

	overlapWidths := make([]float64, 0, len(plan.Overlaps))
	for _, ov := range plan.Overlaps {
		overlapWidths = append(overlapWidths, float64(ov.OutArea.Width))
	}
	if len(overlapWidths) > 0 {
		sum.TotalOverlapWidth = int(floats.Sum(overlapWidths))
		sum.MinOverlapWidth = int(floats.Min(overlapWidths))
		sum.MaxOverlapWidth = int(floats.Max(overlapWidths))
	}

	if plan.OutputWidth > 0 {
		sum.CoverageRatio = float64(sum.TotalCopyWidth+sum.TotalOverlapWidth) / float64(plan.OutputWidth)
	}
	return sum, nil
}
