package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/surround.view/internal/config"
	"github.com/banshee-data/surround.view/internal/monitoring"
	"github.com/banshee-data/surround.view/internal/stitch"
)

func init() {
	monitoring.SetLogger(nil)
}

func TestSummarize_DefaultRig(t *testing.T) {
	cfg := config.MustLoadDefaultConfig()
	s, err := cfg.NewStitcher()
	require.NoError(t, err)
	plan, err := s.Plan()
	require.NoError(t, err)

	sum, err := Summarize(plan, cfg.CameraInfos())
	require.NoError(t, err)

	assert.Equal(t, 4, sum.CameraNum)
	assert.InDelta(t, 12.0, sum.MeanPixelsPerDegree, 1e-9)
	assert.InDelta(t, 0.0, sum.StdDevPixelsPerDegree, 1e-9)
	assert.Equal(t, 2400, sum.TotalCopyWidth)
	assert.Equal(t, 1200, sum.TotalOverlapWidth)
	assert.Equal(t, 284, sum.MinOverlapWidth)
	assert.Equal(t, 316, sum.MaxOverlapWidth)
	assert.InDelta(t, 1.0, sum.CoverageRatio, 1e-9)

	require.Len(t, sum.Cameras, 4)
	assert.Equal(t, "front", sum.Cameras[0].Name)
	assert.Equal(t, 584, sum.Cameras[0].CopyColumns)
	assert.Equal(t, 616, sum.Cameras[2].CopyColumns)
	assert.Equal(t, 2, sum.Cameras[2].CopyAreas)
}

func TestSummarize_MixedResolution(t *testing.T) {
	plan := &stitch.Plan{CameraNum: 2, OutputWidth: 1000}
	cameras := []stitch.CameraInfo{
		{SliceView: stitch.RoundViewSlice{HoriAngleRange: 200, Width: 2000, Height: 100}},
		{SliceView: stitch.RoundViewSlice{HoriAngleRange: 200, Width: 1000, Height: 100}},
	}
	sum, err := Summarize(plan, cameras)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, sum.MeanPixelsPerDegree, 1e-9)
	// Sample standard deviation of {10, 5}.
	assert.InDelta(t, 3.5355339, sum.StdDevPixelsPerDegree, 1e-6)
	assert.Zero(t, sum.CoverageRatio)
}

func TestSummarize_Errors(t *testing.T) {
	_, err := Summarize(nil, nil)
	assert.Error(t, err)

	_, err = Summarize(&stitch.Plan{CameraNum: 3}, make([]stitch.CameraInfo, 2))
	assert.Error(t, err)
}
