package stitch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/surround.view/internal/monitoring"
)

func init() {
	monitoring.SetLogger(nil)
}

// ringCamera returns a camera centered at center degrees.
func ringCamera(center, angleRange float64, width, height int) CameraInfo {
	return CameraInfo{SliceView: RoundViewSlice{
		HoriAngleStart: center - angleRange/2,
		HoriAngleRange: angleRange,
		Width:          width,
		Height:         height,
	}}
}

// newFourCameraStitcher is four 100 degree, 1200 px cameras centered at
// 0/90/180/270 degrees on a 3600 px output with 16 px alignment.
func newFourCameraStitcher(t *testing.T) *Stitcher {
	t.Helper()
	s, err := New(16, 2)
	require.NoError(t, err)
	require.NoError(t, s.SetOutputSize(3600, 1200))
	require.NoError(t, s.SetCameraNum(4))
	for i := 0; i < 4; i++ {
		require.NoError(t, s.SetCameraInfo(i, ringCamera(float64(i)*90, 100, 1200, 1200)))
	}
	return s
}

// newEvenRing builds n evenly spaced cameras whose fields of view are 20%
// wider than their share of the ring.
func newEvenRing(t *testing.T, n int, startAngle float64, crop CropInfo) *Stitcher {
	t.Helper()
	s, err := New(16, 2)
	require.NoError(t, err)
	require.NoError(t, s.SetOutputSize(3600, 1200))
	require.NoError(t, s.SetCameraNum(n))
	s.SetOutStartAngle(startAngle)

	share := 360.0 / float64(n)
	angleRange := share * 1.2
	width := int(angleRange * 12)
	for i := 0; i < n; i++ {
		require.NoError(t, s.SetCameraInfo(i, ringCamera(float64(i)*share, angleRange, width, 1200)))
	}
	if crop != (CropInfo{}) {
		for i := 0; i < n; i++ {
			require.NoError(t, s.SetCropInfo(i, crop))
		}
	}
	return s
}
