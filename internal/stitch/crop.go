package stitch

import "github.com/banshee-data/surround.view/internal/monitoring"

// EstimateCoarseCrops resolves crop margins. Explicit margins set through
// SetCropInfo win; otherwise every camera gets a zero crop.
func (s *Stitcher) EstimateCoarseCrops() error {
	if s.cropSet {
		return nil
	}
	for i := 0; i < s.cameraNum; i++ {
		s.cropInfo[i] = CropInfo{}
	}
	s.cropSet = true
	monitoring.Stagef("crop", "defaulted %d cameras to zero crop", s.cameraNum)
	return nil
}
