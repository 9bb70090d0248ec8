// Package stitch plans the layout of a surround-view panorama.
//
// Given N cameras on a ring, each covering a known horizontal field of view,
// a Stitcher works out where each camera's angular center lands in the
// output frame, the overlap band between each pair of neighbouring cameras,
// and the list of verbatim copy rectangles that, together with the blended
// overlap bands, tile the whole output frame.
//
// The stages must run in order:
//
//	s, _ := stitch.New(16, 2)
//	_ = s.SetOutputSize(3600, 1200)
//	_ = s.SetCameraNum(4)
//	_ = s.SetCameraInfo(0, info0) // ...
//	_ = s.EstimateCoarseCrops()
//	_ = s.MarkCenters()
//	_ = s.EstimateOverlap()
//	_ = s.UpdateCopyAreas()
//
// or in one call with Plan. No pixel data is touched here.
package stitch
