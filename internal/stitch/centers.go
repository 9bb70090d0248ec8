package stitch

import "github.com/banshee-data/surround.view/internal/monitoring"

// MarkCenters places the ideal angular center of every camera in the output
// frame and finds the matching source column. Cameras are assumed evenly
// spread around the ring, camera i centered at i*360/N degrees.
func (s *Stitcher) MarkCenters() error {
	const stage = "mark centers"
	if s.centersMarked {
		return nil
	}
	if s.cameraNum <= 0 {
		return orderErr(stage, "camera info must be set first")
	}
	if s.outputWidth <= 0 {
		return orderErr(stage, "output size must be set first")
	}

	margin := 2 * s.alignX
	width := float64(s.outputWidth)
	var marks [MaxCameras]CenterMark

	for i := 0; i < s.cameraNum; i++ {
		slice := s.cameraInfo[i].SliceView
		crop := s.cropInfo[i]
		if slice.Width <= 0 || slice.HoriAngleRange <= 0 {
			return orderErr(stage, "camera %d info not set", i)
		}

		centerAngle := float64(i) * 360.0 / float64(s.cameraNum)
		outPos := int(NormalizeAngle(centerAngle-s.outStartAngle) / 360.0 * width)
		if outPos < 0 || outPos >= s.outputWidth {
			return geometryErr(stage, "camera %d output column %d outside [0, %d)", i, outPos, s.outputWidth)
		}
		// Column 0 and column width are the same seam.
		if s.outputWidth-outPos < margin || outPos < margin {
			outPos = 0
		}

		// Re-derive the angle from the aligned output column so source and
		// output columns agree on the same grid point.
		alignedAngle := float64(alignAround(outPos, s.alignX)) / width * 360.0
		centerAngle = NormalizeAngle(alignedAngle + s.outStartAngle)

		inSlice := NormalizeAngle(centerAngle - slice.HoriAngleStart)
		if inSlice >= slice.HoriAngleRange {
			return geometryErr(stage, "camera %d center angle %.2f outside slice (start %.2f, range %.2f)",
				i, centerAngle, slice.HoriAngleStart, slice.HoriAngleRange)
		}

		slicePos := int(inSlice / slice.HoriAngleRange * float64(slice.Width))
		slicePos = alignAround(slicePos, s.alignX)
		if slicePos <= crop.Left || slicePos >= slice.Width-crop.Right {
			return geometryErr(stage, "camera %d slice center %d outside cropped range (%d, %d)",
				i, slicePos, crop.Left, slice.Width-crop.Right)
		}

		marks[i] = CenterMark{SliceCenterX: slicePos, OutCenterX: outPos}
	}

	s.centerMarks = marks
	s.centersMarked = true
	monitoring.Stagef("centers", "marked %d centers on %d-wide output", s.cameraNum, s.outputWidth)
	return nil
}
