package stitch

import (
	"fmt"

	"github.com/banshee-data/surround.view/internal/monitoring"
)

// EstimateOverlap computes the overlap band between every camera and its
// right neighbour on the ring.
func (s *Stitcher) EstimateOverlap() error {
	const stage = "estimate overlap"
	if s.overlapSet {
		return nil
	}
	if !s.cropSet || !s.centersMarked {
		return orderErr(stage, "crop info and center marks must be set first")
	}

	var infos [MaxCameras]OverlapInfo
	span := 0
	for idx := 0; idx < s.cameraNum; idx++ {
		next := (idx + 1) % s.cameraNum
		left := s.cameraInfo[idx].SliceView
		right := s.cameraInfo[next].SliceView
		leftCenter := s.centerMarks[idx]
		rightCenter := s.centerMarks[next]
		leftCrop := s.cropInfo[idx]
		rightCrop := s.cropInfo[next]

		// The right neighbour's field of view has to start inside ours.
		if NormalizeAngle(right.HoriAngleStart-left.HoriAngleStart) >= left.HoriAngleRange {
			return fmt.Errorf("%w: %s: slice %d (start %.2f) does not reach slice %d (start %.2f)",
				ErrNoOverlap, stage, idx, left.HoriAngleStart, next, right.HoriAngleStart)
		}

		outRightCenter := effectiveOutCenter(rightCenter.OutCenterX, leftCenter.OutCenterX, s.outputWidth)

		validLeft := Rect{
			PosX:   leftCenter.SliceCenterX,
			PosY:   leftCrop.Top,
			Width:  left.Width - leftCrop.Right - leftCenter.SliceCenterX,
			Height: left.Height - leftCrop.Top - leftCrop.Bottom,
		}
		validRight := Rect{
			PosY:   rightCrop.Top,
			Width:  rightCenter.SliceCenterX - rightCrop.Left,
			Height: right.Height - rightCrop.Top - rightCrop.Bottom,
		}
		validRight.PosX = rightCenter.SliceCenterX - validRight.Width
		if validLeft.Height <= 0 || validRight.Height <= 0 {
			return geometryErr(stage, "slices %d and %d have cropped heights %d and %d",
				idx, next, validLeft.Height, validRight.Height)
		}

		mergeWidth := outRightCenter - leftCenter.OutCenterX
		span += mergeWidth

		overlapWidth := validLeft.Width + validRight.Width - mergeWidth
		if overlapWidth <= 0 {
			return fmt.Errorf("%w: %s: slices %d and %d cover %d px of a %d px span",
				ErrNoOverlap, stage, idx, next, validLeft.Width+validRight.Width, mergeWidth)
		}
		if overlapWidth > validLeft.Width || overlapWidth > validRight.Width {
			return geometryErr(stage, "overlap %d px between slices %d and %d passes a center (valid %d/%d px)",
				overlapWidth, idx, next, validLeft.Width, validRight.Width)
		}

		infos[idx] = OverlapInfo{
			Left: Rect{
				PosX:   validLeft.PosX + validLeft.Width - overlapWidth,
				PosY:   validLeft.PosY,
				Width:  overlapWidth,
				Height: validLeft.Height,
			},
			Right: Rect{
				PosX:   validRight.PosX,
				PosY:   validRight.PosY,
				Width:  overlapWidth,
				Height: validRight.Height,
			},
			// Vertical placement in the output is reconciled by the blender.
			// The band may run past the seam and wrap to column 0.
			OutArea: Rect{
				PosX:   (leftCenter.OutCenterX + validLeft.Width - overlapWidth) % s.outputWidth,
				PosY:   validLeft.PosY,
				Width:  overlapWidth,
				Height: validLeft.Height,
			},
		}
	}
	debugAssert(span == s.outputWidth, "centers span %d px of a %d px ring", span, s.outputWidth)

	s.overlapInfo = infos
	s.overlapSet = true
	monitoring.Stagef("overlap", "estimated %d overlap bands", s.cameraNum)
	return nil
}
