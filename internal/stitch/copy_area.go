package stitch

import "github.com/banshee-data/surround.view/internal/monitoring"

// UpdateCopyAreas builds the verbatim copy rectangles between overlap bands,
// splits those crossing the output seam and merges contiguous neighbours.
func (s *Stitcher) UpdateCopyAreas() error {
	const stage = "update copy areas"
	if s.copyAreasSet {
		return nil
	}
	if s.cameraNum < 2 || !s.cropSet || !s.overlapSet {
		return orderErr(stage, "camera info, crop info and overlap info must be set first")
	}

	n := s.cameraNum
	tmp := make([]CopyArea, 0, 2*n+2)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		markLeft := s.centerMarks[i]
		markRight := s.centerMarks[next]
		overlap := s.overlapInfo[i]

		// From camera i's center to the start of its overlap with next.
		left := CopyArea{InIdx: i}
		left.InArea = s.validColumns(i, markLeft.SliceCenterX, overlap.Left.PosX)
		left.OutArea = Rect{
			PosX:   markLeft.OutCenterX,
			Width:  left.InArea.Width,
			Height: left.InArea.Height,
		}
		if err := s.checkCandidate(stage, left); err != nil {
			return err
		}
		tmp = appendSplit(tmp, left, s.outputWidth)

		// From the end of the overlap to camera next's center.
		right := CopyArea{InIdx: next}
		right.InArea = s.validColumns(next, overlap.Right.Right(), markRight.SliceCenterX)
		outX := effectiveOutCenter(markRight.OutCenterX, markLeft.OutCenterX, s.outputWidth) - right.InArea.Width
		if outX >= s.outputWidth {
			outX -= s.outputWidth
		}
		right.OutArea = Rect{
			PosX:   outX,
			Width:  right.InArea.Width,
			Height: right.InArea.Height,
		}
		if err := s.checkCandidate(stage, right); err != nil {
			return err
		}
		tmp = appendSplit(tmp, right, s.outputWidth)
	}
	debugAssert(len(tmp) >= 2*n, "expected at least %d candidates, got %d", 2*n, len(tmp))

	areas := mergeCopyAreas(tmp)
	debugAssert(len(areas) >= n, "merged %d areas for %d cameras", len(areas), n)

	s.copyAreas = areas
	s.copyAreasSet = true
	monitoring.Stagef("copy areas", "%d candidates merged into %d copy areas", len(tmp), len(areas))
	return nil
}

// validColumns is the rectangle of camera idx between columns from and to,
// spanning the cropped height.
func (s *Stitcher) validColumns(idx, from, to int) Rect {
	crop := s.cropInfo[idx]
	return Rect{
		PosX:   from,
		PosY:   crop.Top,
		Width:  to - from,
		Height: s.cameraInfo[idx].SliceView.Height - crop.Top - crop.Bottom,
	}
}

func (s *Stitcher) checkCandidate(stage string, area CopyArea) error {
	if area.InArea.Width <= 0 || area.InArea.Height <= 0 {
		return geometryErr(stage, "camera %d copy area %dx%d is empty",
			area.InIdx, area.InArea.Width, area.InArea.Height)
	}
	out := area.OutArea
	if out.PosX < 0 || out.PosX >= s.outputWidth || out.Width >= s.outputWidth {
		return geometryErr(stage, "camera %d copy area [%d, %d) does not fit a %d-wide output",
			area.InIdx, out.PosX, out.Right(), s.outputWidth)
	}
	return nil
}

// appendSplit appends area, split in two when it crosses the seam.
func appendSplit(areas []CopyArea, area CopyArea, roundWidth int) []CopyArea {
	if a, b, ok := splitAreaByOut(area, roundWidth); ok {
		return append(areas, a, b)
	}
	return append(areas, area)
}

// splitAreaByOut cuts an area whose output crosses column roundWidth into a
// part ending at roundWidth and a part starting at column 0.
func splitAreaByOut(area CopyArea, roundWidth int) (splitA, splitB CopyArea, ok bool) {
	debugAssert(area.OutArea.PosX >= 0 && area.OutArea.PosX < roundWidth,
		"out pos %d outside [0, %d)", area.OutArea.PosX, roundWidth)
	debugAssert(area.OutArea.Width > 0 && area.OutArea.Width < roundWidth,
		"out width %d outside (0, %d)", area.OutArea.Width, roundWidth)

	if area.OutArea.Right() <= roundWidth {
		debugAssert(area.OutArea.Width == area.InArea.Width, "in/out widths differ")
		return area, CopyArea{}, false
	}

	splitA = area
	splitA.OutArea.Width = roundWidth - area.OutArea.PosX
	splitA.InArea.Width = splitA.OutArea.Width

	splitB = area
	splitB.InArea.PosX = area.InArea.PosX + splitA.InArea.Width
	splitB.InArea.Width = area.InArea.Width - splitA.InArea.Width
	splitB.OutArea.PosX = 0
	splitB.OutArea.Width = splitB.InArea.Width
	debugAssert(splitB.OutArea.Width == area.OutArea.Right()-roundWidth,
		"second split width %d", splitB.OutArea.Width)
	return splitA, splitB, true
}

// mergeNeighborArea joins two areas of the same camera that are contiguous
// in both source and output columns.
func mergeNeighborArea(current, next CopyArea) (CopyArea, bool) {
	if current.InIdx != next.InIdx ||
		current.InArea.Right() != next.InArea.PosX ||
		current.OutArea.Right() != next.OutArea.PosX {
		return CopyArea{}, false
	}
	merged := current
	merged.InArea.Width = current.InArea.Width + next.InArea.Width
	merged.OutArea.Width = current.OutArea.Width + next.OutArea.Width
	return merged, true
}

// mergeCopyAreas reduces candidates in ring order: first the last with the
// first, then one greedy left-to-right pass.
func mergeCopyAreas(tmp []CopyArea) []CopyArea {
	areas := make([]CopyArea, 0, len(tmp))
	start, end := 0, len(tmp)-1
	if len(tmp) > 2 {
		if merged, ok := mergeNeighborArea(tmp[end], tmp[0]); ok {
			areas = append(areas, merged)
			start++
			end--
		}
	}

	for i := start; i <= end; {
		if i == end {
			areas = append(areas, tmp[i])
			break
		}
		if merged, ok := mergeNeighborArea(tmp[i], tmp[i+1]); ok {
			areas = append(areas, merged)
			i += 2
		} else {
			areas = append(areas, tmp[i])
			i++
		}
	}
	return areas
}
