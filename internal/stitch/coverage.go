package stitch

// VerifyTiling checks that copy-area destinations and overlap bands together
// cover every output column in [0, width) exactly once. Copy areas must not
// cross the seam; overlap bands may, and wrap around to column 0.
func VerifyTiling(width int, areas []CopyArea, overlaps []OverlapInfo) error {
	const stage = "verify tiling"
	if width <= 0 {
		return paramErr(stage, "width %d must be positive", width)
	}

	counts := make([]int, width)
	for i, a := range areas {
		if a.OutArea.Width <= 0 || a.OutArea.PosX < 0 || a.OutArea.Right() > width {
			return geometryErr(stage, "copy area %d [%d, %d) outside [0, %d)", i, a.OutArea.PosX, a.OutArea.Right(), width)
		}
		for x := a.OutArea.PosX; x < a.OutArea.Right(); x++ {
			counts[x]++
		}
	}
	for i, o := range overlaps {
		if o.OutArea.Width <= 0 || o.OutArea.Width > width {
			return geometryErr(stage, "overlap %d width %d outside (0, %d]", i, o.OutArea.Width, width)
		}
		start := o.OutArea.PosX % width
		if start < 0 {
			start += width
		}
		for k := 0; k < o.OutArea.Width; k++ {
			counts[(start+k)%width]++
		}
	}

	for x, c := range counts {
		switch {
		case c == 0:
			return geometryErr(stage, "column %d is not covered", x)
		case c > 1:
			return geometryErr(stage, "column %d is covered %d times", x, c)
		}
	}
	return nil
}
