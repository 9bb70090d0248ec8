package stitch

import "math"

// Rect is an integer pixel rectangle.
type Rect struct {
	PosX   int `json:"pos_x"`
	PosY   int `json:"pos_y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.PosX + r.Width }

// NormalizeAngle reduces an angle in degrees into [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360.0)
	if a < 0 {
		a += 360.0
	}
	// math.Mod of a tiny negative value plus 360 rounds back up to 360.
	if a >= 360.0 {
		a = 0
	}
	return a
}

// alignAround rounds v to the nearest multiple of align.
func alignAround(v, align int) int {
	return (v + align/2) / align * align
}

// effectiveOutCenter unwraps a right neighbour's output center past the seam
// so that it always sits to the right of leftOutX. A center on column 0 maps
// onto column width.
func effectiveOutCenter(rightOutX, leftOutX, width int) int {
	if rightOutX <= leftOutX {
		return rightOutX + width
	}
	return rightOutX
}
