package visual

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/plot/plotutil"

	"github.com/banshee-data/surround.view/internal/stitch"
)

// overlapShade marks blended columns in ownership masks.
var overlapShade = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

// OwnershipMask paints the output frame of plan: copy areas in their
// camera's color, overlap bands grey and uncovered pixels transparent.
func OwnershipMask(plan *stitch.Plan) (*image.RGBA, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil plan")
	}
	if plan.OutputWidth <= 0 || plan.OutputHeight <= 0 {
		return nil, fmt.Errorf("plan has no output size")
	}

	frame := image.Rect(0, 0, plan.OutputWidth, plan.OutputHeight)
	img := image.NewRGBA(frame)
	for _, area := range plan.CopyAreas {
		fill(img, area.OutArea, plotutil.Color(area.InIdx))
	}
	for _, ov := range plan.Overlaps {
		fill(img, ov.OutArea, overlapShade)
	}
	return img, nil
}

// fill paints r, wrapping the part past the right edge to column 0.
func fill(img *image.RGBA, r stitch.Rect, c color.Color) {
	width := img.Bounds().Dx()
	src := image.NewUniform(c)
	rect := image.Rect(r.PosX, r.PosY, r.Right(), r.PosY+r.Height)
	draw.Draw(img, rect.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	if r.Right() > width {
		wrapped := image.Rect(0, r.PosY, r.Right()-width, r.PosY+r.Height)
		draw.Draw(img, wrapped.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// WriteOwnershipPNG encodes the ownership mask of plan as PNG, scaled down
// to at most maxWidth pixels wide. maxWidth <= 0 keeps full resolution.
func WriteOwnershipPNG(plan *stitch.Plan, w io.Writer, maxWidth int) error {
	img, err := OwnershipMask(plan)
	if err != nil {
		return err
	}

	var out image.Image = img
	if maxWidth > 0 && maxWidth < plan.OutputWidth {
		h := plan.OutputHeight * maxWidth / plan.OutputWidth
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		out = scaled
	}

	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("failed to encode ownership mask: %w", err)
	}
	return nil
}
