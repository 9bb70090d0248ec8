package stitch

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a Stitcher wraps exactly one of
// ErrOrder, ErrParam or ErrGeometry.
var (
	// ErrOrder means a stage ran before its prerequisite stage.
	ErrOrder = errors.New("stitch: stage called out of order")
	// ErrParam means an index, count or size is out of bounds.
	ErrParam = errors.New("stitch: invalid parameter")
	// ErrGeometry means the calibration geometry is inconsistent.
	ErrGeometry = errors.New("stitch: inconsistent geometry")
	// ErrNoOverlap means two neighbouring cameras share no pixels.
	ErrNoOverlap = fmt.Errorf("%w: no overlap between neighbours", ErrGeometry)
)

func orderErr(stage, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrOrder, stage, fmt.Sprintf(format, args...))
}

func paramErr(stage, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrParam, stage, fmt.Sprintf(format, args...))
}

func geometryErr(stage, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrGeometry, stage, fmt.Sprintf(format, args...))
}
