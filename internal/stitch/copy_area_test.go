package stitch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func copyArea(idx, inX, outX, w int) CopyArea {
	return CopyArea{
		InIdx:   idx,
		InArea:  Rect{PosX: inX, PosY: 10, Width: w, Height: 100},
		OutArea: Rect{PosX: outX, Width: w, Height: 100},
	}
}

func TestSplitAreaByOut(t *testing.T) {
	t.Run("crossing the seam", func(t *testing.T) {
		area := copyArea(3, 100, 3500, 200)
		a, b, ok := splitAreaByOut(area, 3600)
		assert.True(t, ok)

		if diff := cmp.Diff(copyArea(3, 100, 3500, 100), a); diff != "" {
			t.Errorf("first part (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(copyArea(3, 200, 0, 100), b); diff != "" {
			t.Errorf("second part (-want +got):\n%s", diff)
		}
		assert.Equal(t, area.OutArea.Width, a.OutArea.Width+b.OutArea.Width)
		assert.Equal(t, area.InArea.Width, a.InArea.Width+b.InArea.Width)
		assert.Equal(t, 0, b.OutArea.PosX)
		assert.Equal(t, a.InArea.Right(), b.InArea.PosX, "pieces stay contiguous in the source")
	})

	t.Run("ending exactly at the seam", func(t *testing.T) {
		area := copyArea(1, 0, 3400, 200)
		a, _, ok := splitAreaByOut(area, 3600)
		assert.False(t, ok)
		assert.Equal(t, area, a)
	})

	t.Run("inside the frame", func(t *testing.T) {
		area := copyArea(1, 0, 10, 200)
		_, _, ok := splitAreaByOut(area, 3600)
		assert.False(t, ok)
	})
}

func TestAppendSplit(t *testing.T) {
	got := appendSplit(nil, copyArea(0, 0, 3590, 20), 3600)
	want := []CopyArea{copyArea(0, 0, 3590, 10), copyArea(0, 10, 0, 10)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("appendSplit (-want +got):\n%s", diff)
	}
	assert.Len(t, appendSplit(got, copyArea(1, 0, 50, 20), 3600), 3)
}

func TestMergeNeighborArea(t *testing.T) {
	tests := []struct {
		name    string
		current CopyArea
		next    CopyArea
		merged  bool
	}{
		{"contiguous in both spaces", copyArea(1, 300, 2392, 308), copyArea(1, 608, 2700, 292), true},
		{"different cameras", copyArea(1, 300, 2392, 308), copyArea(2, 608, 2700, 292), false},
		{"gap in source", copyArea(1, 300, 2392, 308), copyArea(1, 612, 2700, 292), false},
		{"gap in output", copyArea(1, 300, 2392, 308), copyArea(1, 608, 2704, 292), false},
		{"across the seam", copyArea(2, 300, 3292, 308), copyArea(2, 608, 0, 308), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mergeNeighborArea(tt.current, tt.next)
			assert.Equal(t, tt.merged, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.current.InIdx, got.InIdx)
			assert.Equal(t, tt.current.InArea.PosX, got.InArea.PosX)
			assert.Equal(t, tt.current.OutArea.PosX, got.OutArea.PosX)
			assert.Equal(t, tt.current.OutArea.Width+tt.next.OutArea.Width, got.OutArea.Width)
			assert.Equal(t, tt.current.InArea.Width+tt.next.InArea.Width, got.InArea.Width)
			assert.Equal(t, tt.current.InArea.PosY, got.InArea.PosY)
		})
	}
}

func TestMergeCopyAreas(t *testing.T) {
	t.Run("wraparound pair merges first", func(t *testing.T) {
		tmp := []CopyArea{
			copyArea(0, 608, 1800, 292),
			copyArea(1, 300, 2392, 308),
			copyArea(1, 608, 2700, 292),
			copyArea(0, 316, 1508, 292),
		}
		want := []CopyArea{
			copyArea(0, 316, 1508, 584),
			copyArea(1, 300, 2392, 600),
		}
		if diff := cmp.Diff(want, mergeCopyAreas(tmp)); diff != "" {
			t.Errorf("mergeCopyAreas (-want +got):\n%s", diff)
		}
	})

	t.Run("greedy pass emits unmatched areas", func(t *testing.T) {
		tmp := []CopyArea{
			copyArea(0, 0, 0, 10),
			copyArea(1, 0, 20, 10),
			copyArea(1, 10, 30, 10),
			copyArea(2, 0, 50, 10),
		}
		got := mergeCopyAreas(tmp)
		want := []CopyArea{
			copyArea(0, 0, 0, 10),
			copyArea(1, 0, 20, 20),
			copyArea(2, 0, 50, 10),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mergeCopyAreas (-want +got):\n%s", diff)
		}
	})

	t.Run("merging keeps total width", func(t *testing.T) {
		tmp := []CopyArea{
			copyArea(0, 0, 0, 10),
			copyArea(0, 10, 10, 10),
			copyArea(0, 20, 20, 10),
		}
		total := 0
		for _, a := range mergeCopyAreas(tmp) {
			total += a.OutArea.Width
		}
		assert.Equal(t, 30, total)
	})

	t.Run("two candidates skip the wraparound merge", func(t *testing.T) {
		tmp := []CopyArea{copyArea(0, 10, 10, 10), copyArea(0, 0, 0, 10)}
		assert.Len(t, mergeCopyAreas(tmp), 2)
	})
}
