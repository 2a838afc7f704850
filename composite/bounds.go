package composite

import (
	"fmt"
	"image"
)

// Bounds is the axis-aligned bounding box of every monitor, the size of the
// composite image.
type Bounds struct {
	MinLeft int
	MinTop  int
	Width   int
	Height  int
}

// CanvasBounds does not care whether monitors overlap or leave gaps.
func CanvasBounds(monitors []Monitor) (Bounds, error) {
	if len(monitors) == 0 {
		return Bounds{}, fmt.Errorf("%w: no monitors", ErrInvalidTopology)
	}

	for i, m := range monitors {
		if err := m.Validate(); err != nil {
			return Bounds{}, fmt.Errorf("monitor %d: %w", i, err)
		}
	}

	left := monitors[0].Left
	top := monitors[0].Top
	right := monitors[0].Right
	bottom := monitors[0].Bottom

	for _, m := range monitors[1:] {
		if m.Left < left {
			left = m.Left
		}
		if m.Top < top {
			top = m.Top
		}
		if m.Right > right {
			right = m.Right
		}
		if m.Bottom > bottom {
			bottom = m.Bottom
		}
	}

	return Bounds{
		MinLeft: left,
		MinTop:  top,
		Width:   right - left,
		Height:  bottom - top,
	}, nil
}

// Offset is where the monitor's top left corner lands on the canvas.
func (b Bounds) Offset(m Monitor) image.Point {
	return image.Pt(m.Left-b.MinLeft, m.Top-b.MinTop)
}

func (b Bounds) Rect() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}
