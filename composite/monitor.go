// Package composite builds a single virtual-desktop-sized wallpaper out of one
// image per monitor.
package composite

import (
	"fmt"
	"image"
)

// Monitor describes one display in the shared virtual screen coordinate space.
// Origins may be negative and monitors need not be contiguous.
type Monitor struct {
	Width  int
	Height int
	Left   int
	Top    int
	Right  int
	Bottom int
}

func NewMonitor(left, top, width, height int) Monitor {
	return Monitor{
		Width:  width,
		Height: height,
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

func MonitorFromRect(r image.Rectangle) Monitor {
	return NewMonitor(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func (m Monitor) Rect() image.Rectangle {
	return image.Rect(m.Left, m.Top, m.Right, m.Bottom)
}

func (m Monitor) Size() image.Point {
	return image.Pt(m.Width, m.Height)
}

func (m Monitor) Orientation() Orientation {
	return OrientationOf(m.Width, m.Height)
}

func (m Monitor) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidTopology, m.Width, m.Height)
	}
	if m.Right-m.Left != m.Width || m.Bottom-m.Top != m.Height {
		return fmt.Errorf(
			"%w: position (%d,%d)-(%d,%d) does not match resolution %dx%d",
			ErrInvalidTopology, m.Left, m.Top, m.Right, m.Bottom, m.Width, m.Height)
	}
	return nil
}

func (m Monitor) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", m.Width, m.Height, m.Left, m.Top)
}
