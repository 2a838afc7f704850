package composite

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

type Options struct {
	Mode   FitMode
	Filter string
	// Either empty or one per monitor
	Props []Props
	// Fills any part of the canvas no monitor covers. nil means black.
	Background color.Color
}

// Placement records where one image ended up.
type Placement struct {
	Index   int
	Monitor Monitor
	// Region of the source image that was scaled onto the monitor
	Crop   image.Rectangle
	Offset image.Point
}

// Compose fits images[i] to monitors[i] and pastes them, in order, onto a
// canvas covering every monitor. Where monitors overlap the later one wins.
func Compose(images []image.Image, monitors []Monitor, opts Options) (
	*image.NRGBA, []Placement, error) {

	if len(images) != len(monitors) {
		return nil, nil, fmt.Errorf(
			"%w: %d images for %d monitors",
			ErrMismatchedInputs, len(images), len(monitors))
	}
	if len(opts.Props) != 0 && len(opts.Props) != len(monitors) {
		return nil, nil, fmt.Errorf(
			"%w: %d image properties for %d monitors",
			ErrMismatchedInputs, len(opts.Props), len(monitors))
	}

	bounds, err := CanvasBounds(monitors)
	if err != nil {
		return nil, nil, err
	}

	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	canvas := imaging.New(bounds.Width, bounds.Height, bg)

	placements := make([]Placement, len(monitors))

	for i, m := range monitors {
		fo := FitOptions{Mode: opts.Mode, Filter: opts.Filter}
		if len(opts.Props) != 0 {
			fo.Props = opts.Props[i]
		}

		fitted, crop, err := fit(images[i], m.Size(), fo)
		if err != nil {
			return nil, nil, fmt.Errorf("monitor %d (%s): %w", i, m, err)
		}

		offset := bounds.Offset(m)
		// Over rather than Src so transparency is flattened onto the background
		draw.Draw(
			canvas,
			image.Rectangle{Min: offset, Max: offset.Add(m.Size())},
			fitted,
			image.Point{},
			draw.Over)

		placements[i] = Placement{Index: i, Monitor: m, Crop: crop, Offset: offset}
	}

	return canvas, placements, nil
}
