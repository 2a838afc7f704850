package changewallpaperlib

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/awused/composite-wallpapers/composite"
	"github.com/disintegration/imaging"
)

// SplitWallpaper cuts each monitor's own region back out of a composite, for
// desktops that can't span one image across monitors. The pieces are written
// next to the composite as <name>-<index><ext>, in monitor order.
func SplitWallpaper(monitors []*Monitor, wallpaper AbsolutePath) ([]AbsolutePath, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}

	bounds, err := composite.CanvasBounds(Descriptors(monitors))
	if err != nil {
		return nil, err
	}

	img, err := LoadImage(wallpaper)
	if err != nil {
		return nil, err
	}

	if img.Bounds().Size() != bounds.Rect().Size() {
		return nil, fmt.Errorf("%w: [%s] is %v, monitors cover %v",
			composite.ErrMismatchedInputs, wallpaper,
			img.Bounds().Size(), bounds.Rect().Size())
	}

	ext := filepath.Ext(wallpaper)
	base := strings.TrimSuffix(wallpaper, ext)

	out := make([]AbsolutePath, len(monitors))
	for i, m := range monitors {
		d := m.Descriptor()
		offset := bounds.Offset(d).Add(img.Bounds().Min)
		piece := imaging.Crop(img, image.Rectangle{Min: offset, Max: offset.Add(d.Size())})

		out[i] = fmt.Sprintf("%s-%d%s", base, i, ext)
		if err = composite.WriteFile(out[i], piece, c.JPEGQuality); err != nil {
			return nil, err
		}
	}

	return out, nil
}
