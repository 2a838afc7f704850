package changewallpaperlib

import (
	"image"

	"github.com/awused/composite-wallpapers/composite"
)

// CombineImages fits images[i] onto monitors[i] and writes the composite to
// the configured output file, overwriting the previous one. props may be nil.
func CombineImages(
	images []image.Image, props []composite.Props, monitors []*Monitor) (
	AbsolutePath, error) {

	c, err := GetConfig()
	if err != nil {
		return "", err
	}

	canvas, placements, err := composite.Compose(
		images, Descriptors(monitors), c.compositeOptions(props))
	if err != nil {
		return "", err
	}

	for _, p := range placements {
		logger.Debug().
			Int("monitor", p.Index).
			Stringer("geometry", p.Monitor).
			Stringer("crop", p.Crop).
			Stringer("offset", p.Offset).
			Msg("Placed image")
	}

	out, err := c.OutputPath()
	if err != nil {
		return "", err
	}

	if err = composite.WriteFile(out, canvas, c.JPEGQuality); err != nil {
		return "", err
	}

	b := canvas.Bounds()
	logger.Info().
		Str("file", out).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Str("fit", c.fitMode.String()).
		Msg("Wrote composite wallpaper")
	return out, nil
}
