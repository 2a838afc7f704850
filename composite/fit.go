package composite

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

type FitMode int

const (
	// FitCrop center-crops the longer axis to the monitor's aspect ratio before
	// resizing. Nothing is stretched.
	FitCrop FitMode = iota
	// FitStretch resizes the whole image to the monitor's resolution, ignoring
	// aspect ratio.
	FitStretch
)

func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(s) {
	case "", "crop", "fill":
		return FitCrop, nil
	case "stretch":
		return FitStretch, nil
	}
	return FitCrop, fmt.Errorf("Unknown fit mode [%s], expected crop or stretch", s)
}

func (f FitMode) String() string {
	if f == FitStretch {
		return "stretch"
	}
	return "crop"
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ParseFilter maps a filter name to a resampling filter, blank means Lanczos.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("Unknown resampling filter [%s]", name)
	}
	return f, nil
}

type FitOptions struct {
	Mode FitMode
	// Name of the resampling filter, see ParseFilter
	Filter string
	Props  Props
}

// CropRect returns the region of an image of size src with the aspect ratio of
// dst. The region is centered on the longer axis, then shifted by the
// percentage offsets and clamped to stay inside the image.
func CropRect(src, dst image.Point, horizontal, vertical float64) (image.Rectangle, error) {
	if src.X <= 0 || src.Y <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: size %dx%d", ErrInvalidImage, src.X, src.Y)
	}
	if dst.X <= 0 || dst.Y <= 0 {
		return image.Rectangle{}, fmt.Errorf(
			"%w: target resolution %dx%d", ErrInvalidTopology, dst.X, dst.Y)
	}

	aspect := float64(dst.X) / float64(dst.Y)

	// Cross multiply so equal aspect ratios compare exactly
	if src.X*dst.Y > dst.X*src.Y {
		w := clamp(int(math.Round(float64(src.Y)*aspect)), 1, src.X)
		x := (src.X - w) / 2
		x += int(horizontal * float64(src.X) / 100)
		x = clamp(x, 0, src.X-w)
		return image.Rect(x, 0, x+w, src.Y), nil
	}

	h := clamp(int(math.Round(float64(src.X)/aspect)), 1, src.Y)
	y := (src.Y - h) / 2
	y -= int(vertical * float64(src.Y) / 100)
	y = clamp(y, 0, src.Y-h)
	return image.Rect(0, y, src.X, y+h), nil
}

// Fit produces an image of exactly dst pixels from img.
func Fit(img image.Image, dst image.Point, opts FitOptions) (*image.NRGBA, error) {
	out, _, err := fit(img, dst, opts)
	return out, err
}

// fit also returns the region of the (possibly padded) source that was used.
func fit(img image.Image, dst image.Point, opts FitOptions) (
	*image.NRGBA, image.Rectangle, error) {

	if img == nil {
		return nil, image.Rectangle{}, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, image.Rectangle{}, fmt.Errorf(
			"%w: size %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}

	filter, err := ParseFilter(opts.Filter)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	img, err = opts.Props.cropOrPad(img)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	b = img.Bounds()

	if opts.Mode == FitStretch {
		if dst.X <= 0 || dst.Y <= 0 {
			return nil, image.Rectangle{}, fmt.Errorf(
				"%w: target resolution %dx%d", ErrInvalidTopology, dst.X, dst.Y)
		}
		return imaging.Resize(img, dst.X, dst.Y, filter), b, nil
	}

	r, err := CropRect(b.Size(), dst, opts.Props.Horizontal, opts.Props.Vertical)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	r = r.Add(b.Min)

	cropped := imaging.Crop(img, r)
	return imaging.Resize(cropped, dst.X, dst.Y, filter), r, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
