package composite

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/colornames"
)

// Props adjusts how a single image is fitted to a monitor.
type Props struct {
	// Offsets of the crop window as percentages of the image.
	// Note that +vertical is up, not down.
	Vertical   float64
	Horizontal float64
	// Pixels of the original image to crop, negative values pad
	Top    int
	Bottom int
	Left   int
	Right  int
	// Colour name or #rrggbb, blank means black padding
	Background string
}

func (p Props) hasCropOrPad() bool {
	return p.Top != 0 || p.Bottom != 0 || p.Left != 0 || p.Right != 0
}

func (p Props) IsZero() bool {
	return !p.hasCropOrPad() && p.Vertical == 0 && p.Horizontal == 0
}

// cropOrPad must run before fitting so the fitter sees the adjusted size.
func (p Props) cropOrPad(img image.Image) (image.Image, error) {
	if !p.hasCropOrPad() {
		return img, nil
	}

	b := img.Bounds()
	// Not image.Rect, which would silently swap the corners when over-cropped
	r := image.Rectangle{
		Min: image.Pt(b.Min.X+p.Left, b.Min.Y+p.Top),
		Max: image.Pt(b.Max.X-p.Right, b.Max.Y-p.Bottom),
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf(
			"%w: cropping %d,%d,%d,%d leaves nothing of a %dx%d image",
			ErrInvalidImage, p.Top, p.Bottom, p.Left, p.Right, b.Dx(), b.Dy())
	}

	if p.Top >= 0 && p.Bottom >= 0 && p.Left >= 0 && p.Right >= 0 {
		return imaging.Crop(img, r), nil
	}

	bg, err := ParseColor(p.Background)
	if err != nil {
		return nil, err
	}

	padded := imaging.New(r.Dx(), r.Dy(), bg)
	draw.Draw(padded, padded.Bounds(), img, r.Min, draw.Over)
	return padded, nil
}

// ParseColor accepts SVG colour names and #rgb or #rrggbb. Blank means black.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.Black, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err == nil {
				return color.NRGBA{
					R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
			}
		}
	}

	return nil, fmt.Errorf("Unknown colour [%s]", s)
}
