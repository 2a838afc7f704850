package changewallpaperlib

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/awused/composite-wallpapers/composite"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	// Formats beyond what imaging registers
	_ "golang.org/x/image/webp"
)

func openRegularFile(path AbsolutePath) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("Input image [%s] is not a regular file", path)
	}
	return f, nil
}

// LoadImage decodes an image, honouring EXIF orientation
func LoadImage(path AbsolutePath) (image.Image, error) {
	f, err := openRegularFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding [%s]: %w", composite.ErrInvalidImage, path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: [%s] is empty", composite.ErrInvalidImage, path)
	}
	return img, nil
}

// ReadCandidate only reads the image header.
func ReadCandidate(path AbsolutePath) (composite.Candidate, error) {
	f, err := openRegularFile(path)
	if err != nil {
		return composite.Candidate{}, err
	}
	defer f.Close()

	// DecodeConfig is far cheaper than decoding the whole image
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return composite.Candidate{}, fmt.Errorf(
			"%w: reading [%s]: %w", composite.ErrInvalidImage, path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return composite.Candidate{}, fmt.Errorf(
			"%w: [%s] is %dx%d", composite.ErrInvalidImage, path, cfg.Width, cfg.Height)
	}

	c := composite.Candidate{Path: path, Width: cfg.Width, Height: cfg.Height}

	// LoadImage rotates JPEGs by their EXIF orientation, classify them the same way
	if format == "jpeg" {
		if _, err = f.Seek(0, io.SeekStart); err != nil {
			return composite.Candidate{}, err
		}
		if transposed(f) {
			c.Width, c.Height = c.Height, c.Width
		}
	}

	return c, nil
}

// transposed reports whether the EXIF orientation swaps width and height.
// Missing or unreadable EXIF data means the image is displayed as stored.
func transposed(r io.Reader) bool {
	x, err := exif.Decode(r)
	if err != nil {
		return false
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return false
	}

	o, err := tag.Int(0)
	if err != nil {
		return false
	}

	// 5 through 8 are rotated by 90 or 270 degrees
	return o >= 5 && o <= 8
}

// BuildPool reads the dimensions of every original. Candidate paths stay
// relative to OriginalsDirectory.
func BuildPool(originals []RelativePath) (composite.Pool, error) {
	candidates := make([]composite.Candidate, 0, len(originals))

	for _, rel := range originals {
		abs, err := GetFullInputPath(rel)
		if err != nil {
			return composite.Pool{}, err
		}

		cand, err := ReadCandidate(abs)
		if err != nil {
			return composite.Pool{}, err
		}
		cand.Path = rel
		candidates = append(candidates, cand)
	}

	pool := composite.NewPool(candidates)
	logger.Debug().
		Int("landscape", len(pool.Landscape)).
		Int("portrait", len(pool.Portrait)).
		Msg("Built image pool")
	return pool, nil
}
