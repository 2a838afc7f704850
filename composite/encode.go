package composite

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

type Format int

const (
	JPEG Format = iota
	PNG
	// BMP takes a lot of space but costs almost no CPU time
	BMP
)

const DefaultJPEGQuality = 90

func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	}
	return JPEG, fmt.Errorf("Unsupported output format for [%s]", name)
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	}
	return "jpeg"
}

type EncodeOptions struct {
	Format Format
	// JPEG only, 1-100. Zero means DefaultJPEGQuality.
	Quality int
}

func Encode(w io.Writer, img image.Image, opts EncodeOptions) error {
	switch opts.Format {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case BMP:
		return bmp.Encode(w, img)
	}

	q := opts.Quality
	if q <= 0 || q > 100 {
		q = DefaultJPEGQuality
	}
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(q))
}

// WriteFile encodes img to path, choosing the format from the extension.
// The file is written next to path first and renamed over it, so a wallpaper
// setter never sees a partial file.
func WriteFile(path string, img image.Image, quality int) error {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	wip := path + "-wip"
	f, err := os.Create(wip)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	err = Encode(w, img, EncodeOptions{Format: format, Quality: quality})
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(wip)
		return fmt.Errorf("Error writing [%s]: %w", path, err)
	}

	// Renaming should be atomic enough for our purposes
	return os.Rename(wip, path)
}
