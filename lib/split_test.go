package changewallpaperlib

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/awused/composite-wallpapers/composite"
	"github.com/disintegration/imaging"
)

func TestSplitWallpaper(t *testing.T) {
	c := testConfig(t)

	monitors, err := GetMonitors()
	if err != nil {
		t.Fatal(err)
	}

	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	images := []image.Image{
		imaging.New(160, 90, red),
		imaging.New(90, 160, blue),
	}

	out, err := CombineImages(images, nil, monitors)
	if err != nil {
		t.Fatal(err)
	}

	pieces, err := SplitWallpaper(monitors, out)
	if err != nil {
		t.Fatalf("SplitWallpaper() error = %v", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}

	wantColors := []color.NRGBA{red, blue}
	for i, p := range pieces {
		want := filepath.Join(c.OutputDir, fmt.Sprintf("composite_wallpaper-%d.jpg", i))
		if p != want {
			t.Errorf("pieces[%d] = %s, want %s", i, p, want)
		}

		img, err := LoadImage(p)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := img.Bounds().Size(), monitors[i].Descriptor().Size(); got != want {
			t.Errorf("pieces[%d] size = %v, want %v", i, got, want)
		}

		b := img.Bounds()
		got := color.NRGBAModel.Convert(img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)).(color.NRGBA)
		w := wantColors[i]
		if diff(got.R, w.R) > 16 || diff(got.G, w.G) > 16 || diff(got.B, w.B) > 16 {
			t.Errorf("pieces[%d] centre = %v, want about %v", i, got, w)
		}
	}
}

func TestSplitWallpaperWrongSize(t *testing.T) {
	c := testConfig(t)

	monitors, err := GetMonitors()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(c.OutputDir, "small.png")
	writePNG(t, path, 10, 10)

	if _, err := SplitWallpaper(monitors, path); !errors.Is(err, composite.ErrMismatchedInputs) {
		t.Errorf("SplitWallpaper() error = %v, want ErrMismatchedInputs", err)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
