package changewallpaperlib

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 128, 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// writeJPEGWithOrientation writes a w by h JPEG carrying an EXIF orientation
// tag, the way phone cameras store rotated photos.
func writeJPEGWithOrientation(t *testing.T, path string, w, h int, orientation byte) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	app1 := []byte{
		0xFF, 0xE1, 0x00, 0x22,
		'E', 'x', 'i', 'f', 0x00, 0x00,
		// Big endian TIFF header, first IFD at offset 8
		'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		// Orientation, SHORT, count 1
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	out := append([]byte{}, data[:2]...)
	out = append(out, app1...)
	out = append(out, data[2:]...)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		t.Fatal(err)
	}
}

// testConfig initializes the package with a fresh originals and output
// directory, and a static two monitor layout.
func testConfig(t *testing.T) *Config {
	t.Helper()

	dir := t.TempDir()
	originals := filepath.Join(dir, "originals")
	if err := os.MkdirAll(originals, 0755); err != nil {
		t.Fatal(err)
	}

	c, err := InitWithConfig(&Config{
		LogLevel:           "warn",
		OriginalsDirectory: originals,
		OutputDir:          filepath.Join(dir, "out"),
		Monitors: []StaticMonitor{
			{Left: -64, Top: 0, Width: 64, Height: 36},
			{Left: 0, Top: 0, Width: 36, Height: 64},
		},
	})
	if err != nil {
		t.Fatalf("InitWithConfig() error = %v", err)
	}

	t.Cleanup(func() {
		conf = nil
		props = nil
	})
	return c
}
