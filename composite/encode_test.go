package composite

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	monitors := []Monitor{NewMonitor(0, 0, 64, 36), NewMonitor(64, -10, 36, 64)}
	images := []image.Image{solid(100, 50, red), solid(50, 100, blue)}

	canvas, _, err := Compose(images, monitors, Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []Format{JPEG, PNG, BMP} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, canvas, EncodeOptions{Format: f}); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			decoded, format, err := image.Decode(&buf)
			if err != nil {
				t.Fatalf("image.Decode() error = %v", err)
			}
			if format != f.String() {
				t.Errorf("decoded format = %s, want %s", format, f)
			}
			if decoded.Bounds().Size() != image.Pt(100, 64) {
				t.Errorf("decoded size = %v, want 100x64", decoded.Bounds().Size())
			}
		})
	}
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "composite_wallpaper.jpg", want: JPEG},
		{name: "/tmp/out.JPEG", want: JPEG},
		{name: "out.png", want: PNG},
		{name: "out.bmp", want: BMP},
		{name: "out.gif", wantErr: true},
		{name: "out", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FormatFromFilename(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromFilename(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("FormatFromFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "composite_wallpaper.jpg")

	// Written twice, the second run overwrites the first
	for _, w := range []int{40, 30} {
		if err := WriteFile(path, solid(w, 20, green), 95); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if format != "jpeg" || cfg.Width != 30 || cfg.Height != 20 {
		t.Errorf("got %s %dx%d, want jpeg 30x20", format, cfg.Width, cfg.Height)
	}

	if _, err := os.Stat(path + "-wip"); !os.IsNotExist(err) {
		t.Errorf("work in progress file left behind: %v", err)
	}
}

func TestWriteFileUnsupported(t *testing.T) {
	if err := WriteFile(filepath.Join(t.TempDir(), "x.gif"), solid(1, 1, red), 0); err == nil {
		t.Error("WriteFile(.gif) succeeded")
	}
}
