package composite

import (
	"errors"
	"image"
	"testing"
)

func TestCanvasBounds(t *testing.T) {
	tests := []struct {
		name     string
		monitors []Monitor
		want     Bounds
	}{
		{
			name:     "single monitor",
			monitors: []Monitor{NewMonitor(0, 0, 1920, 1080)},
			want:     Bounds{MinLeft: 0, MinTop: 0, Width: 1920, Height: 1080},
		},
		{
			name: "side by side",
			monitors: []Monitor{
				NewMonitor(0, 0, 1920, 1080),
				NewMonitor(1920, 0, 1920, 1080),
			},
			want: Bounds{MinLeft: 0, MinTop: 0, Width: 3840, Height: 1080},
		},
		{
			name: "negative origin",
			monitors: []Monitor{
				NewMonitor(-1920, 0, 1920, 1080),
				NewMonitor(0, 0, 1920, 1080),
			},
			want: Bounds{MinLeft: -1920, MinTop: 0, Width: 3840, Height: 1080},
		},
		{
			name: "portrait next to landscape, offset vertically",
			monitors: []Monitor{
				NewMonitor(0, 420, 1920, 1080),
				NewMonitor(1920, 0, 1080, 1920),
			},
			want: Bounds{MinLeft: 0, MinTop: 0, Width: 3000, Height: 1920},
		},
		{
			name: "gap between monitors",
			monitors: []Monitor{
				NewMonitor(0, 0, 100, 100),
				NewMonitor(500, -50, 100, 100),
			},
			want: Bounds{MinLeft: 0, MinTop: -50, Width: 600, Height: 150},
		},
		{
			name: "overlapping monitors",
			monitors: []Monitor{
				NewMonitor(0, 0, 1920, 1080),
				NewMonitor(0, 0, 1280, 720),
			},
			want: Bounds{MinLeft: 0, MinTop: 0, Width: 1920, Height: 1080},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanvasBounds(tt.monitors)
			if err != nil {
				t.Fatalf("CanvasBounds() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CanvasBounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCanvasBoundsEmpty(t *testing.T) {
	_, err := CanvasBounds(nil)
	if !errors.Is(err, ErrInvalidTopology) {
		t.Errorf("CanvasBounds(nil) error = %v, want ErrInvalidTopology", err)
	}
}

func TestCanvasBoundsInvalidMonitor(t *testing.T) {
	bad := Monitor{Width: 1920, Height: 1080, Left: 0, Top: 0, Right: 1000, Bottom: 1080}
	_, err := CanvasBounds([]Monitor{NewMonitor(0, 0, 10, 10), bad})
	if !errors.Is(err, ErrInvalidTopology) {
		t.Errorf("error = %v, want ErrInvalidTopology", err)
	}

	_, err = CanvasBounds([]Monitor{NewMonitor(0, 0, 0, 10)})
	if !errors.Is(err, ErrInvalidTopology) {
		t.Errorf("zero width error = %v, want ErrInvalidTopology", err)
	}
}

func TestBoundsOffset(t *testing.T) {
	monitors := []Monitor{
		NewMonitor(-1920, 0, 1920, 1080),
		NewMonitor(0, 0, 1920, 1080),
	}
	b, err := CanvasBounds(monitors)
	if err != nil {
		t.Fatal(err)
	}

	if got := b.Offset(monitors[0]); got != image.Pt(0, 0) {
		t.Errorf("Offset(first) = %v, want (0,0)", got)
	}
	if got := b.Offset(monitors[1]); got != image.Pt(1920, 0) {
		t.Errorf("Offset(second) = %v, want (1920,0)", got)
	}
}

func TestMonitorFromRect(t *testing.T) {
	m := MonitorFromRect(image.Rect(-1080, -200, 0, 1720))
	want := Monitor{Width: 1080, Height: 1920, Left: -1080, Top: -200, Right: 0, Bottom: 1720}
	if m != want {
		t.Errorf("MonitorFromRect() = %+v, want %+v", m, want)
	}
	if m.Orientation() != Portrait {
		t.Errorf("Orientation() = %v, want portrait", m.Orientation())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
