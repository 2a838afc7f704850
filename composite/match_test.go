package composite

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func testPool() Pool {
	return NewPool([]Candidate{
		{Path: "wide-a.jpg", Width: 1920, Height: 1080},
		{Path: "tall.jpg", Width: 1080, Height: 1920},
		{Path: "wide-b.png", Width: 1000, Height: 1000},
	})
}

func TestNewPool(t *testing.T) {
	p := testPool()
	if len(p.Landscape) != 2 || len(p.Portrait) != 1 {
		t.Fatalf("buckets = %d landscape, %d portrait, want 2, 1",
			len(p.Landscape), len(p.Portrait))
	}
	if p.Portrait[0].Path != "tall.jpg" {
		t.Errorf("portrait bucket = %v", p.Portrait)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestMatch(t *testing.T) {
	monitors := []Monitor{
		NewMonitor(0, 0, 1920, 1080),
		NewMonitor(1920, 0, 1080, 1920),
		NewMonitor(3000, 0, 2560, 1440),
	}

	for seed := int64(0); seed < 20; seed++ {
		pool := testPool()
		picks, remaining, err := Match(pool, monitors, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: Match() error = %v", seed, err)
		}

		if len(picks) != 3 {
			t.Fatalf("seed %d: got %d picks, want 3", seed, len(picks))
		}
		if picks[1].Path != "tall.jpg" {
			t.Errorf("seed %d: portrait monitor got %s", seed, picks[1].Path)
		}
		if picks[0].Path == picks[2].Path {
			t.Errorf("seed %d: %s used twice", seed, picks[0].Path)
		}
		for i, p := range picks {
			if p.Orientation() != monitors[i].Orientation() {
				t.Errorf("seed %d: monitor %d got a %s image", seed, i, p.Orientation())
			}
		}

		if remaining.Len() != 0 {
			t.Errorf("seed %d: remaining = %d, want 0", seed, remaining.Len())
		}
		if pool.Len() != 3 || len(pool.Landscape) != 2 {
			t.Errorf("seed %d: input pool was modified: %+v", seed, pool)
		}
	}
}

func TestMatchBucketsDecrement(t *testing.T) {
	landscape := []Monitor{NewMonitor(0, 0, 1920, 1080)}
	rng := rand.New(rand.NewSource(1))

	pool := testPool()
	seen := map[string]bool{}
	for want := 1; want >= 0; want-- {
		picks, remaining, err := Match(pool, landscape, rng)
		if err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if seen[picks[0].Path] {
			t.Errorf("%s picked twice", picks[0].Path)
		}
		seen[picks[0].Path] = true

		if len(remaining.Landscape) != want {
			t.Errorf("landscape bucket = %d, want %d", len(remaining.Landscape), want)
		}
		if len(remaining.Portrait) != 1 {
			t.Errorf("portrait bucket = %d, want 1", len(remaining.Portrait))
		}
		pool = remaining
	}

	_, _, err := Match(pool, landscape, rng)
	if !errors.Is(err, ErrInsufficientImages) {
		t.Errorf("exhausted bucket error = %v, want ErrInsufficientImages", err)
	}
}

func TestMatchInsufficient(t *testing.T) {
	// landscape, portrait, landscape, landscape: the third landscape fails
	monitors := []Monitor{
		NewMonitor(0, 0, 1920, 1080),
		NewMonitor(1920, 0, 1080, 1920),
		NewMonitor(3000, 0, 1920, 1080),
		NewMonitor(4920, 0, 1920, 1080),
	}

	pool := testPool()
	picks, remaining, err := Match(pool, monitors, rand.New(rand.NewSource(7)))
	if !errors.Is(err, ErrInsufficientImages) {
		t.Fatalf("Match() error = %v, want ErrInsufficientImages", err)
	}
	if !strings.Contains(err.Error(), "monitor 3") {
		t.Errorf("error %q does not name monitor 3", err)
	}
	if picks != nil {
		t.Errorf("picks = %v, want nil", picks)
	}
	if remaining.Len() != pool.Len() {
		t.Errorf("remaining = %d, want the untouched pool", remaining.Len())
	}

	_, _, err = Match(NewPool(nil), monitors[1:2], nil)
	if !errors.Is(err, ErrInsufficientImages) {
		t.Errorf("empty pool error = %v, want ErrInsufficientImages", err)
	}
}

func TestMatchAny(t *testing.T) {
	monitors := []Monitor{
		NewMonitor(0, 0, 1080, 1920),
		NewMonitor(1080, 0, 1080, 1920),
		NewMonitor(2160, 0, 1080, 1920),
	}

	pool := testPool()
	picks, remaining, err := MatchAny(pool, monitors, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("MatchAny() error = %v", err)
	}

	seen := map[string]bool{}
	for _, p := range picks {
		if seen[p.Path] {
			t.Errorf("%s picked twice", p.Path)
		}
		seen[p.Path] = true
	}
	if len(seen) != 3 || remaining.Len() != 0 {
		t.Errorf("picked %d distinct, %d remaining", len(seen), remaining.Len())
	}

	_, _, err = MatchAny(remaining, monitors[:1], nil)
	if !errors.Is(err, ErrInsufficientImages) {
		t.Errorf("empty pool error = %v, want ErrInsufficientImages", err)
	}
}
