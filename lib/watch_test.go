package changewallpaperlib

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func runWatcher(t *testing.T, onChange func()) {
	t.Helper()

	w := NewOriginalsWatcher(onChange)
	w.Delay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})

	// Give the watcher time to register the directories
	time.Sleep(100 * time.Millisecond)
}

func TestWatcherTriggersOnNewImage(t *testing.T) {
	c := testConfig(t)

	changed := make(chan struct{}, 10)
	runWatcher(t, func() { changed <- struct{}{} })

	writePNG(t, filepath.Join(c.OriginalsDirectory, "new.png"), 8, 8)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called after adding an image")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	c := testConfig(t)

	var calls int32
	runWatcher(t, func() { atomic.AddInt32(&calls, 1) })

	err := os.WriteFile(filepath.Join(c.OriginalsDirectory, "notes.txt"), []byte("x"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(c.OriginalsDirectory, ".hidden.png"), []byte("x"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("OnChange called %d times, want 0", n)
	}
}

func TestWatcherDebounces(t *testing.T) {
	c := testConfig(t)

	var calls int32
	runWatcher(t, func() { atomic.AddInt32(&calls, 1) })

	for _, n := range []string{"a.png", "b.png", "c.png"} {
		writePNG(t, filepath.Join(c.OriginalsDirectory, n), 4, 4)
	}

	time.Sleep(500 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("OnChange called %d times, want 1", n)
	}
}

func TestWatcherWatchesNewDirectories(t *testing.T) {
	c := testConfig(t)

	changed := make(chan struct{}, 10)
	runWatcher(t, func() { changed <- struct{}{} })

	sub := filepath.Join(c.OriginalsDirectory, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called after adding a directory")
	}

	// Drain anything from the directory creation
	time.Sleep(200 * time.Millisecond)
	for len(changed) > 0 {
		<-changed
	}

	writePNG(t, filepath.Join(sub, "nested.png"), 4, 4)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called for an image in a new subdirectory")
	}
}

func TestIsImageFile(t *testing.T) {
	testConfig(t)

	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"dir/B.JPG", true},
		{"c.webp", true},
		{"notes.txt", false},
		{"png", false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherSerializesOnChange(t *testing.T) {
	c := testConfig(t)

	var active, maxActive, calls int32
	runWatcher(t, func() {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		time.Sleep(400 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		atomic.AddInt32(&calls, 1)
	})

	for _, n := range []string{"a.png", "b.png", "c.png"} {
		writePNG(t, filepath.Join(c.OriginalsDirectory, n), 4, 4)
		time.Sleep(150 * time.Millisecond)
	}

	// First call starts after a.png, b.png and c.png land during it
	time.Sleep(1500 * time.Millisecond)

	if m := atomic.LoadInt32(&maxActive); m != 1 {
		t.Errorf("max concurrent OnChange = %d, want 1", m)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("OnChange called %d times, want 2", n)
	}
}
