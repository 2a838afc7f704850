//go:build darwin

package changewallpaperlib

import (
	"fmt"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/kbinani/screenshot"
)

// Display index as reported by screenshot
type monitorHandle = int

var sysProcAttr = &syscall.SysProcAttr{}

func getSystemMonitors() ([]*Monitor, error) {
	var monitors []*Monitor

	n := screenshot.NumActiveDisplays()
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if b.Empty() {
			continue
		}
		monitors = append(monitors, &Monitor{
			Left:   b.Min.X,
			Top:    b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
			handle: i,
		})
	}

	return monitors, nil
}

// macOS has no spanned mode, each desktop gets its own part of the composite.
// Desktops are assumed to be listed by System Events in display order.
func SetMonitorWallpapers(monitors []*Monitor, wallpaper AbsolutePath) error {
	pieces, err := SplitWallpaper(monitors, wallpaper)
	if err != nil {
		return err
	}

	for i, p := range pieces {
		logger.Debug().Int("desktop", i+1).Str("file", p).Msg("Setting wallpaper")

		cmd := exec.Command("osascript", "-e",
			`tell application "System Events" to set picture of desktop `+
				strconv.Itoa(i+1)+` to `+strconv.Quote(p))
		cmd.SysProcAttr = sysProcAttr
		if err = cmd.Run(); err != nil {
			return fmt.Errorf("Error setting wallpaper for desktop %d: %w", i+1, err)
		}
	}
	return nil
}

func CheckIfLocked() (bool, error) {
	return false, nil
}

// No-op
func AttachParentConsole() {}
