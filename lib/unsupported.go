//go:build !linux && !windows && !darwin

package changewallpaperlib

import (
	"errors"
	"runtime"
)

var ErrUnsupportedPlatform = errors.New("Unsupported platform " + runtime.GOOS)

type monitorHandle = struct{}

// Static Monitors in the config still work, only detection is missing
func getSystemMonitors() ([]*Monitor, error) {
	return nil, ErrUnsupportedPlatform
}

func SetMonitorWallpapers(monitors []*Monitor, wallpaper AbsolutePath) error {
	return ErrUnsupportedPlatform
}

func CheckIfLocked() (bool, error) {
	return false, nil
}

// No-op
func AttachParentConsole() {}
