//go:build linux

package changewallpaperlib

import (
	"errors"
	"os"
	"os/exec"
	"os/user"
	"strings"
)

const dbusAddress = "DBUS_SESSION_BUS_ADDRESS"

func setDBUSAddress() error {
	dbus := os.Getenv(dbusAddress)
	if dbus == "" {
		// For now just assume we're dealing with per-user dbus sessions
		user, err := user.Current()
		if err != nil {
			return nil
		}
		uid := user.Uid
		if uid == "" {
			return errors.New("No $UID set")
		}
		return os.Setenv(dbusAddress, "unix:path=/run/user/"+uid+"/bus")
	}

	return nil
}

func setGnomeWallpaper(wallpaper AbsolutePath) error {
	_, err := runBash(`
		gsettings set org.gnome.desktop.background picture-options spanned
		gsettings set org.gnome.desktop.background picture-uri "file://` + wallpaper + `"
		gsettings set org.gnome.desktop.background picture-uri-dark "file://` + wallpaper + `" || true
	`)
	return err
}

func setFehWallpaper(wallpaper AbsolutePath) error {
	// One image across every screen, it already matches the X screen size
	cmd := exec.Command("feh", "--no-xinerama", "--bg-fill", wallpaper)
	cmd.SysProcAttr = sysProcAttr
	return cmd.Run()
}

// SetMonitorWallpapers applies the composite image spanning every monitor.
func SetMonitorWallpapers(monitors []*Monitor, wallpaper AbsolutePath) error {
	if len(monitors) == 0 {
		return nil
	}

	s := monitors[0].handle
	if s == nil {
		var err error
		s, err = defaultSession()
		if err != nil {
			return err
		}
	}

	os.Setenv("DISPLAY", s.display)

	// Per-User DBUS session detected
	if err := setDBUSAddress(); err != nil {
		return err
	}

	logger.Debug().Str("display", s.display).Str("file", wallpaper).Msg("Setting wallpaper")

	// GNOME detected for this session
	if s.env == gnome {
		return setGnomeWallpaper(wallpaper)
	}

	if s.env == i3 || s.env == unknown {
		return setFehWallpaper(wallpaper)
	}

	return errors.New("Not yet implemented")
}

// CheckIfLocked asks logind whether the current session is locked.
// Without logind the screen is assumed to be unlocked.
func CheckIfLocked() (bool, error) {
	out, err := runBash(`
		loginctl show-session "${XDG_SESSION_ID:-auto}" -p LockedHint --value
	`)
	if err != nil {
		logger.Debug().Err(err).Msg("Unable to query logind, assuming unlocked")
		return false, nil
	}
	return strings.TrimSpace(out) == "yes", nil
}

// No-op
func AttachParentConsole() {}

func runBash(cmd string) (string, error) {
	// See http://redsymbol.net/articles/unofficial-bash-strict-mode/
	command := `
		set -euo pipefail
		IFS=$'\n\t'
		` + cmd + "\n"

	bash := exec.Command("/usr/bin/env", "bash")
	bash.Stdin = strings.NewReader(command)
	bash.Stderr = os.Stderr

	bashOut, err := bash.Output()
	return string(bashOut), err
}
