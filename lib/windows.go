//go:build windows

package changewallpaperlib

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows/registry"
)

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// Device path of the monitor
type monitorHandle = string

// DesktopWallpaper does not extend IDispatch so this needs to be done manually
type IDesktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
	SetBackgroundColor        uintptr
	GetBackgroundColor        uintptr
	SetPosition               uintptr
	GetPosition               uintptr
	SetSlideshow              uintptr
	GetSlideshow              uintptr
	SetSlideshowOptions       uintptr
	GetSlideshowOptions       uintptr
	AdvanceSlideshow          uintptr
	GetStatus                 uintptr
	Enable                    uintptr
}

// Pulled from headers
const CLSID = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
const IID = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"

// Monitor is counted but isn't attached to the computer
const S_FALSE = uintptr(2147500037)

const (
	SPI_SETDESKWALLPAPER = uintptr(0x14)
	SPIF_UPDATEINIFILE   = uintptr(0x1)
	SPIF_SENDCHANGE      = uintptr(0x2)
)

var sysProcAttr = &syscall.SysProcAttr{HideWindow: true}

var modole32 = syscall.NewLazyDLL("ole32.dll")
var coTaskMemFree = modole32.NewProc("CoTaskMemFree")

var moduser32 = syscall.NewLazyDLL("user32.dll")
var procSystemParametersInfo = moduser32.NewProc("SystemParametersInfoW")

// GetMonitorRECT reports positions in virtual screen coordinates, which is
// what the spanned wallpaper is laid out in.
func getSystemMonitors() ([]*Monitor, error) {
	var monitors []*Monitor

	err := ole.CoInitialize(0)
	if err != nil {
		return nil, err
	}
	defer ole.CoUninitialize()

	desktop, err := ole.CreateInstance(
		ole.NewGUID(CLSID),
		ole.NewGUID(IID))
	if err != nil {
		return nil, err
	}
	defer desktop.Release()

	vtable := (*IDesktopWallpaperVtbl)(unsafe.Pointer(desktop.RawVTable))

	var count uint32

	hr, _, err := syscall.Syscall(
		vtable.GetMonitorDevicePathCount,
		2,
		uintptr(unsafe.Pointer(desktop)),
		uintptr(unsafe.Pointer(&count)),
		0)
	if hr != 0 {
		return nil, fmt.Errorf(
			"Unexpected value from GetMonitorDevicePathCount %d %v", hr, err)
	}

	for i := uint32(0); i < count; i++ {
		var pathOut *[1 << 30]uint16

		hr, _, err = syscall.Syscall(
			vtable.GetMonitorDevicePathAt,
			3,
			uintptr(unsafe.Pointer(desktop)),
			uintptr(i),
			uintptr(unsafe.Pointer(&pathOut)))
		if hr != 0 {
			return nil, fmt.Errorf(
				"Unexpected value from GetMonitorDevicePathAt %d %v", hr, err)
		}

		r := rect{}
		rectHR, _, errno := syscall.Syscall(
			vtable.GetMonitorRECT,
			3,
			uintptr(unsafe.Pointer(desktop)),
			uintptr(unsafe.Pointer(pathOut)),
			uintptr(unsafe.Pointer(&r)))
		if (rectHR != 0 && rectHR != S_FALSE) || errno != 0 {
			return nil, fmt.Errorf(
				"Unexpected value from GetMonitorRECT %d %v", rectHR, errno)
		}
		// Copy out and free memory allocated outside of Go's control right away
		path := syscall.UTF16ToString(pathOut[:])

		_, _, errno = syscall.Syscall(
			coTaskMemFree.Addr(),
			1,
			uintptr(unsafe.Pointer(pathOut)),
			0,
			0)
		if errno != 0 {
			return nil, fmt.Errorf(
				"Unexpected value from CoTaskMemFree %d, %v", hr, err)
		}

		if rectHR == S_FALSE {
			continue
		}

		monitors = append(monitors, &Monitor{
			Left:   int(r.left),
			Top:    int(r.top),
			Width:  int(r.right - r.left),
			Height: int(r.bottom - r.top),
			handle: path})
	}

	return monitors, nil
}

// SetMonitorWallpapers spans the composite image across every monitor.
func SetMonitorWallpapers(monitors []*Monitor, wallpaper AbsolutePath) error {
	err := setRegistryKeys()
	if err != nil {
		return err
	}

	logger.Debug().Str("file", wallpaper).Msg("Setting wallpaper")

	path, err := syscall.UTF16PtrFromString(wallpaper)
	if err != nil {
		return err
	}

	ret, _, err := procSystemParametersInfo.Call(
		SPI_SETDESKWALLPAPER,
		0,
		uintptr(unsafe.Pointer(path)),
		SPIF_UPDATEINIFILE|SPIF_SENDCHANGE)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfoW failed: %v", err)
	}

	return nil
}

func setRegistryKeys() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	// 22 is "Span"
	if err = k.SetStringValue("WallpaperStyle", "22"); err != nil {
		return err
	}

	if err = k.SetStringValue("TileWallpaper", "0"); err != nil {
		return err
	}

	return k.SetDWordValue("JPEGImportQuality", 100)
}

func CheckIfLocked() (bool, error) {
	openInputDesktop := moduser32.NewProc("OpenInputDesktop")
	closeDesktop := moduser32.NewProc("CloseDesktop")

	desktop, _, _ := openInputDesktop.Call(0,
		0,
		0)
	if desktop == 0 {
		// Failure here means that the user is on a desktop we cannot access
		// That is overwhelmingly likely to be the lock screen
		return true, nil
	}
	ret, _, _ := closeDesktop.Call(desktop)
	if ret == 0 {
		// If we can open the desktop, not being able to close it is a problem.
		return true, errors.New("Failed to close desktop handle")
	}

	return false, nil
}

const ATTACH_PARENT_PROCESS = uintptr(^uint32(0)) // (DWORD)-1

var modkernel32 = syscall.NewLazyDLL("kernel32.dll")
var procAttachConsole = modkernel32.NewProc("AttachConsole")

// Attempts to attach to the parent console if one exists so we can get stdout
// Note that it's impossible to properly redirect stdin
// See https://stackoverflow.com/questions/23743217/
func AttachParentConsole() {
	r, _, _ :=
		syscall.Syscall(procAttachConsole.Addr(), 1, ATTACH_PARENT_PROCESS, 0, 0)

	if r == 0 {
		return
	}

	hout, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
	if err != nil {
		return
	}
	herr, err := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE)
	if err != nil {
		return
	}

	os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
}
