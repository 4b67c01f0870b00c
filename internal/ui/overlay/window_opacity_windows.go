//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2
)

var (
	user32                         = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW          = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the whole break window translucent, including the controls.
func (overlay *Window) applyNativeOpacity(alpha uint8) {
	native, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}
	native.RunNative(func(context any) {
		hwnd := windowHandle(context)
		if hwnd == 0 {
			return
		}
		index := int32ToUintptr(gwlExStyle)
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, index)
		if style&wsExLayered == 0 {
			_, _, _ = procSetWindowLongPtrW.Call(hwnd, index, style|wsExLayered)
		}
		_, _, _ = procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), lwaAlpha)
	})
}

func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		if value != nil {
			return value.HWND
		}
	}
	return 0
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
