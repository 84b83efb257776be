//go:build windows

package devnotify

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/Microsoft/go-winio/pkg/guid"
	"golang.org/x/sys/windows"
)

var (
	moduser32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterClassExW             = moduser32.NewProc("RegisterClassExW")
	procCreateWindowExW              = moduser32.NewProc("CreateWindowExW")
	procDestroyWindow                = moduser32.NewProc("DestroyWindow")
	procDefWindowProcW               = moduser32.NewProc("DefWindowProcW")
	procGetMessageW                  = moduser32.NewProc("GetMessageW")
	procTranslateMessage             = moduser32.NewProc("TranslateMessage")
	procDispatchMessageW             = moduser32.NewProc("DispatchMessageW")
	procPostThreadMessageW           = moduser32.NewProc("PostThreadMessageW")
	procRegisterDeviceNotificationW  = moduser32.NewProc("RegisterDeviceNotificationW")
	procUnregisterDeviceNotification = moduser32.NewProc("UnregisterDeviceNotification")
)

const (
	wmDeviceChange = 0x0219
	wmQuit         = 0x0012

	hwndMessage = ^uintptr(2) // HWND_MESSAGE, (HWND)-3

	deviceNotifyWindowHandle = 0x00000000

	windowClassName = "pnpkitDeviceNotify"
)

// devBroadcastDeviceInterface mirrors DEV_BROADCAST_DEVICEINTERFACE_W.
type devBroadcastDeviceInterface struct {
	size       uint32
	deviceType uint32
	reserved   uint32
	classGUID  guid.GUID
	name       [1]uint16
}

type wndClassEx struct {
	size       uint32
	style      uint32
	wndProc    uintptr
	clsExtra   int32
	wndExtra   int32
	instance   windows.Handle
	icon       windows.Handle
	cursor     windows.Handle
	background windows.Handle
	menuName   *uint16
	className  *uint16
	iconSm     windows.Handle
}

type msg struct {
	hwnd    windows.HWND
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
	private uint32
}

var (
	registerOnce sync.Once
	registerErr  error
	instance     windows.Handle
	className    *uint16

	// sessions routes window messages to the session owning the window.
	sessions sync.Map // windows.HWND -> *windowSession
)

// registerClass registers the hidden window class once per process.
func registerClass() error {
	registerOnce.Do(func() {
		if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
			registerErr = fmt.Errorf("GetModuleHandleEx: %w", err)
			return
		}
		className, registerErr = windows.UTF16PtrFromString(windowClassName)
		if registerErr != nil {
			return
		}
		wc := wndClassEx{
			wndProc:   windows.NewCallback(wndProc),
			instance:  instance,
			className: className,
		}
		wc.size = uint32(unsafe.Sizeof(wc))
		if r, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
			registerErr = fmt.Errorf("RegisterClassExW: %w", err)
		}
	})
	return registerErr
}

func wndProc(hwnd windows.HWND, message, wparam, lparam uintptr) uintptr {
	if message == wmDeviceChange && lparam != 0 {
		if v, ok := sessions.Load(hwnd); ok {
			s := v.(*windowSession)
			if s.deliver != nil {
				size := *(*uint32)(unsafe.Pointer(lparam))
				data := unsafe.Slice((*byte)(unsafe.Pointer(lparam)), size)
				s.deliver(wparam, data)
			}
			return 1
		}
	}
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), message, wparam, lparam)
	return r
}

// windowSource receives notifications through a hidden message-only window.
type windowSource struct{}

func nativeSource() Source { return windowSource{} }

type windowSession struct {
	hwnd     windows.HWND
	notify   uintptr
	threadID uint32
	deliver  func(wparam uintptr, data []byte)
}

func (windowSource) Open(class guid.GUID) (Session, error) {
	if err := registerClass(); err != nil {
		return nil, err
	}
	hwnd, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		0, 0, 0, 0, 0, 0,
		hwndMessage,
		0,
		uintptr(instance),
		0,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("CreateWindowExW: %w", err)
	}
	s := &windowSession{hwnd: windows.HWND(hwnd), threadID: windows.GetCurrentThreadId()}
	sessions.Store(s.hwnd, s)

	filter := devBroadcastDeviceInterface{
		deviceType: dbtDevtypDeviceInterface,
		classGUID:  class,
	}
	filter.size = uint32(unsafe.Sizeof(filter))
	s.notify, _, err = procRegisterDeviceNotificationW.Call(
		hwnd,
		uintptr(unsafe.Pointer(&filter)),
		deviceNotifyWindowHandle,
	)
	if s.notify == 0 {
		_ = s.Close()
		return nil, fmt.Errorf("RegisterDeviceNotificationW: %w", err)
	}
	return s, nil
}

func (s *windowSession) Run(deliver func(wparam uintptr, data []byte)) error {
	s.deliver = deliver
	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		}
		_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// Wake posts WM_QUIT to the pump thread's queue.
func (s *windowSession) Wake() {
	_, _, _ = procPostThreadMessageW.Call(uintptr(s.threadID), wmQuit, 0, 0)
}

func (s *windowSession) Close() error {
	var errs []error
	if s.notify != 0 {
		if r, _, err := procUnregisterDeviceNotification.Call(s.notify); r == 0 {
			errs = append(errs, fmt.Errorf("UnregisterDeviceNotification: %w", err))
		}
		s.notify = 0
	}
	if s.hwnd != 0 {
		sessions.Delete(s.hwnd)
		if r, _, err := procDestroyWindow.Call(uintptr(s.hwnd)); r == 0 {
			errs = append(errs, fmt.Errorf("DestroyWindow: %w", err))
		}
		s.hwnd = 0
	}
	return errors.Join(errs...)
}
