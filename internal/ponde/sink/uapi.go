package sink

import (
	"encoding/binary"
	"io"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// evdev/uinput protocol constants this package needs. Values are from
// linux/input-event-codes.h and linux/uinput.h; see DESIGN.md for the
// teacher/pack files these were cross-checked against.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0x00

	absX = 0x00
	absY = 0x01

	relX            = 0x00
	relY            = 0x01
	relHWheel       = 0x06
	relWheel        = 0x08
	relWheelHiRes   = 0x0b
	relHWheelHiRes  = 0x0c

	// btn0 through btnThumbR is the full contiguous range of pointer
	// button codes SinkDevice enables (spec.md §4.3).
	btn0       = 0x100
	btnThumbR  = 0x13e

	uinputMaxNameSize = 80

	uiSetEvBit  = 0x40045564
	uiSetKeyBit = 0x40045565
	uiSetRelBit = 0x40045566
	uiDevSetup  = 0x405c5503
	uiDevCreate = 0x5501
	uiDevDestroy = 0x5502
)

// inputID mirrors struct input_id.
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uiSetup mirrors struct uinput_setup, used with the UI_DEV_SETUP ioctl
// (kernel >= 4.5), the cleaner alternative to writing a raw
// uinput_user_dev struct that the teacher's hand-rolled ioctl sequence
// used (see DESIGN.md).
type uiSetup struct {
	ID           inputID
	Name         [uinputMaxNameSize]byte
	FFEffectsMax uint32
}

// wireEvent mirrors struct input_event, the wire format written to and
// (for completeness, though this package never reads) from a uinput fd.
type wireEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

func ioctlSet(fd uintptr, req uint, val uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), val)
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlPtr(fd uintptr, req uint, ptr unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(ptr))
	if errno != 0 {
		return errno
	}
	return nil
}

func pointerOf(s *uiSetup) unsafe.Pointer {
	return unsafe.Pointer(s)
}

// writeStruct writes v's native memory layout to w, matching the raw
// struct input_event wire format the kernel expects on a uinput fd.
func writeStruct(w io.Writer, v *wireEvent) error {
	return binary.Write(w, binary.LittleEndian, v)
}
