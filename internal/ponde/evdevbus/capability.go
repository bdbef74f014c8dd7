package evdevbus

import "github.com/buzztaiki/ponde/internal/ponde/pointerevent"

// Raw evdev event-type/code constants this package classifies on.
// Values are the canonical Linux UAPI ones (cross-checked against
// andrieee44-mylib/linux/input/eventCodes.go); see DESIGN.md.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0x00

	relX           = 0x00
	relY           = 0x01
	relHWheel      = 0x06
	relWheel       = 0x08
	relWheelHiRes  = 0x0b
	relHWheelHiRes = 0x0c

	absX      = 0x00
	absY      = 0x01
	absMTSlot = 0x2f

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
)

// deviceInfo derives a pointerevent.DeviceInfo from a device's flattened
// capability map (event type -> supported codes), the representation
// golang-evdev's InputDevice.CapabilitiesFlat already exposes.
//
// A device is "pointer"-capable if it reports relative X/Y motion or
// absolute X/Y position. It is additionally "gesture"-capable if it
// reports multitouch slots (ABS_MT_SLOT): spec.md §3 defines a mouse as
// pointer-capable and not gesture-capable, so a touchpad (which reports
// both) is excluded.
func deviceInfo(name string, capsFlat map[int][]int) pointerevent.DeviceInfo {
	hasRelMotion := containsAll(capsFlat[evRel], relX, relY)
	hasAbsMotion := containsAll(capsFlat[evAbs], absX, absY)
	hasGesture := contains(capsFlat[evAbs], absMTSlot)

	return pointerevent.DeviceInfo{
		Name:    name,
		Pointer: hasRelMotion || hasAbsMotion,
		Gesture: hasGesture,
	}
}

func contains(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func containsAll(codes []int, want ...int) bool {
	for _, w := range want {
		if !contains(codes, w) {
			return false
		}
	}
	return true
}
