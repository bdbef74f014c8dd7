package evdevbus

import "github.com/buzztaiki/ponde/internal/ponde/pointerevent"

// frame accumulates the raw evdev events between two SYN_REPORT
// markers, the unit the kernel groups related axis/button changes
// into, and flushes them into zero or more pointerevent.Event values.
type frame struct {
	hasMotion    bool
	dx, dy       float64
	hasAbs       bool
	x, y         float64
	hasVertical  bool
	vertical     float64
	verticalV120 float64
	hasHorizontal  bool
	horizontal     float64
	horizontalV120 float64

	buttons []pointerevent.Button
}

func (f *frame) addRel(code uint16, value int32) {
	v := float64(value)
	switch code {
	case relX:
		f.hasMotion = true
		f.dx += v
	case relY:
		f.hasMotion = true
		f.dy += v
	case relWheel:
		f.hasVertical = true
		f.vertical += v
	case relWheelHiRes:
		f.hasVertical = true
		f.verticalV120 += v
	case relHWheel:
		f.hasHorizontal = true
		f.horizontal += v
	case relHWheelHiRes:
		f.hasHorizontal = true
		f.horizontalV120 += v
	}
}

func (f *frame) addAbs(code uint16, value int32) {
	switch code {
	case absX:
		f.hasAbs = true
		f.x = float64(value)
	case absY:
		f.hasAbs = true
		f.y = float64(value)
	}
}

func (f *frame) addKey(code uint16, pressed bool) {
	state := pointerevent.ButtonReleased
	if pressed {
		state = pointerevent.ButtonPressed
	}
	f.buttons = append(f.buttons, pointerevent.Button{Code: code, State: state})
}

// flush drains the frame into the pointer events it represents,
// consulting dev for acceleration/rotation/left-handed/middle-emulation
// /button-emulated-scroll state, and resets the frame for reuse.
func (f *frame) flush(dev *DeviceState) []pointerevent.Event {
	var events []pointerevent.Event

	for _, b := range f.buttons {
		code := dev.mapButtonCode(b.Code)
		pressed := b.State == pointerevent.ButtonPressed

		if dev.scrollButtonEvent(code, pressed) {
			continue
		}
		emitCode, emitPressed, suppress := dev.trackChord(code, pressed)
		if suppress {
			continue
		}
		state := pointerevent.ButtonReleased
		if emitPressed {
			state = pointerevent.ButtonPressed
		}
		events = append(events, pointerevent.Button{Code: emitCode, State: state})
	}

	if f.hasMotion {
		if dev.scrollModeActive {
			vertical, horizontal := motionToScroll(f.dx, f.dy)
			events = append(events, pointerevent.NewScrollContinuous(true, vertical, true, horizontal))
		} else {
			dx, dy := dev.applyRotation(f.dx, f.dy)
			dx, dy = dev.applyAccel(dx, dy)
			events = append(events, pointerevent.Motion{DX: dx, DY: dy})
		}
	}

	if f.hasAbs {
		events = append(events, pointerevent.MotionAbsolute{X: f.x, Y: f.y})
	}

	if f.hasVertical || f.hasHorizontal {
		vertical, horizontal := f.vertical, f.horizontal
		verticalV120, horizontalV120 := f.verticalV120, f.horizontalV120
		if dev.naturalScroll {
			vertical, verticalV120 = -vertical, -verticalV120
			horizontal, horizontalV120 = -horizontal, -horizontalV120
		}
		events = append(events, pointerevent.NewScrollWheel(
			f.hasVertical, vertical, verticalV120,
			f.hasHorizontal, horizontal, horizontalV120,
		))
	}

	*f = frame{}
	return events
}
