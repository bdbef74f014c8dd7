package evdevbus

import (
	"math"

	"github.com/buzztaiki/ponde/internal/ponde/apperr"
	"github.com/buzztaiki/ponde/internal/ponde/config"
)

// DeviceState is the per-physical-device mutable configuration and
// classification state that exists only in user space — the settings
// spec.md §4.2 says are pushed "through the input library's
// configuration surface". Since no real libinput binding exists in
// this dependency pack (spec.md §1 calls the input library an external
// collaborator), DeviceState is this repo's own implementation of that
// surface: it both satisfies config.Configurable and is consulted while
// classifying raw evdev reads into pointerevent.Event values.
type DeviceState struct {
	accelMultiplier float64
	accelProfile    config.AccelProfile
	leftHanded      bool
	middleEmulation bool
	naturalScroll   bool
	rotationAngle   float64 // degrees
	scrollButton    *uint16
	scrollLocked    bool // scroll_button_lock: click toggles mode instead of hold

	leftDown, rightDown  bool
	middleEmulatedActive bool
	scrollModeActive     bool
}

// NewDeviceState returns a DeviceState with the input library's
// defaults: adaptive acceleration profile, no speed adjustment, no
// rotation, no emulation.
func NewDeviceState() *DeviceState {
	return &DeviceState{accelMultiplier: 1.0, accelProfile: config.AccelProfileAdaptive}
}

var _ config.Configurable = (*DeviceState)(nil)

func (s *DeviceState) SetAccelProfile(p config.AccelProfile) error {
	s.accelProfile = p
	return nil
}

func (s *DeviceState) SetAccelSpeed(speed float64) error {
	if speed < -1.0 || speed > 1.0 {
		return apperr.DeviceConfigInvalid("accel_speed")
	}
	s.accelMultiplier = 1.0 + speed
	return nil
}

func (s *DeviceState) SetLeftHanded(enabled bool) error {
	s.leftHanded = enabled
	return nil
}

func (s *DeviceState) SetMiddleEmulation(enabled bool) error {
	s.middleEmulation = enabled
	return nil
}

func (s *DeviceState) SetNaturalScrolling(enabled bool) error {
	s.naturalScroll = enabled
	return nil
}

func (s *DeviceState) SetRotationAngle(degrees float64) error {
	if degrees < 0 || degrees >= 360 {
		return apperr.DeviceConfigInvalid("rotation_angle")
	}
	s.rotationAngle = degrees
	return nil
}

func (s *DeviceState) SetScrollButton(code uint16) error {
	s.scrollButton = &code
	return nil
}

// applyAccel scales relative motion by the configured acceleration
// profile/speed. Flat applies a constant multiplier; adaptive adds a
// mild magnitude-dependent boost on top, the way libinput's adaptive
// profile accelerates faster flicks more than slow, precise ones.
func (s *DeviceState) applyAccel(dx, dy float64) (float64, float64) {
	mult := s.accelMultiplier
	if s.accelProfile == config.AccelProfileAdaptive {
		magnitude := math.Hypot(dx, dy)
		mult *= 1 + math.Min(magnitude, 20)*0.02
	}
	return dx * mult, dy * mult
}

// applyRotation rotates a relative motion vector by the configured
// angle (clockwise, in the evdev Y-down coordinate system).
func (s *DeviceState) applyRotation(dx, dy float64) (float64, float64) {
	if s.rotationAngle == 0 {
		return dx, dy
	}
	rad := s.rotationAngle * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return dx*cos - dy*sin, dx*sin + dy*cos
}

// mapButtonCode applies the left-handed primary/secondary button swap.
// This happens before DeviceConfig.button_mapping (spec.md §4.2/§4.4
// treats button_mapping's input as the already-left-handed-swapped
// source code).
func (s *DeviceState) mapButtonCode(code uint16) uint16 {
	if !s.leftHanded {
		return code
	}
	switch code {
	case btnLeft:
		return btnRight
	case btnRight:
		return btnLeft
	default:
		return code
	}
}

// trackChord updates left/right press state for middle-click emulation
// and reports whether this raw button event should instead be
// suppressed (because it was consumed into an emulated BTN_MIDDLE) or
// turned into one (synthesized on top of the real event).
//
// Returns the code/pressed pair to emit in place of the raw one, or
// suppress=true to emit nothing for it.
func (s *DeviceState) trackChord(code uint16, pressed bool) (emitCode uint16, emitPressed bool, suppress bool) {
	if !s.middleEmulation || (code != btnLeft && code != btnRight) {
		return code, pressed, false
	}

	if code == btnLeft {
		s.leftDown = pressed
	} else {
		s.rightDown = pressed
	}

	switch {
	case s.leftDown && s.rightDown && !s.middleEmulatedActive:
		s.middleEmulatedActive = true
		return btnMiddle, true, false
	case s.middleEmulatedActive && !s.leftDown && !s.rightDown:
		s.middleEmulatedActive = false
		return btnMiddle, false, false
	case s.middleEmulatedActive:
		// One of the two chord buttons changed while the emulated
		// middle click is still held; swallow it so the real button
		// never reaches the translator mid-chord.
		return 0, false, true
	default:
		return code, pressed, false
	}
}

// scrollButtonEvent reports whether code is the configured
// button-emulated-scroll trigger, and updates scrollModeActive
// accordingly. fired is true exactly when the raw button event should
// be swallowed rather than passed through as a regular button press.
func (s *DeviceState) scrollButtonEvent(code uint16, pressed bool) (fired bool) {
	if s.scrollButton == nil || code != *s.scrollButton {
		return false
	}
	if s.scrollLocked {
		if pressed {
			s.scrollModeActive = !s.scrollModeActive
		}
	} else {
		s.scrollModeActive = pressed
	}
	return true
}

// motionToScroll converts a relative motion delta into the scroll
// units button-emulated scrolling reports, consistent with the
// dead-simple "drag distance / detent size" model common to this kind
// of emulation.
func motionToScroll(dx, dy float64) (vertical, horizontal float64) {
	const unitsPerDetent = 15.0
	return dy / unitsPerDetent, dx / unitsPerDetent
}

