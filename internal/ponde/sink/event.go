package sink

import (
	"fmt"
	"math"

	"github.com/buzztaiki/ponde/internal/ponde/config"
	"github.com/buzztaiki/ponde/internal/ponde/pointerevent"
)

// InputEvent is one evdev event (type/code/value), the unit Translate
// produces and Device.Emit writes.
type InputEvent struct {
	typ, code uint16
	value     int32
}

func (e InputEvent) String() string {
	return fmt.Sprintf("{type:0x%02x code:0x%02x value:%d}", e.typ, e.code, e.value)
}

func keyEvent(code uint16, value int32) InputEvent {
	return InputEvent{typ: evKey, code: code, value: value}
}

func relEvent(code uint16, value int32) InputEvent {
	return InputEvent{typ: evRel, code: code, value: value}
}

func absEvent(code uint16, value int32) InputEvent {
	return InputEvent{typ: evAbs, code: code, value: value}
}

// truncate converts a float to an int32 the way a numeric cast does:
// toward zero, not to nearest (spec.md §4.4 rule 6).
func truncate(v float64) int32 {
	return int32(math.Trunc(v))
}

// scrollAxes is satisfied by ScrollWheel, ScrollFinger and
// ScrollContinuous via their embedded axis-pair methods.
type scrollAxes interface {
	HasAxis(pointerevent.Axis) bool
	ScrollValue(pointerevent.Axis) float64
}

// Translate converts a single pointer event into its evdev InputEvent
// batch, per spec.md §4.4. Translation is total and pure: every
// accepted variant produces a (possibly empty) batch; an unrecognized
// variant returns an error.
func Translate(ev pointerevent.Event, cfg *config.DeviceConfig) ([]InputEvent, error) {
	switch e := ev.(type) {
	case pointerevent.Motion:
		return []InputEvent{
			relEvent(relX, truncate(e.DX)),
			relEvent(relY, truncate(e.DY)),
		}, nil

	case pointerevent.MotionAbsolute:
		return []InputEvent{
			absEvent(absX, truncate(e.X)),
			absEvent(absY, truncate(e.Y)),
		}, nil

	case pointerevent.Button:
		value := int32(0)
		if e.State == pointerevent.ButtonPressed {
			value = 1
		}
		code := e.Code
		if cfg != nil {
			code = cfg.MapButton(code)
		}
		return []InputEvent{keyEvent(code, value)}, nil

	case pointerevent.ScrollWheel:
		vertical, horizontal := scrollFactor(cfg, wheelScroll)
		return translateScroll(e, vertical, horizontal, horizontalAllowed(cfg), func(a pointerevent.Axis) float64 {
			return e.ScrollValueV120(a)
		}), nil

	case pointerevent.ScrollFinger:
		vertical, horizontal := scrollFactor(cfg, motionScroll)
		return translateScroll(e, vertical, horizontal, horizontalAllowed(cfg), synthesizeV120(e)), nil

	case pointerevent.ScrollContinuous:
		vertical, horizontal := scrollFactor(cfg, motionScroll)
		return translateScroll(e, vertical, horizontal, horizontalAllowed(cfg), synthesizeV120(e)), nil

	case pointerevent.LegacyAxis:
		return nil, nil

	default:
		return nil, fmt.Errorf("sink: unsupported pointer event type %T", ev)
	}
}

func horizontalAllowed(cfg *config.DeviceConfig) bool {
	return cfg == nil || cfg.HorizontalScrollingEnabled()
}

// scrollKind selects which of wheel_scroll_factor / motion_scroll_factor
// applies: ScrollWheel events are discrete-detent wheel scroll,
// ScrollFinger/ScrollContinuous are continuous motion-derived scroll
// (SPEC_FULL.md §9's resolution of the dangling wheel/motion factor
// fields the original left unwired).
type scrollKind int

const (
	wheelScroll scrollKind = iota
	motionScroll
)

func scrollFactor(cfg *config.DeviceConfig, kind scrollKind) (vertical, horizontal float64) {
	if cfg == nil {
		return 1.0, 1.0
	}
	pair := cfg.WheelScrollFactor
	if kind == motionScroll {
		pair = cfg.MotionScrollFactor
	}
	return float64(pair.Vertical), float64(pair.Horizontal)
}

// synthesizeV120 returns the 120-unit high-resolution quantum for event
// kinds that don't expose one natively (spec.md §4.4 rule 3).
func synthesizeV120(e scrollAxes) func(pointerevent.Axis) float64 {
	return func(a pointerevent.Axis) float64 {
		return e.ScrollValue(a) * 120
	}
}

// translateScroll implements spec.md §4.4's scroll conversion rules 1,
// 2, 4, 5, 6 common to all three scroll event kinds: present-axis
// gating, vertical sign inversion, scroll-factor scaling applied
// identically to the low- and high-resolution values, and the fixed
// vertical-then-horizontal, low-res-then-hi-res emission order.
func translateScroll(e scrollAxes, verticalFactor, horizontalFactor float64, horizontalAllowed bool, v120 func(pointerevent.Axis) float64) []InputEvent {
	var batch []InputEvent

	if e.HasAxis(pointerevent.AxisVertical) {
		value := -e.ScrollValue(pointerevent.AxisVertical) * verticalFactor
		valueV120 := -v120(pointerevent.AxisVertical) * verticalFactor
		batch = append(batch,
			relEvent(relWheel, truncate(value)),
			relEvent(relWheelHiRes, truncate(valueV120)),
		)
	}

	if horizontalAllowed && e.HasAxis(pointerevent.AxisHorizontal) {
		value := e.ScrollValue(pointerevent.AxisHorizontal) * horizontalFactor
		valueV120 := v120(pointerevent.AxisHorizontal) * horizontalFactor
		batch = append(batch,
			relEvent(relHWheel, truncate(value)),
			relEvent(relHWheelHiRes, truncate(valueV120)),
		)
	}

	return batch
}
