package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// buttonCodes maps the symbolic evdev button names a YAML config may
// reference to their kernel key codes (linux/input-event-codes.h). Only
// BTN_* names are accepted; spec.md §3 requires rejecting anything that
// doesn't start with "BTN_" even if it happens to be some other valid
// key symbol.
var buttonCodes = map[string]uint16{
	"BTN_0": 0x100, "BTN_1": 0x101, "BTN_2": 0x102, "BTN_3": 0x103,
	"BTN_4": 0x104, "BTN_5": 0x105, "BTN_6": 0x106, "BTN_7": 0x107,
	"BTN_8": 0x108, "BTN_9": 0x109,
	"BTN_LEFT": 0x110, "BTN_RIGHT": 0x111, "BTN_MIDDLE": 0x112,
	"BTN_SIDE": 0x113, "BTN_EXTRA": 0x114, "BTN_FORWARD": 0x115,
	"BTN_BACK": 0x116, "BTN_TASK": 0x117,
	"BTN_TRIGGER": 0x120, "BTN_THUMB": 0x121, "BTN_THUMB2": 0x122,
	"BTN_TOP": 0x123, "BTN_TOP2": 0x124, "BTN_PINKIE": 0x125,
	"BTN_BASE": 0x126, "BTN_BASE2": 0x127, "BTN_BASE3": 0x128,
	"BTN_BASE4": 0x129, "BTN_BASE5": 0x12a, "BTN_BASE6": 0x12b,
	"BTN_DEAD": 0x12f,
	"BTN_SOUTH": 0x130, "BTN_A": 0x130, "BTN_EAST": 0x131, "BTN_B": 0x131,
	"BTN_C": 0x132, "BTN_NORTH": 0x133, "BTN_X": 0x133,
	"BTN_WEST": 0x134, "BTN_Y": 0x134, "BTN_Z": 0x135,
	"BTN_TL": 0x136, "BTN_TR": 0x137, "BTN_TL2": 0x138, "BTN_TR2": 0x139,
	"BTN_SELECT": 0x13a, "BTN_START": 0x13b, "BTN_MODE": 0x13c,
	"BTN_THUMBL": 0x13d, "BTN_THUMBR": 0x13e,
	"BTN_TOOL_PEN": 0x140, "BTN_TOOL_RUBBER": 0x141, "BTN_TOOL_BRUSH": 0x142,
	"BTN_TOOL_PENCIL": 0x143, "BTN_TOOL_AIRBRUSH": 0x144, "BTN_TOOL_FINGER": 0x145,
	"BTN_TOOL_MOUSE": 0x146, "BTN_TOOL_LENS": 0x147, "BTN_TOOL_QUINTTAP": 0x148,
	"BTN_STYLUS3": 0x149, "BTN_TOUCH": 0x14a, "BTN_STYLUS": 0x14b,
	"BTN_STYLUS2": 0x14c, "BTN_TOOL_DOUBLETAP": 0x14d, "BTN_TOOL_TRIPLETAP": 0x14e,
	"BTN_TOOL_QUADTAP": 0x14f,
	"BTN_WHEEL": 0x150, "BTN_GEAR_DOWN": 0x150, "BTN_GEAR_UP": 0x151,
}

// Button wraps a Linux evdev key code deserialized from a symbolic
// string, e.g. "BTN_LEFT".
type Button struct {
	Code uint16
}

// ParseButton looks up a symbolic button name, rejecting any symbol that
// doesn't begin with "BTN_" even if it would otherwise resolve.
func ParseButton(s string) (Button, error) {
	if !strings.HasPrefix(s, "BTN_") {
		return Button{}, fmt.Errorf("unexpected button value %s", s)
	}
	code, ok := buttonCodes[s]
	if !ok {
		return Button{}, fmt.Errorf("unexpected button value %s", s)
	}
	return Button{Code: code}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Button) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseButton(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
