package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AccelProfile selects the pointer acceleration curve libinput would
// apply. See original_source/src/config/accel_profile.rs.
type AccelProfile int

const (
	AccelProfileAdaptive AccelProfile = iota
	AccelProfileFlat
)

func (p AccelProfile) String() string {
	if p == AccelProfileFlat {
		return "flat"
	}
	return "adaptive"
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *AccelProfile) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "adaptive":
		*p = AccelProfileAdaptive
	case "flat":
		*p = AccelProfileFlat
	default:
		return fmt.Errorf("unexpected accel_profile value %q", s)
	}
	return nil
}
