package config

// Configurable is the device-side configuration surface DeviceConfig.ApplyTo
// pushes settings through — the Go shape of spec.md §4.2's "input
// library's configuration surface". internal/ponde/evdevbus implements
// it (there being no real libinput binding in this dependency pack to
// implement it for us; see DESIGN.md).
//
// Methods return an error already tagged apperr.KindDeviceConfigUnsupported
// or apperr.KindDeviceConfigInvalid when the device rejects the option,
// matching spec.md §4.2's "fails with the corresponding error kind".
type Configurable interface {
	SetAccelProfile(AccelProfile) error
	SetAccelSpeed(speed float64) error
	SetLeftHanded(enabled bool) error
	SetMiddleEmulation(enabled bool) error
	SetNaturalScrolling(enabled bool) error
	SetRotationAngle(degrees float64) error
	SetScrollButton(code uint16) error
}

// DeviceConfig holds the per-device options a YAML config entry sets.
// Every field besides MatchRule is optional ("not set" means "leave
// device default"); see spec.md §3.
type DeviceConfig struct {
	MatchRule MatchRule `yaml:"match_rule"`

	AccelProfile *AccelProfile `yaml:"accel_profile,omitempty"`
	AccelSpeed   *float64      `yaml:"accel_speed,omitempty"`

	ButtonMapping map[Button]Button `yaml:"button_mapping,omitempty"`

	// HorizontalScrolling, when set to false, drops the horizontal axis
	// from any scroll event for this device (SPEC_FULL.md §3).
	HorizontalScrolling *bool `yaml:"horizontal_scrolling,omitempty"`

	LeftHanded         *bool `yaml:"left_handed,omitempty"`
	MiddleEmulation    *bool `yaml:"middle_emulation,omitempty"`
	NaturalScrolling   *bool `yaml:"natural_scrolling,omitempty"`
	RotationAngle      *float64 `yaml:"rotation_angle,omitempty"`
	ScrollButton       *Button  `yaml:"scroll_button,omitempty"`
	ScrollButtonLock   *bool    `yaml:"scroll_button_lock,omitempty"`

	WheelScrollFactor  ScrollFactorPair `yaml:"wheel_scroll_factor,omitempty"`
	MotionScrollFactor ScrollFactorPair `yaml:"motion_scroll_factor,omitempty"`
}

// ApplyTo pushes every set option through dev, in the order listed in
// spec.md §4.2. Any option dev rejects aborts the whole application;
// later options are not attempted.
func (c *DeviceConfig) ApplyTo(dev Configurable) error {
	if c.AccelProfile != nil {
		if err := dev.SetAccelProfile(*c.AccelProfile); err != nil {
			return err
		}
	}
	if c.AccelSpeed != nil {
		if err := dev.SetAccelSpeed(*c.AccelSpeed); err != nil {
			return err
		}
	}
	if c.LeftHanded != nil {
		if err := dev.SetLeftHanded(*c.LeftHanded); err != nil {
			return err
		}
	}
	if c.MiddleEmulation != nil {
		if err := dev.SetMiddleEmulation(*c.MiddleEmulation); err != nil {
			return err
		}
	}
	if c.NaturalScrolling != nil {
		if err := dev.SetNaturalScrolling(*c.NaturalScrolling); err != nil {
			return err
		}
	}
	if c.RotationAngle != nil {
		if err := dev.SetRotationAngle(*c.RotationAngle); err != nil {
			return err
		}
	}
	if c.ScrollButton != nil {
		if err := dev.SetScrollButton(c.ScrollButton.Code); err != nil {
			return err
		}
	}
	return nil
}

// MapButton applies the source→source button_mapping, defaulting to the
// identity mapping when the source code has no entry. This is consulted
// by the translator, not pushed down (spec.md §4.2/§4.4).
func (c *DeviceConfig) MapButton(code uint16) uint16 {
	if c.ButtonMapping == nil {
		return code
	}
	if mapped, ok := c.ButtonMapping[Button{Code: code}]; ok {
		return mapped.Code
	}
	return code
}

// ScrollButtonLockEnabled reports the configured scroll_button_lock
// value, defaulting to false (disabled) when unset.
func (c *DeviceConfig) ScrollButtonLockEnabled() bool {
	return c.ScrollButtonLock != nil && *c.ScrollButtonLock
}

// HorizontalScrollingEnabled reports whether horizontal scroll events
// should pass through, defaulting to true (enabled) when unset.
func (c *DeviceConfig) HorizontalScrollingEnabled() bool {
	return c.HorizontalScrolling == nil || *c.HorizontalScrolling
}
