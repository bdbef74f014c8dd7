package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/buzztaiki/ponde/internal/ponde/apperr"
	"github.com/buzztaiki/ponde/internal/ponde/pointerevent"
)

// Config is the top-level YAML document: a list of per-device configs.
type Config struct {
	Devices []DeviceConfig `yaml:"devices"`
}

// Load reads and parses the YAML config at path, rejecting unknown
// fields and any value that fails its own validation (Button,
// ScrollFactor, rotation_angle range, accel_speed range).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.IO(err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, apperr.ConfigParse(err)
	}
	for i := range c.Devices {
		c.Devices[i].applyScrollFactorDefaults()
		if err := c.Devices[i].validate(); err != nil {
			return nil, apperr.ConfigParse(err)
		}
	}
	return &c, nil
}

// applyScrollFactorDefaults fills in DefaultScrollFactorPair for either
// scroll-factor field the YAML document omitted entirely: a present
// "wheel_scroll_factor: { vertical: ... }" goes through
// ScrollFactorPair.UnmarshalYAML and already gets its defaults, but an
// omitted field never invokes that method and is left at Go's zero
// value, which would silently zero every scroll event (SPEC_FULL.md §3).
func (c *DeviceConfig) applyScrollFactorDefaults() {
	var zero ScrollFactorPair
	if c.WheelScrollFactor == zero {
		c.WheelScrollFactor = DefaultScrollFactorPair
	}
	if c.MotionScrollFactor == zero {
		c.MotionScrollFactor = DefaultScrollFactorPair
	}
}

// validate enforces the range invariants spec.md §6 requires at parse
// time but that a bare yaml.Unmarshaler on a plain *float64 field
// can't express (accel_speed, rotation_angle).
func (c *DeviceConfig) validate() error {
	if c.AccelSpeed != nil && (*c.AccelSpeed < -1.0 || *c.AccelSpeed > 1.0) {
		return fmt.Errorf("accel_speed must be within [-1.0, 1.0], got %v", *c.AccelSpeed)
	}
	if c.RotationAngle != nil && (*c.RotationAngle < 0 || *c.RotationAngle >= 360) {
		return fmt.Errorf("rotation_angle must be within [0, 360), got %v", *c.RotationAngle)
	}
	return nil
}

// MatchedDevice returns the first DeviceConfig whose match rule accepts
// d, if d is a mouse. Non-mice never match (spec.md §3/§4).
func (c *Config) MatchedDevice(d pointerevent.DeviceInfo) *DeviceConfig {
	if !d.IsMouse() {
		return nil
	}
	for i := range c.Devices {
		if c.Devices[i].MatchRule.Matches(d) {
			return &c.Devices[i]
		}
	}
	return nil
}
