package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ScrollFactor is a validated positive, finite scroll-speed multiplier.
// Its zero value is invalid; use DefaultScrollFactor or NewScrollFactor.
type ScrollFactor float64

// DefaultScrollFactor is the factor applied when a config omits one.
const DefaultScrollFactor ScrollFactor = 1.0

// NewScrollFactor validates v and wraps it, rejecting non-positive or
// non-finite values.
func NewScrollFactor(v float64) (ScrollFactor, error) {
	if !(v > 0) || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("must be a positive finite number")
	}
	return ScrollFactor(v), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *ScrollFactor) UnmarshalYAML(value *yaml.Node) error {
	var v float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	parsed, err := NewScrollFactor(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ScrollFactorPair is a vertical/horizontal pair of scroll factors,
// each defaulting to 1.0 when absent from the config.
type ScrollFactorPair struct {
	Vertical   ScrollFactor `yaml:"vertical"`
	Horizontal ScrollFactor `yaml:"horizontal"`
}

// DefaultScrollFactorPair is the pair used when a config omits the field
// entirely.
var DefaultScrollFactorPair = ScrollFactorPair{
	Vertical:   DefaultScrollFactor,
	Horizontal: DefaultScrollFactor,
}

// UnmarshalYAML implements yaml.Unmarshaler, applying the 1.0 default to
// whichever of Vertical/Horizontal the config omits.
func (p *ScrollFactorPair) UnmarshalYAML(value *yaml.Node) error {
	raw := struct {
		Vertical   *ScrollFactor `yaml:"vertical"`
		Horizontal *ScrollFactor `yaml:"horizontal"`
	}{}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = DefaultScrollFactorPair
	if raw.Vertical != nil {
		p.Vertical = *raw.Vertical
	}
	if raw.Horizontal != nil {
		p.Horizontal = *raw.Horizontal
	}
	return nil
}
