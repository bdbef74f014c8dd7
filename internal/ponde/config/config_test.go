package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzztaiki/ponde/internal/ponde/pointerevent"
)

func TestMatchedDevicePointerDevice(t *testing.T) {
	d := pointerevent.DeviceInfo{Name: "moo", Pointer: true, Gesture: false}

	var c Config
	assert.Nil(t, c.MatchedDevice(d))

	c.Devices = append(c.Devices, DeviceConfig{MatchRule: MatchRule{Name: "woo"}})
	assert.Nil(t, c.MatchedDevice(d))

	c.Devices = append(c.Devices, DeviceConfig{MatchRule: MatchRule{Name: "moo"}})
	got := c.MatchedDevice(d)
	require.NotNil(t, got)
	assert.Equal(t, "moo", got.MatchRule.Name)
}

func TestMatchedDeviceNonPointerDevice(t *testing.T) {
	d := pointerevent.DeviceInfo{Name: "moo", Pointer: false, Gesture: false}
	c := Config{Devices: []DeviceConfig{{MatchRule: MatchRule{Name: "moo"}}}}
	assert.Nil(t, c.MatchedDevice(d))
}

func TestMatchedDeviceGestureDevice(t *testing.T) {
	d := pointerevent.DeviceInfo{Name: "moo", Pointer: true, Gesture: true}
	c := Config{Devices: []DeviceConfig{{MatchRule: MatchRule{Name: "moo"}}}}
	assert.Nil(t, c.MatchedDevice(d))
}

func TestParseButtonRejectsNonBtnPrefix(t *testing.T) {
	_, err := ParseButton("KEY_A")
	assert.Error(t, err)
}

func TestParseButtonAcceptsKnownName(t *testing.T) {
	b, err := ParseButton("BTN_LEFT")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x110), b.Code)
}

func TestNewScrollFactorRejectsNonPositive(t *testing.T) {
	_, err := NewScrollFactor(0)
	assert.Error(t, err)

	_, err = NewScrollFactor(-1)
	assert.Error(t, err)
}

func TestNewScrollFactorDefault(t *testing.T) {
	assert.EqualValues(t, 1.0, DefaultScrollFactor)
}

func TestDeviceConfigMapButtonIdentityWithoutMapping(t *testing.T) {
	var c DeviceConfig
	assert.Equal(t, uint16(0x110), c.MapButton(0x110))
}

func TestDeviceConfigMapButtonAppliesMapping(t *testing.T) {
	c := DeviceConfig{ButtonMapping: map[Button]Button{
		{Code: 0x113}: {Code: 0x116}, // BTN_SIDE -> BTN_BACK
	}}
	assert.Equal(t, uint16(0x116), c.MapButton(0x113))
	assert.Equal(t, uint16(0x110), c.MapButton(0x110))
}
