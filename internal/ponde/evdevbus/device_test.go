package evdevbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAccelSpeedRejectsOutOfRange(t *testing.T) {
	s := NewDeviceState()
	assert.Error(t, s.SetAccelSpeed(2))
	assert.Error(t, s.SetAccelSpeed(-2))
	require.NoError(t, s.SetAccelSpeed(0.5))
	assert.InDelta(t, 1.5, s.accelMultiplier, 1e-9)
}

func TestMapButtonCodeSwapsWhenLeftHanded(t *testing.T) {
	s := NewDeviceState()
	require.NoError(t, s.SetLeftHanded(true))
	assert.Equal(t, uint16(btnRight), s.mapButtonCode(btnLeft))
	assert.Equal(t, uint16(btnLeft), s.mapButtonCode(btnRight))
	assert.Equal(t, uint16(0x113), s.mapButtonCode(0x113))
}

func TestMapButtonCodeIdentityWhenNotLeftHanded(t *testing.T) {
	s := NewDeviceState()
	assert.Equal(t, uint16(btnLeft), s.mapButtonCode(btnLeft))
}

func TestApplyRotationNinetyDegrees(t *testing.T) {
	s := NewDeviceState()
	require.NoError(t, s.SetRotationAngle(90))
	dx, dy := s.applyRotation(1, 0)
	assert.InDelta(t, 0, dx, 1e-9)
	assert.InDelta(t, 1, dy, 1e-9)
}

func TestApplyRotationZeroIsIdentity(t *testing.T) {
	s := NewDeviceState()
	dx, dy := s.applyRotation(3, -4)
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -4.0, dy)
}

func TestTrackChordEmulatesMiddleClick(t *testing.T) {
	s := NewDeviceState()
	require.NoError(t, s.SetMiddleEmulation(true))

	code, pressed, suppress := s.trackChord(btnLeft, true)
	assert.False(t, suppress)
	assert.Equal(t, uint16(btnLeft), code)
	assert.True(t, pressed)

	code, pressed, suppress = s.trackChord(btnRight, true)
	assert.False(t, suppress)
	assert.Equal(t, uint16(btnMiddle), code)
	assert.True(t, pressed)

	_, _, suppress = s.trackChord(btnLeft, false)
	assert.True(t, suppress)

	code, pressed, suppress = s.trackChord(btnRight, false)
	assert.False(t, suppress)
	assert.Equal(t, uint16(btnMiddle), code)
	assert.False(t, pressed)
}

func TestTrackChordPassthroughWithoutMiddleEmulation(t *testing.T) {
	s := NewDeviceState()
	code, pressed, suppress := s.trackChord(btnLeft, true)
	assert.False(t, suppress)
	assert.Equal(t, uint16(btnLeft), code)
	assert.True(t, pressed)
}

func TestScrollButtonEventTogglesHoldMode(t *testing.T) {
	s := NewDeviceState()
	require.NoError(t, s.SetScrollButton(btnMiddle))

	assert.True(t, s.scrollButtonEvent(btnMiddle, true))
	assert.True(t, s.scrollModeActive)

	assert.True(t, s.scrollButtonEvent(btnMiddle, false))
	assert.False(t, s.scrollModeActive)

	assert.False(t, s.scrollButtonEvent(btnLeft, true))
}

func TestScrollButtonEventLockToggleMode(t *testing.T) {
	s := NewDeviceState()
	require.NoError(t, s.SetScrollButton(btnMiddle))
	s.scrollLocked = true

	s.scrollButtonEvent(btnMiddle, true)
	assert.True(t, s.scrollModeActive)

	s.scrollButtonEvent(btnMiddle, false)
	assert.True(t, s.scrollModeActive) // release doesn't end locked mode

	s.scrollButtonEvent(btnMiddle, true)
	assert.False(t, s.scrollModeActive) // second press toggles off
}
