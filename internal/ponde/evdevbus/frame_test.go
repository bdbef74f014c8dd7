package evdevbus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzztaiki/ponde/internal/ponde/pointerevent"
)

func TestFrameFlushMotion(t *testing.T) {
	var fr frame
	fr.addRel(relX, 3)
	fr.addRel(relY, -2)

	state := NewDeviceState()
	events := fr.flush(state)
	require.Len(t, events, 1)
	// The default adaptive profile boosts the delta by 1 + |(3,-2)|*0.02.
	mult := 1 + math.Hypot(3, -2)*0.02
	motion, ok := events[0].(pointerevent.Motion)
	require.True(t, ok)
	assert.InDelta(t, 3*mult, motion.DX, 1e-9)
	assert.InDelta(t, -2*mult, motion.DY, 1e-9)
}

func TestFrameFlushButtonIdentityWithoutConfig(t *testing.T) {
	var fr frame
	fr.addKey(btnLeft, true)

	state := NewDeviceState()
	events := fr.flush(state)
	require.Len(t, events, 1)
	assert.Equal(t, pointerevent.Button{Code: btnLeft, State: pointerevent.ButtonPressed}, events[0])
}

func TestFrameFlushScrollWheel(t *testing.T) {
	var fr frame
	fr.addRel(relWheel, 1)
	fr.addRel(relWheelHiRes, 120)

	state := NewDeviceState()
	events := fr.flush(state)
	require.Len(t, events, 1)
	wheel, ok := events[0].(pointerevent.ScrollWheel)
	require.True(t, ok)
	assert.True(t, wheel.HasAxis(pointerevent.AxisVertical))
	assert.False(t, wheel.HasAxis(pointerevent.AxisHorizontal))
	assert.Equal(t, 1.0, wheel.ScrollValue(pointerevent.AxisVertical))
	assert.Equal(t, 120.0, wheel.ScrollValueV120(pointerevent.AxisVertical))
}

func TestFrameFlushMotionRoutedToScrollWhenButtonHeld(t *testing.T) {
	var fr frame
	fr.addRel(relX, 30)
	fr.addRel(relY, -15)

	state := NewDeviceState()
	require.NoError(t, state.SetScrollButton(btnMiddle))
	state.scrollModeActive = true

	events := fr.flush(state)
	require.Len(t, events, 1)
	_, ok := events[0].(pointerevent.ScrollContinuous)
	assert.True(t, ok)
}

func TestFrameFlushEmptyFrameProducesNoEvents(t *testing.T) {
	var fr frame
	state := NewDeviceState()
	assert.Empty(t, fr.flush(state))
}
