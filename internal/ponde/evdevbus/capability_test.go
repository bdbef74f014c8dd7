package evdevbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceInfoMouseIsPointerNotGesture(t *testing.T) {
	caps := map[int][]int{evRel: {relX, relY}}
	info := deviceInfo("Logitech USB Trackball", caps)
	assert.True(t, info.Pointer)
	assert.False(t, info.Gesture)
	assert.True(t, info.IsMouse())
}

func TestDeviceInfoTouchpadIsGesture(t *testing.T) {
	caps := map[int][]int{evAbs: {absX, absY, absMTSlot}}
	info := deviceInfo("SynPS/2 Touchpad", caps)
	assert.True(t, info.Pointer)
	assert.True(t, info.Gesture)
	assert.False(t, info.IsMouse())
}

func TestDeviceInfoKeyboardIsNeither(t *testing.T) {
	caps := map[int][]int{evKey: {0x1e, 0x1f}}
	info := deviceInfo("AT Translated Set 2 keyboard", caps)
	assert.False(t, info.Pointer)
	assert.False(t, info.IsMouse())
}
