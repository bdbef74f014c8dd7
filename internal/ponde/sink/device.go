// Package sink implements the synthetic virtual pointer device: its
// uinput-backed construction (Device) and the translation from
// pointerevent.Event to evdev InputEvents (the SinkEvent translator,
// Translate).
//
// The construction sequence is adapted from the teacher's hand-rolled
// uinput ioctl calls, switched to the UI_DEV_SETUP ioctl (kernel >=
// 4.5) the way other_examples' bnema-uinputd-go does, and generalized
// from the teacher's fixed single-button/two-axis device to the full
// BTN_0..BTN_THUMBR / REL_X..REL_HWHEEL_HI_RES ranges spec.md §4.3
// requires. See DESIGN.md.
package sink

import (
	"fmt"
	"os"

	"github.com/buzztaiki/ponde/internal/ponde/apperr"
)

// Name is the sink's fixed identity (spec.md §6), used by the event
// loop to filter out the sink's own echo.
const Name = "ponde"

// Device is the synthetic virtual pointer device. It owns the open
// /dev/uinput file descriptor for the process lifetime.
type Device struct {
	file *os.File
}

// Open creates and registers the virtual pointer device with the
// kernel. The returned Device must be closed (via Close) to destroy
// the uinput node; in practice the process runs until killed and the
// kernel reclaims it on exit regardless.
func Open() (*Device, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|os.O_NONBLOCK, 0)
	if err != nil {
		return nil, apperr.IO(fmt.Errorf("open /dev/uinput: %w", err))
	}

	d := &Device{file: f}
	if err := d.setup(); err != nil {
		_ = f.Close()
		return nil, apperr.IO(err)
	}
	return d, nil
}

func (d *Device) setup() error {
	fd := d.file.Fd()

	if err := ioctlSet(fd, uiSetEvBit, uintptr(evKey)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT EV_KEY: %w", err)
	}
	for code := btn0; code <= btnThumbR; code++ {
		if err := ioctlSet(fd, uiSetKeyBit, uintptr(code)); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT 0x%x: %w", code, err)
		}
	}

	if err := ioctlSet(fd, uiSetEvBit, uintptr(evRel)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT EV_REL: %w", err)
	}
	for code := relX; code <= relHWheelHiRes; code++ {
		if err := ioctlSet(fd, uiSetRelBit, uintptr(code)); err != nil {
			return fmt.Errorf("UI_SET_RELBIT 0x%x: %w", code, err)
		}
	}

	var setup uiSetup
	copy(setup.Name[:], Name)
	setup.ID = inputID{Bustype: 0x03, Vendor: 0x0001, Product: 0x0001, Version: 1}
	if err := ioctlPtr(fd, uiDevSetup, pointerOf(&setup)); err != nil {
		return fmt.Errorf("UI_DEV_SETUP: %w", err)
	}

	if err := ioctlSet(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

// Close destroys the virtual device and releases its file descriptor.
func (d *Device) Close() error {
	fd := d.file.Fd()
	_ = ioctlSet(fd, uiDevDestroy, 0)
	return d.file.Close()
}

// Emit writes a batch of InputEvents to the device, followed by a
// single EV_SYN/SYN_REPORT so the batch is delivered atomically to
// readers of the resulting device node.
func (d *Device) Emit(batch []InputEvent) error {
	if len(batch) == 0 {
		return nil
	}
	for _, ev := range batch {
		if err := d.write(ev.typ, ev.code, ev.value); err != nil {
			return apperr.IO(fmt.Errorf("write %s: %w", ev, err))
		}
	}
	return d.syn()
}

func (d *Device) syn() error {
	if err := d.write(evSyn, synReport, 0); err != nil {
		return apperr.IO(fmt.Errorf("write SYN_REPORT: %w", err))
	}
	return nil
}

func (d *Device) write(typ, code uint16, value int32) error {
	ev := wireEvent{Type: typ, Code: code, Value: value}
	return writeStruct(d.file, &ev)
}
