// Package app wires the event bus to the sink: the EventLoop spec.md
// §4.5 describes. Its dispatch rules (device-added vs pointer vs other,
// per-event-error recovery, fatal startup/poll errors) are the Go
// generalization of the teacher's processEvents loop, adapted from a
// single hardcoded trackball device and two-axis scroll sink to
// multi-device dispatch over the full pointer-event/translator surface.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/buzztaiki/ponde/internal/ponde/config"
	"github.com/buzztaiki/ponde/internal/ponde/evdevbus"
	"github.com/buzztaiki/ponde/internal/ponde/pointerevent"
	"github.com/buzztaiki/ponde/internal/ponde/sink"
)

// Bus is the subset of evdevbus.Bus the loop depends on, narrowed to
// an interface so tests can substitute a fake.
type Bus interface {
	Discover() ([]pointerevent.DeviceAdded, error)
	IsSink(pointerevent.DeviceInfo) bool
	Configure(sysname string, cfg *config.DeviceConfig) error
	Grab(sysname string) error
}

// Cursor is the subset of evdevbus.Next the loop polls for the next
// classified event (device hot-plug or pointer event).
type Cursor interface {
	Poll() (evdevbus.PollResult, error)
}

// Sink is the subset of sink.Device the loop emits translated events
// through.
type Sink interface {
	Emit(batch []sink.InputEvent) error
}

// App is the running event loop: bus + cursor + sink + config, plus
// the per-sysname matched-config cache populated as devices are added.
type App struct {
	bus    Bus
	cursor Cursor
	sink   Sink
	cfg    *config.Config
	logger *log.Logger

	matched map[string]*config.DeviceConfig
}

// New builds an App ready to Run.
func New(bus Bus, cursor Cursor, sinkDev Sink, cfg *config.Config, logger *log.Logger) *App {
	return &App{
		bus:     bus,
		cursor:  cursor,
		sink:    sinkDev,
		cfg:     cfg,
		logger:  logger,
		matched: make(map[string]*config.DeviceConfig),
	}
}

// Start runs the startup sequence: discover devices, apply
// configuration, and grab every matched one. Only a discovery failure
// is returned (fatal); configuration and grab failures are logged per
// device and do not stop startup.
func (a *App) Start() error {
	added, err := a.bus.Discover()
	if err != nil {
		return fmt.Errorf("discover devices: %w", err)
	}
	for _, dev := range added {
		a.handleDeviceAdded(dev)
	}
	return nil
}

// Run drives the poll loop until ctx is canceled or a fatal error
// occurs. Per-event errors are logged and do not stop the loop.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		result, err := a.cursor.Poll()
		if err != nil {
			return fmt.Errorf("poll: %w", err)
		}

		if result.Added != nil {
			a.handleDeviceAdded(*result.Added)
			continue
		}

		ev := *result.Pointer
		if a.bus.IsSink(ev.Info) {
			continue
		}
		cfg, matched := a.matched[ev.Sysname]
		if !matched {
			continue
		}

		batch, err := sinkTranslate(ev.Event, cfg)
		if err != nil {
			a.logger.Error("translate failed", "device", ev.Sysname, "err", err)
			continue
		}
		if err := a.sink.Emit(batch); err != nil {
			a.logger.Error("emit failed", "device", ev.Sysname, "err", err)
			continue
		}
	}
}

func (a *App) handleDeviceAdded(dev pointerevent.DeviceAdded) {
	if a.bus.IsSink(dev.Info) {
		return
	}
	cfg := a.cfg.MatchedDevice(dev.Info)
	if cfg == nil {
		return
	}
	if err := a.bus.Configure(dev.Sysname, cfg); err != nil {
		a.logger.Error("device unconfigurable", "device", dev.Sysname, "err", err)
		return
	}
	a.matched[dev.Sysname] = cfg
	if err := a.bus.Grab(dev.Sysname); err != nil {
		a.logger.Error("grab failed", "device", dev.Sysname, "err", err)
	}
}

// sinkTranslate is a thin indirection so tests can substitute a fake
// translator without depending on the real sink package's uinput code.
var sinkTranslate = func(ev pointerevent.Event, cfg *config.DeviceConfig) ([]sink.InputEvent, error) {
	return sink.Translate(ev, cfg)
}
