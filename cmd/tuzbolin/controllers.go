package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tuzbolin/config"
	"github.com/lixenwraith/tuzbolin/device"
	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/status"
)

// Replaced in tests
var (
	openWiimote = openDevice
	createTrace = os.Create
)

// controllerSet is the controller list handed to the engine and the devices behind it
type controllerSet struct {
	controllers []input.Controller
	devices     []device.Device
}

// Close releases every device; errors are joined
func (s *controllerSet) Close() error {
	var err error
	for _, d := range s.devices {
		err = errors.Join(err, d.Close())
	}
	return err
}

// buildControllers fills the controller slots: wiimotes first, keyboards for the rest
// A wiimote with a configured trace replays it; otherwise no driver is available for it
// A non-empty recordDir tees every wiimote into a trace file there
func buildControllers(cfg *config.Config, keys *input.KeyState, reg *status.Registry, recordDir string) (*controllerSet, error) {
	dropped := reg.Ints.Get(status.KeyDeviceDropped)
	set := &controllerSet{}

	if recordDir != "" {
		if err := os.MkdirAll(recordDir, 0755); err != nil {
			return nil, fmt.Errorf("record directory: %w", err)
		}
	}

	for i := range cfg.NumWiimotes {
		dev, err := openWiimote(cfg, i, dropped)
		if err != nil {
			set.Close()
			return nil, err
		}
		if recordDir != "" {
			rec, err := recordDevice(dev, i, recordDir, dropped)
			if err != nil {
				dev.Close()
				set.Close()
				return nil, err
			}
			dev = rec
		}
		set.devices = append(set.devices, dev)

		switch cfg.WiimoteMode {
		case config.ModeMotion:
			set.controllers = append(set.controllers, input.NewMotionController(dev, i, cfg.FPS))
		default:
			set.controllers = append(set.controllers, input.NewMultiPointController(dev, cfg.ControllerSequence, cfg.Calibration()))
		}
	}

	keymaps, err := cfg.KeyMaps()
	if err != nil {
		set.Close()
		return nil, err
	}
	for _, km := range keymaps {
		set.controllers = append(set.controllers, input.NewKeyboard(keys, km))
	}
	return set, nil
}

func openDevice(cfg *config.Config, i int, dropped *atomic.Int64) (device.Device, error) {
	addr := cfg.Wiimotes[i]
	trace := cfg.Trace(i)
	if trace == "" {
		log.Printf("wiimote %d: no driver for %s", i, addr)
		return device.NewUnavailable(addr), nil
	}
	replay, err := device.OpenReplay(trace, true, dropped)
	if err != nil {
		return nil, fmt.Errorf("wiimote %d: %w", i, err)
	}
	log.Printf("wiimote %d: replaying %s (%d reports)", i, trace, replay.Len())
	return replay, nil
}

func recordDevice(dev device.Device, i int, dir string, dropped *atomic.Int64) (device.Device, error) {
	name := fmt.Sprintf("wiimote%d-%s.trace", i, time.Now().Format("20060102-150405"))
	f, err := createTrace(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("wiimote %d: record: %w", i, err)
	}
	log.Printf("wiimote %d: recording to %s", i, f.Name())
	return device.NewRecorder(dev, f, dropped), nil
}
