package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/tuzbolin/config"
	"github.com/lixenwraith/tuzbolin/device"
	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/status"
)

func TestBuildControllersKeyboardsOnly(t *testing.T) {
	cfg := config.Default()
	keys := input.NewKeyState(time.Second)

	set, err := buildControllers(cfg, keys, status.NewRegistry(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer set.Close()

	if len(set.controllers) != parameter.NumControllers {
		t.Fatalf("Expected %d controllers, got %d", parameter.NumControllers, len(set.controllers))
	}
	for i, c := range set.controllers {
		if _, ok := c.(*input.Keyboard); !ok {
			t.Errorf("Controller %d: Expected *input.Keyboard, got %T", i, c)
		}
	}
	if len(set.devices) != 0 {
		t.Errorf("Expected no devices, got %d", len(set.devices))
	}
}

func TestBuildControllersWiimoteModes(t *testing.T) {
	tests := []struct {
		mode string
		want func(input.Controller) bool
	}{
		{config.ModeIR, func(c input.Controller) bool {
			_, ok := c.(*input.MultiPointController)
			return ok
		}},
		{config.ModeMotion, func(c input.Controller) bool {
			_, ok := c.(*input.MotionController)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := config.Default()
			cfg.NumWiimotes = 2
			cfg.Wiimotes = []string{"00:1F:32:00:00:01", "00:1F:32:00:00:02"}
			cfg.WiimoteMode = tt.mode

			set, err := buildControllers(cfg, input.NewKeyState(time.Second), status.NewRegistry(), "")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			defer set.Close()

			if len(set.controllers) != parameter.NumControllers {
				t.Fatalf("Expected %d controllers, got %d", parameter.NumControllers, len(set.controllers))
			}
			for i := range 2 {
				if !tt.want(set.controllers[i]) {
					t.Errorf("Controller %d: unexpected type %T", i, set.controllers[i])
				}
				if _, ok := set.devices[i].(*device.Unavailable); !ok {
					t.Errorf("Device %d: Expected *device.Unavailable, got %T", i, set.devices[i])
				}
			}
			for i := 2; i < len(set.controllers); i++ {
				if _, ok := set.controllers[i].(*input.Keyboard); !ok {
					t.Errorf("Controller %d: Expected *input.Keyboard, got %T", i, set.controllers[i])
				}
			}
		})
	}
}

func TestBuildControllersRecords(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	cfg := config.Default()
	cfg.NumWiimotes = 1
	cfg.Wiimotes = []string{"00:1F:32:00:00:01"}

	set, err := buildControllers(cfg, input.NewKeyState(time.Second), status.NewRegistry(), dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := set.devices[0].(*device.Recorder); !ok {
		t.Errorf("Expected *device.Recorder, got %T", set.devices[0])
	}
	if err := set.Close(); err != nil {
		t.Errorf("Expected clean close, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected record directory, got %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 trace file, got %d", len(entries))
	}
}

func TestBuildControllersRecordFailureClosesDevice(t *testing.T) {
	var opened []*device.Scripted
	openWiimote = func(_ *config.Config, i int, dropped *atomic.Int64) (device.Device, error) {
		d := device.NewScripted(fmt.Sprintf("00:1F:32:00:00:0%d", i+1), 0, dropped)
		opened = append(opened, d)
		return d, nil
	}
	fail := errors.New("disk full")
	createTrace = func(string) (*os.File, error) { return nil, fail }
	t.Cleanup(func() {
		openWiimote = openDevice
		createTrace = os.Create
	})

	cfg := config.Default()
	cfg.NumWiimotes = 1
	cfg.Wiimotes = []string{"00:1F:32:00:00:01"}

	_, err := buildControllers(cfg, input.NewKeyState(time.Second), status.NewRegistry(), t.TempDir())
	if !errors.Is(err, fail) {
		t.Fatalf("Expected the record error, got %v", err)
	}
	if len(opened) != 1 {
		t.Fatalf("Expected 1 opened device, got %d", len(opened))
	}
	// A closed scripted device refuses to associate
	if opened[0].Associate() {
		t.Error("Expected the opened device closed after the record failure")
	}
}

func TestBuildControllersMissingTrace(t *testing.T) {
	cfg := config.Default()
	cfg.NumWiimotes = 1
	cfg.Wiimotes = []string{"00:1F:32:00:00:01"}
	cfg.WiimoteTraces = []string{filepath.Join(t.TempDir(), "missing.trace")}

	_, err := buildControllers(cfg, input.NewKeyState(time.Second), status.NewRegistry(), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Chdir(t.TempDir())

	if got := configPath(defaultConfigPath); got != "" {
		t.Errorf("Expected missing default to fall back to built-ins, got %q", got)
	}
	if got := configPath("other.toml"); got != "other.toml" {
		t.Errorf("Expected explicit path kept, got %q", got)
	}
	if err := os.WriteFile(defaultConfigPath, []byte("fps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := configPath(defaultConfigPath); got != defaultConfigPath {
		t.Errorf("Expected existing default kept, got %q", got)
	}
}
