// Package config loads the game configuration from a YAML or TOML file,
// a .env file next to it, and TUZBOLIN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tuzbolin/engine"
	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/parameter"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownFormat = errors.New("unknown configuration format")
)

// Wiimote report modes
const (
	ModeIR     = "ir"
	ModeMotion = "motion"
)

// Keymap names the five keys of one keyboard player
type Keymap struct {
	Up    string `yaml:"up" toml:"up"`
	Down  string `yaml:"down" toml:"down"`
	Left  string `yaml:"left" toml:"left"`
	Right string `yaml:"right" toml:"right"`
	Boost string `yaml:"boost" toml:"boost"`
}

// Game holds the match rules
type Game struct {
	Goals    int      `yaml:"goals" toml:"goals"`
	Time     Duration `yaml:"time" toml:"time"`
	WaitTime Duration `yaml:"wait_time" toml:"wait_time"`
}

type Config struct {
	// NumWiimotes device controllers take the first slots; keyboards fill the rest
	NumWiimotes int      `yaml:"num_wiimotes" toml:"num_wiimotes"`
	Wiimotes    []string `yaml:"wm" toml:"wm"`
	WiimoteMode string   `yaml:"wm_mode" toml:"wm_mode"`
	// WiimoteTraces replays a recorded trace instead of a live device, by wiimote index
	WiimoteTraces []string `yaml:"wm_trace" toml:"wm_trace"`

	ControllerSequence []int     `yaml:"controller_sequence" toml:"controller_sequence"`
	IRCalibration      []float64 `yaml:"ir_calibration" toml:"ir_calibration"`

	PenguinsPerBar  []int    `yaml:"penguins_x_bars" toml:"penguins_x_bars"`
	ControllerOrder []int    `yaml:"controller_order" toml:"controller_order"`
	Keymaps         []Keymap `yaml:"keymaps" toml:"keymaps"`
	KeyHold         Duration `yaml:"key_hold" toml:"key_hold"`

	Sound        bool    `yaml:"sound" toml:"sound"`
	AmbientSound bool    `yaml:"ambient_sound" toml:"ambient_sound"`
	Debug        bool    `yaml:"debug" toml:"debug"`
	FPS          float64 `yaml:"fps" toml:"fps"`

	Game Game `yaml:"game" toml:"game"`
}

func Default() *Config {
	return &Config{
		WiimoteMode:     ModeIR,
		PenguinsPerBar:  append([]int(nil), parameter.DefaultPenguinsPerBar...),
		ControllerOrder: []int{0, 0, 1, 0, 1, 0, 1, 1},
		KeyHold:         Duration{parameter.DefaultKeyHold},
		Sound:           true,
		AmbientSound:    true,
		FPS:             parameter.DefaultFPS,
		Game: Game{
			Goals:    parameter.DefaultGoalTarget,
			Time:     Duration{parameter.DefaultMatchTime},
			WaitTime: Duration{parameter.DefaultWaitTime},
		},
	}
}

// Load reads path over the defaults, applies the environment and validates the result
// An empty path loads the defaults and a .env from the working directory
func Load(path string) (*Config, error) {
	cfg := Default()
	envFile := ".env"
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}

	// godotenv never overrides variables already set in the environment
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = Decode(data, FormatYAML, c)
	case ".toml":
		err = Decode(data, FormatTOML, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
)

// Decode unmarshals data over the values already in cfg
func Decode(data []byte, format Format, cfg *Config) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
	default:
		return ErrUnknownFormat
	}
	return nil
}

// Validate checks ranges and cross-field consistency
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case c.FPS <= 0:
		return invalid("fps must be positive, got %v", c.FPS)
	case c.NumWiimotes < 0 || c.NumWiimotes > parameter.NumControllers:
		return invalid("num_wiimotes must be in [0, %d], got %d", parameter.NumControllers, c.NumWiimotes)
	case len(c.Wiimotes) < c.NumWiimotes:
		return invalid("%d wiimotes need %d addresses in wm, got %d", c.NumWiimotes, c.NumWiimotes, len(c.Wiimotes))
	case c.WiimoteMode != ModeIR && c.WiimoteMode != ModeMotion:
		return invalid("wm_mode must be %q or %q, got %q", ModeIR, ModeMotion, c.WiimoteMode)
	case len(c.IRCalibration) != 0 && len(c.IRCalibration) != 2:
		return invalid("ir_calibration must be empty or [min, max]")
	case len(c.IRCalibration) == 2 && c.IRCalibration[0] >= c.IRCalibration[1]:
		return invalid("ir_calibration min %v must be below max %v", c.IRCalibration[0], c.IRCalibration[1])
	case len(c.PenguinsPerBar) != parameter.NumBars:
		return invalid("penguins_x_bars needs %d entries, got %d", parameter.NumBars, len(c.PenguinsPerBar))
	case len(c.ControllerOrder) != parameter.NumBars:
		return invalid("controller_order needs %d entries, got %d", parameter.NumBars, len(c.ControllerOrder))
	case c.Game.Goals <= 0:
		return invalid("game.goals must be positive, got %d", c.Game.Goals)
	case c.Game.Time.Duration < 0 || c.Game.WaitTime.Duration < 0:
		return invalid("game durations must not be negative")
	case c.KeyHold.Duration <= 0:
		return invalid("key_hold must be positive")
	}

	for i, n := range c.PenguinsPerBar {
		if n < 1 || n > parameter.MaxPenguinsPerBar {
			return invalid("bar %d: %d penguins, want 1 to %d", i, n, parameter.MaxPenguinsPerBar)
		}
	}
	for i, idx := range c.ControllerOrder {
		if idx < 0 || idx >= parameter.NumControllers {
			return invalid("bar %d: controller %d out of range", i, idx)
		}
	}
	for i, s := range c.ControllerSequence {
		if s < 0 || s >= parameter.SubControllers {
			return invalid("controller_sequence[%d]: point pair %d out of range", i, s)
		}
	}
	if _, err := c.KeyMaps(); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// KeyMaps resolves one key map per keyboard slot; slots without a configured map use the arrows
func (c *Config) KeyMaps() ([]input.KeyMap, error) {
	n := parameter.NumControllers - c.NumWiimotes
	out := make([]input.KeyMap, max(n, 0))
	for i := range out {
		if i >= len(c.Keymaps) {
			out[i] = input.DefaultKeyMap()
			continue
		}
		k := c.Keymaps[i]
		km, err := input.ParseKeyMap(k.Up, k.Down, k.Left, k.Right, k.Boost)
		if err != nil {
			return nil, fmt.Errorf("keymaps[%d]: %w", i, err)
		}
		out[i] = km
	}
	return out, nil
}

// Calibration returns the fixed IR distance range, nil for auto-calibration
func (c *Config) Calibration() *[2]float64 {
	if len(c.IRCalibration) != 2 {
		return nil
	}
	return &[2]float64{c.IRCalibration[0], c.IRCalibration[1]}
}

// Trace returns the replay trace configured for wiimote i, empty for a live device
func (c *Config) Trace(i int) string {
	if i < len(c.WiimoteTraces) {
		return c.WiimoteTraces[i]
	}
	return ""
}

// Settings converts the match rules for the engine
func (c *Config) Settings() engine.Settings {
	return engine.Settings{
		FPS:             c.FPS,
		GoalTarget:      c.Game.Goals,
		MatchTime:       c.Game.Time.Duration,
		WaitTime:        c.Game.WaitTime.Duration,
		PenguinsPerBar:  append([]int(nil), c.PenguinsPerBar...),
		ControllerOrder: append([]int(nil), c.ControllerOrder...),
		Debug:           c.Debug,
	}
}
