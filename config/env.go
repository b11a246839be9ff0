package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TUZBOLIN_"

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides scalar options from the environment
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	bad := func(name, v string, err error) error {
		return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, name, v, err)
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"SOUND", &c.Sound},
		{"AMBIENT_SOUND", &c.AmbientSound},
		{"DEBUG", &c.Debug},
	}
	for _, b := range bools {
		if v, ok := get(b.name); ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return bad(b.name, v, err)
			}
			*b.dst = parsed
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"NUM_WIIMOTES", &c.NumWiimotes},
		{"GOALS", &c.Game.Goals},
	}
	for _, i := range ints {
		if v, ok := get(i.name); ok {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return bad(i.name, v, err)
			}
			*i.dst = parsed
		}
	}

	durations := []struct {
		name string
		dst  *Duration
	}{
		{"TIME", &c.Game.Time},
		{"WAIT_TIME", &c.Game.WaitTime},
		{"KEY_HOLD", &c.KeyHold},
	}
	for _, d := range durations {
		if v, ok := get(d.name); ok {
			parsed, err := ParseDuration(v)
			if err != nil {
				return bad(d.name, v, err)
			}
			*d.dst = parsed
		}
	}

	if v, ok := get("FPS"); ok {
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("FPS", v, err)
		}
		c.FPS = fps
	}
	if v, ok := get("WM_MODE"); ok {
		c.WiimoteMode = strings.ToLower(v)
	}
	if v, ok := get("WM"); ok {
		c.Wiimotes = splitList(v)
	}
	if v, ok := get("WM_TRACE"); ok {
		c.WiimoteTraces = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
