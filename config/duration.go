package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration syntax ("3m", "1500ms") or a bare number of milliseconds
type Duration struct {
	time.Duration
}

func Millis(ms int64) Duration { return Duration{time.Duration(ms) * time.Millisecond} }

func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Millis(ms), nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return Duration{time.Duration(ms * float64(time.Millisecond))}, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, fmt.Errorf("duration %q: %w", s, err)
	}
	return Duration{d}, nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML reads plain scalars so that unquoted numbers are milliseconds
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}
