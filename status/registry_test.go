package status

import (
	"strings"
	"testing"
)

func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyTicks)
	b := r.Ints.Get(KeyTicks)
	if a != b {
		t.Error("Expected the same pointer for the same key")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("Expected 3, got %d", b.Load())
	}
	if !r.Ints.Has(KeyTicks) || r.Ints.Has(KeyFPS) {
		t.Error("Expected Has to report only registered keys")
	}
	if r.Ints.Len() != 1 || r.TotalCount() != 1 {
		t.Errorf("Expected one registered metric, got %d of %d", r.Ints.Len(), r.TotalCount())
	}
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	if l.Load() != "" {
		t.Errorf("Expected empty zero value, got %q", l.Load())
	}
	id := "0b9c6a52-3f1e-4c5e-9d2a-7f4e1b8c2d10"
	l.Store(id + "-rematch")
	if l.Load() != id {
		t.Errorf("Expected a match id to fit exactly, got %q", l.Load())
	}
	l.Store(strings.Repeat("x", MaxLabelLen+5))
	if len(l.Load()) != MaxLabelLen {
		t.Errorf("Expected length %d, got %d", MaxLabelLen, len(l.Load()))
	}
}

func TestGaugeZeroAndSet(t *testing.T) {
	var g Gauge
	if g.Load() != 0 {
		t.Errorf("Expected zero value 0, got %f", g.Load())
	}
	g.Set(-25.5)
	if g.Load() != -25.5 {
		t.Errorf("Expected -25.5, got %f", g.Load())
	}
}

func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get(KeyAudio).Store(true)
	r.Ints.Get(KeyTicks).Store(42)
	r.Ints.Get(KeyDeviceDropped).Store(1)
	r.Floats.Get(KeyFPS).Set(25.96)
	r.Strings.Get(KeyState).Store("playing")

	snap := r.Snapshot()
	want := []Metric{
		{KeyAudio, "true"},
		{KeyDeviceDropped, "1"},
		{KeyTicks, "42"},
		{KeyFPS, "26.0"},
		{KeyState, "playing"},
	}
	if len(snap) != len(want) {
		t.Fatalf("Expected %d metrics, got %d", len(want), len(snap))
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("Metric %d: expected %v, got %v", i, want[i], snap[i])
		}
	}
}
