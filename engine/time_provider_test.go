package engine

import (
	"sync"
	"testing"
	"time"
)

func TestTimeProviderIsMonotonic(t *testing.T) {
	p := NewTimeProvider()

	t1 := p.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := p.Now()

	if d := t2.Sub(t1); d < 5*time.Millisecond {
		t.Errorf("Expected at least 5ms between readings, got %v", d)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, mock.Now())
	}

	mock.Advance(time.Minute)
	mock.AdvanceFrame(25)
	want := start.Add(time.Minute + 40*time.Millisecond)
	if !mock.Now().Equal(want) {
		t.Errorf("Expected %v, got %v", want, mock.Now())
	}

	later := start.Add(time.Hour)
	mock.SetTime(later)
	if !mock.Now().Equal(later) {
		t.Errorf("Expected %v after SetTime, got %v", later, mock.Now())
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(800 * time.Millisecond)
	if !mock.Now().Equal(want) {
		t.Errorf("Expected %v, got %v", want, mock.Now())
	}
}
