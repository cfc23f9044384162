package clock

import (
	"errors"
	"testing"
	"time"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) add(d time.Duration) { f.t = f.t.Add(d) }

func newTestClock() (*Clock, *fakeNow) {
	f := &fakeNow{t: time.Date(2025, 12, 8, 12, 0, 0, 0, time.UTC)}
	return New(WithNow(f.now)), f
}

func TestClock_Time(t *testing.T) {
	c, f := newTestClock()

	f.add(2 * time.Second)
	if got := c.Time(); got != 2*time.Second {
		t.Errorf("Time() = %v, want 2s", got)
	}

	if err := c.SetScale(0.5); err != nil {
		t.Fatalf("SetScale() error = %v", err)
	}
	f.add(4 * time.Second)
	if got := c.Time(); got != 4*time.Second {
		t.Errorf("Time() = %v, want 4s", got)
	}
	if got := c.Seconds(); got != 4 {
		t.Errorf("Seconds() = %v, want 4", got)
	}
}

func TestClock_PauseResume(t *testing.T) {
	c, f := newTestClock()

	f.add(time.Second)
	if !c.Pause() {
		t.Fatal("Pause() = false on running clock")
	}
	if c.Pause() {
		t.Error("Pause() = true on paused clock")
	}
	if !c.Paused() {
		t.Error("Paused() = false")
	}

	f.add(10 * time.Second)
	if err := c.SetScale(3); err != nil {
		t.Fatal(err)
	}
	if got := c.Time(); got != time.Second {
		t.Errorf("Time() while paused = %v, want 1s", got)
	}

	if !c.Resume() || c.Resume() {
		t.Error("Resume() should succeed once")
	}
	f.add(time.Second)
	if got := c.Time(); got != 4*time.Second {
		t.Errorf("Time() after resume = %v, want 4s", got)
	}
	if got := c.Scale(); got != 3 {
		t.Errorf("Scale() = %v, want 3", got)
	}
}

func TestClock_SetScaleNegative(t *testing.T) {
	c, _ := newTestClock()
	if err := c.SetScale(-1); !errors.Is(err, ErrNegativeScale) {
		t.Errorf("SetScale(-1) error = %v, want %v", err, ErrNegativeScale)
	}
	if c.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", c.Scale())
	}
}

func TestClock_Reset(t *testing.T) {
	c, f := newTestClock()
	f.add(time.Minute)
	c.Reset()
	f.add(time.Second)
	if got := c.Time(); got != time.Second {
		t.Errorf("Time() after Reset = %v, want 1s", got)
	}
}
