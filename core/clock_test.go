package core

import (
	"testing"
	"time"
)

// fakeNow is an adjustable time source for clock tests.
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time          { return f.t }
func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockElapsed(t *testing.T) {
	src := &fakeNow{t: time.Unix(1000, 0)}
	c := newClockAt(src.now)

	if got := c.Elapsed(); got != 0 {
		t.Fatalf("fresh clock elapsed = %v, want 0", got)
	}

	src.advance(2500 * time.Millisecond)
	if got := c.Elapsed(); got != 2.5 {
		t.Errorf("elapsed = %v, want 2.5", got)
	}
}

func TestClockPauseFreezesElapsed(t *testing.T) {
	src := &fakeNow{t: time.Unix(1000, 0)}
	c := newClockAt(src.now)

	src.advance(3 * time.Second)
	c.Pause()
	if !c.IsPaused() {
		t.Fatal("clock should be paused")
	}

	src.advance(10 * time.Second)
	if got := c.Elapsed(); got != 3 {
		t.Errorf("paused elapsed = %v, want 3", got)
	}

	c.Resume()
	src.advance(2 * time.Second)
	if got := c.Elapsed(); got != 5 {
		t.Errorf("resumed elapsed = %v, want 5", got)
	}
}

func TestClockPauseIsIdempotent(t *testing.T) {
	src := &fakeNow{t: time.Unix(1000, 0)}
	c := newClockAt(src.now)

	src.advance(time.Second)
	c.Pause()
	c.Pause()
	src.advance(time.Second)
	c.Resume()
	c.Resume()

	if got := c.Elapsed(); got != 1 {
		t.Errorf("elapsed = %v, want 1", got)
	}
}

func TestClockRestart(t *testing.T) {
	src := &fakeNow{t: time.Unix(1000, 0)}
	c := newClockAt(src.now)

	src.advance(30 * time.Second)
	c.Pause()
	c.Restart()

	if c.IsPaused() {
		t.Error("restart should resume the clock")
	}
	if got := c.Elapsed(); got != 0 {
		t.Errorf("restarted elapsed = %v, want 0", got)
	}

	src.advance(4 * time.Second)
	if got := c.Elapsed(); got != 4 {
		t.Errorf("elapsed after restart = %v, want 4", got)
	}
}
