package playback

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestCursorClamps(t *testing.T) {
	c := NewCursor(10)
	c.Set(-3)
	if c.Time() != 0 {
		t.Fatalf("time = %v, want 0", c.Time())
	}
	c.Set(42)
	if c.Time() != 10 {
		t.Fatalf("time = %v, want 10", c.Time())
	}
	c.SetDuration(4)
	if c.Time() != 4 {
		t.Fatalf("time after shrinking duration = %v, want 4", c.Time())
	}
	c.Set(math.NaN())
	if c.Time() != 0 {
		t.Fatalf("NaN seek = %v, want 0", c.Time())
	}
}

func TestCursorAdvanceWraps(t *testing.T) {
	c := NewCursor(1)
	c.Set(0.9)
	if !c.Advance(0.2) {
		t.Fatal("expected wrap")
	}
	if c.Time() != 0 {
		t.Fatalf("time after wrap = %v, want 0", c.Time())
	}
	for i := 0; i < 1000; i++ {
		c.Advance(1.0 / 30)
		if c.Time() < 0 || c.Time() > 1 {
			t.Fatalf("cursor escaped range: %v", c.Time())
		}
	}
}

func TestTransportTickAdvancesByFrameInterval(t *testing.T) {
	var seen []float64
	tr := New(10, WithFPS(10), OnTime(func(s float64) { seen = append(seen, s) }))
	tr.Tick(time.Second)
	if tr.Time() != 0 || len(seen) != 0 {
		t.Fatal("idle transport advanced")
	}
	tr.Play()
	tr.Tick(250 * time.Millisecond)
	if math.Abs(tr.Time()-0.2) > 1e-9 {
		t.Fatalf("time = %v, want 0.2 after two whole frames", tr.Time())
	}
	tr.Tick(50 * time.Millisecond)
	if math.Abs(tr.Time()-0.3) > 1e-9 {
		t.Fatalf("time = %v, want 0.3 once the remainder completes a frame", tr.Time())
	}
	if len(seen) != 2 {
		t.Fatalf("observer calls = %d, want 2", len(seen))
	}
}

func TestWithFPSCapsRate(t *testing.T) {
	tr := New(10, WithFPS(2_000_000_000))
	if got := tr.FrameInterval(); got != time.Millisecond {
		t.Fatalf("frame interval = %v, want 1ms", got)
	}
	tr.Play()
	tr.Tick(10 * time.Millisecond)
	if math.Abs(tr.Time()-0.01) > 1e-9 {
		t.Fatalf("time = %v, want 0.01", tr.Time())
	}
	if got := New(10, WithFPS(-5)).FrameInterval(); got != time.Second/DefaultFPS {
		t.Fatalf("non-positive fps gave interval %v", got)
	}
}

func TestTransportWrapsAtDuration(t *testing.T) {
	tr := New(0.5, WithFPS(10))
	tr.Play()
	tr.Tick(450 * time.Millisecond)
	if math.Abs(tr.Time()-0.4) > 1e-9 {
		t.Fatalf("time = %v, want 0.4", tr.Time())
	}
	tr.Tick(100 * time.Millisecond)
	if tr.Time() != 0 {
		t.Fatalf("time = %v, want wrap to 0", tr.Time())
	}
}

func TestHandleCancelStopsAdvancing(t *testing.T) {
	var states []bool
	tr := New(5, WithFPS(20), OnPlaying(func(p bool) { states = append(states, p) }))
	h := tr.Play()
	if again := tr.Play(); again != h {
		t.Fatal("Play while playing should return the running handle")
	}
	tr.Tick(100 * time.Millisecond)
	before := tr.Time()
	h.Cancel()
	h.Cancel()
	tr.Tick(time.Second)
	if tr.Time() != before {
		t.Fatalf("cursor moved after cancel: %v -> %v", before, tr.Time())
	}
	if tr.Playing() || !h.Cancelled() {
		t.Fatal("transport still playing after cancel")
	}
	if len(states) != 2 || !states[0] || states[1] {
		t.Fatalf("play observer saw %v, want [true false]", states)
	}

	h2 := tr.Play()
	h.Cancel()
	if !tr.Playing() || h2.Cancelled() {
		t.Fatal("stale handle cancelled a later run")
	}
}

func TestSeekNotifiesAndClamps(t *testing.T) {
	var last float64 = -1
	tr := New(3, OnTime(func(s float64) { last = s }))
	tr.Seek(7)
	if last != 3 || tr.Time() != 3 {
		t.Fatalf("seek past end: observer %v, time %v", last, tr.Time())
	}
}

func TestLoadResetsAndStops(t *testing.T) {
	tr := New(3)
	h := tr.Play()
	tr.Seek(2)
	tr.Load(8)
	if tr.Playing() || !h.Cancelled() {
		t.Fatal("load did not stop playback")
	}
	if tr.Time() != 0 || tr.Duration() != 8 {
		t.Fatalf("after load: time %v duration %v", tr.Time(), tr.Duration())
	}
}

func TestToggle(t *testing.T) {
	tr := New(1)
	if !tr.Toggle() || !tr.Playing() {
		t.Fatal("toggle should start playback")
	}
	if tr.Toggle() || tr.Playing() {
		t.Fatal("toggle should pause playback")
	}
}

func TestRunTimerStopsWithContext(t *testing.T) {
	tr := New(100, WithFPS(100))
	tr.Play()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunTimer(ctx, tr)
		close(done)
	}()
	time.Sleep(80 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunTimer did not return after cancel")
	}
	if tr.Time() <= 0 {
		t.Fatal("timer never advanced the cursor")
	}
}
