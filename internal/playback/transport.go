package playback

import (
	"sync"
	"time"
)

// DefaultFPS is the autoplay tick rate when none is configured.
const DefaultFPS = 30

// MaxFPS bounds the tick rate so the frame interval stays at least 1ms.
const MaxFPS = 1000

// Option configures a Transport at construction.
type Option func(*Transport)

// WithFPS sets the autoplay tick rate, capped at MaxFPS. Non-positive
// values keep the default.
func WithFPS(fps int) Option {
	return func(t *Transport) {
		if fps > 0 {
			t.fps = min(fps, MaxFPS)
		}
	}
}

// OnTime registers an observer that receives every cursor change.
func OnTime(fn func(seconds float64)) Option {
	return func(t *Transport) { t.timeObservers = append(t.timeObservers, fn) }
}

// OnPlaying registers an observer for play/pause transitions.
func OnPlaying(fn func(playing bool)) Option {
	return func(t *Transport) { t.playObservers = append(t.playObservers, fn) }
}

// Transport owns the playback cursor and its two modes: idle, where the
// cursor only moves on Seek, and autoplaying, where Tick advances it.
// Observers are called synchronously on the goroutine that changed the
// state, after the transport lock has been released.
type Transport struct {
	mu            sync.Mutex
	cursor        Cursor
	fps           int
	accum         time.Duration
	active        *Handle
	timeObservers []func(float64)
	playObservers []func(bool)
}

// Handle represents one autoplay run. Cancelling it stops that run; a
// cancelled handle never advances the cursor again.
type Handle struct {
	t         *Transport
	cancelled bool
}

// New creates an idle transport for audio of the given duration.
func New(duration float64, opts ...Option) *Transport {
	t := &Transport{cursor: NewCursor(duration), fps: DefaultFPS}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FrameInterval is the autoplay tick period.
func (t *Transport) FrameInterval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameInterval()
}

func (t *Transport) frameInterval() time.Duration {
	return time.Second / time.Duration(t.fps)
}

// Time reports the cursor position.
func (t *Transport) Time() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor.Time()
}

// Duration reports the loaded duration.
func (t *Transport) Duration() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor.Duration()
}

// Playing reports whether autoplay is active.
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active != nil
}

// Seek moves the cursor to seconds, clamped to the duration.
func (t *Transport) Seek(seconds float64) {
	t.mu.Lock()
	t.cursor.Set(seconds)
	now := t.cursor.Time()
	t.mu.Unlock()
	t.notifyTime(now)
}

// Load replaces the duration for newly loaded audio: playback stops and the
// cursor returns to 0.
func (t *Transport) Load(duration float64) {
	t.mu.Lock()
	wasPlaying := t.stopLocked()
	t.cursor = NewCursor(duration)
	t.accum = 0
	t.mu.Unlock()
	if wasPlaying {
		t.notifyPlaying(false)
	}
	t.notifyTime(0)
}

// Play starts autoplay and returns its handle. Calling Play while already
// playing returns the running handle.
func (t *Transport) Play() *Handle {
	t.mu.Lock()
	if t.active != nil {
		h := t.active
		t.mu.Unlock()
		return h
	}
	h := &Handle{t: t}
	t.active = h
	t.accum = 0
	t.mu.Unlock()
	t.notifyPlaying(true)
	return h
}

// Pause stops the running autoplay, if any.
func (t *Transport) Pause() {
	t.mu.Lock()
	stopped := t.stopLocked()
	t.mu.Unlock()
	if stopped {
		t.notifyPlaying(false)
	}
}

// Toggle flips between playing and paused and reports the new state.
func (t *Transport) Toggle() bool {
	if t.Playing() {
		t.Pause()
		return false
	}
	t.Play()
	return true
}

func (t *Transport) stopLocked() bool {
	if t.active == nil {
		return false
	}
	t.active.cancelled = true
	t.active = nil
	return true
}

// Tick feeds elapsed host time into autoplay. The cursor advances by one
// frame interval for every whole interval accumulated. It is a no-op when
// idle.
func (t *Transport) Tick(elapsed time.Duration) {
	t.mu.Lock()
	if t.active == nil || elapsed <= 0 {
		t.mu.Unlock()
		return
	}
	interval := t.frameInterval()
	t.accum += elapsed
	advanced := false
	for t.accum >= interval {
		t.accum -= interval
		t.cursor.Advance(interval.Seconds())
		advanced = true
	}
	now := t.cursor.Time()
	t.mu.Unlock()
	if advanced {
		t.notifyTime(now)
	}
}

// Cancel stops the autoplay run this handle belongs to. It is safe to call
// more than once and has no effect on later runs.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	t := h.t
	t.mu.Lock()
	if h.cancelled {
		t.mu.Unlock()
		return
	}
	h.cancelled = true
	stopped := false
	if t.active == h {
		t.active = nil
		stopped = true
	}
	t.mu.Unlock()
	if stopped {
		t.notifyPlaying(false)
	}
}

// Cancelled reports whether the handle has been stopped.
func (h *Handle) Cancelled() bool {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.cancelled
}

func (t *Transport) notifyTime(now float64) {
	for _, fn := range t.timeObservers {
		fn(now)
	}
}

func (t *Transport) notifyPlaying(playing bool) {
	for _, fn := range t.playObservers {
		fn(playing)
	}
}
