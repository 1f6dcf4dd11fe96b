// Package bridge owns one native framebuffer window: it opens the surface at
// the resolved scale, streams frames to it and feeds native key events into
// a key state tracker the caller can query between frames.
package bridge

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/tinyrange/minifb/internal/frametrace"
	"github.com/tinyrange/minifb/internal/keys"
	"github.com/tinyrange/minifb/internal/keystate"
	"github.com/tinyrange/minifb/internal/native"
	"github.com/tinyrange/minifb/internal/scale"
)

// MaxDimension is the largest width or height accepted by Open. The native
// screen size query packs each dimension into 16 bits.
const MaxDimension = 0xffff

// Window is an open native framebuffer window.
//
// All methods except the key callback path are meant to be called from one
// goroutine. Key events may arrive from a native thread at any time while
// the window is open.
type Window struct {
	st      *state
	cleanup runtime.Cleanup
}

// state is everything the window owns. It is kept apart from Window so a
// leaked Window can still be torn down by its cleanup.
type state struct {
	title         string
	width, height int
	scale         int

	surface native.Surface
	handle  native.Handle
	table   keys.Table
	tracker *keystate.Tracker
	token   uintptr

	log   *slog.Logger
	clock func() time.Time
	trace *frametrace.Recorder
	frame uint32

	closeOnce sync.Once
	closed    atomic.Bool
}

func validTitle(title string) bool {
	return title != "" && utf8.ValidString(title) && strings.IndexByte(title, 0) < 0
}

// Open creates a window showing a width x height framebuffer.
func Open(title string, width, height int, opts ...Option) (*Window, error) {
	cfg := parseOptions(opts)

	// Validate before touching the native layer.
	if !validTitle(title) {
		return nil, &Error{Op: "open", Title: title, Err: ErrTitleEncoding}
	}
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, &Error{Op: "open", Title: title, Err: fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)}
	}

	surface := cfg.surface
	if surface == nil {
		lib, err := native.Load(cfg.library)
		if err != nil {
			return nil, &Error{Op: "open", Title: title, Err: fmt.Errorf("%w: %w", ErrOpen, err)}
		}
		surface = lib
	}

	screen := scale.ScreenSizeFunc(func() (int, int) {
		return scale.UnpackScreenSize(surface.ScreenSize())
	})
	factor := scale.Resolve(width, height, cfg.scale, screen)

	handle := surface.Open(title, uint32(width), uint32(height), int32(factor))
	if handle == 0 {
		return nil, &Error{Op: "open", Title: title, Err: ErrOpen}
	}

	st := &state{
		title:   title,
		width:   width,
		height:  height,
		scale:   factor,
		surface: surface,
		handle:  handle,
		table:   surface.KeyTable(),
		tracker: keystate.New(cfg.repeat),
		log:     cfg.logger.With("window", title),
		clock:   cfg.clock,
	}

	if cfg.trace != nil {
		rec, err := frametrace.Open(cfg.trace)
		if err != nil {
			surface.Close(handle)
			return nil, &Error{Op: "open", Title: title, Err: err}
		}
		st.trace = rec
	}

	st.token = native.Register(st.onKey)
	surface.SetKeyCallback(handle, st.token)
	st.tracker.Advance(st.clock())

	st.log.Debug("window opened", "width", width, "height", height, "mode", cfg.scale, "scale", factor)

	w := &Window{st: st}
	w.cleanup = runtime.AddCleanup(w, func(st *state) {
		if st.close() {
			st.log.Warn("window garbage collected without Close")
		}
	}, st)
	return w, nil
}

// onKey runs on whatever thread the native layer delivers events from.
func (st *state) onKey(raw, action int32) {
	key := st.table.Translate(raw)
	if key == keys.KeyUnknown {
		st.log.Debug("unmapped key code", "raw", raw)
	}
	down := action == native.KeyPressed
	st.tracker.SetKeyState(key, down, st.clock())

	if down {
		st.trace.Event(frametrace.KindKeyDown, uint32(key))
	} else {
		st.trace.Event(frametrace.KindKeyUp, uint32(key))
	}
}

// close releases the native window. It reports whether this call did the
// work; every later call is a no-op.
func (st *state) close() bool {
	did := false
	st.closeOnce.Do(func() {
		st.closed.Store(true)

		// No key event may reach the tracker once the handle is gone.
		native.Unregister(st.token)
		st.surface.Close(st.handle)
		st.handle = 0

		if st.trace != nil {
			if dropped := st.trace.Dropped(); dropped > 0 {
				st.log.Warn("frame trace dropped records", "dropped", dropped)
			}
			if err := st.trace.Close(); err != nil {
				st.log.Warn("close frame trace", "error", err)
			}
		}
		st.log.Debug("window closed", "frames", st.frame)
		did = true
	})
	return did
}

// Update presents one frame and processes pending native events. pixels
// must hold width*height packed 0RGB values. Key state queries made after
// Update reflect every event delivered up to and during this call.
func (w *Window) Update(pixels []uint32) error {
	st := w.st
	if st.closed.Load() {
		return &Error{Op: "update", Title: st.title, Err: ErrClosed}
	}
	if len(pixels) != st.width*st.height {
		return &Error{Op: "update", Title: st.title, Err: fmt.Errorf("%w: got %d pixels, want %dx%d",
			ErrBufferSize, len(pixels), st.width, st.height)}
	}

	start := st.clock()
	st.frame++

	st.surface.Update(st.handle, pixels)
	// minifb expects the callback target to be reinstalled after every update.
	st.surface.SetKeyCallback(st.handle, st.token)

	now := st.clock()
	st.tracker.Advance(now)

	st.trace.Record(frametrace.KindPresent, st.frame, now.Sub(start))
	st.trace.Record(frametrace.KindFrame, st.frame, st.clock().Sub(start))

	// The cleanup must not close the handle while a native call is in flight.
	runtime.KeepAlive(w)
	return nil
}

// SetPosition moves the window's top-left corner to x, y in screen
// coordinates.
func (w *Window) SetPosition(x, y int) {
	if w.st.closed.Load() {
		return
	}
	w.st.surface.SetPosition(w.st.handle, int32(x), int32(y))
	runtime.KeepAlive(w)
}

// IsOpen reports whether the window is still open. It returns false once
// the user closed the window or Close was called.
func (w *Window) IsOpen() bool {
	if w.st.closed.Load() {
		return false
	}
	open := !w.st.surface.ShouldClose(w.st.handle)
	runtime.KeepAlive(w)
	return open
}

// Keys returns every key currently held down, in ascending key order.
func (w *Window) Keys() []keys.Key {
	if w.st.closed.Load() {
		return nil
	}
	return w.st.tracker.Down()
}

// KeysPressed returns the keys that count as pressed this frame.
func (w *Window) KeysPressed(mode keystate.Repeat) []keys.Key {
	if w.st.closed.Load() {
		return nil
	}
	return w.st.tracker.Pressed(mode)
}

func (w *Window) IsKeyDown(key keys.Key) bool {
	if w.st.closed.Load() {
		return false
	}
	return w.st.tracker.IsDown(key)
}

func (w *Window) IsKeyPressed(key keys.Key, mode keystate.Repeat) bool {
	if w.st.closed.Load() {
		return false
	}
	return w.st.tracker.IsPressed(key, mode)
}

// SetKeyRepeatDelay sets how long a key must be held, in seconds, before
// it starts repeating.
func (w *Window) SetKeyRepeatDelay(seconds float32) {
	w.st.tracker.SetRepeatDelay(secondsToDuration(seconds))
}

// SetKeyRepeatRate sets the interval between repeats in seconds.
func (w *Window) SetKeyRepeatRate(seconds float32) {
	w.st.tracker.SetRepeatRate(secondsToDuration(seconds))
}

// secondsToDuration rounds to whole microseconds so that float32 values
// such as 0.1 map to the duration the caller wrote.
func secondsToDuration(s float32) time.Duration {
	return time.Duration(math.Round(float64(s)*1e6)) * time.Microsecond
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.st.width, w.st.height
}

// Scale returns the factor the window was opened with.
func (w *Window) Scale() int {
	return w.st.scale
}

// HeldKeys returns the held keys with the time each went down.
func (w *Window) HeldKeys() []keystate.Held {
	if w.st.closed.Load() {
		return nil
	}
	return w.st.tracker.Snapshot()
}

// Close destroys the native window. Closing twice returns ErrClosed.
func (w *Window) Close() error {
	if !w.st.close() {
		return &Error{Op: "close", Title: w.st.title, Err: ErrClosed}
	}
	w.cleanup.Stop()
	return nil
}
