// Package nativetest provides an in-memory native.Surface for tests.
package nativetest

import (
	"sync"

	"github.com/tinyrange/minifb/internal/keys"
	"github.com/tinyrange/minifb/internal/native"
)

// Event is a key event queued for delivery on the next pump.
type Event struct {
	Raw   int32
	State int32
}

// OpenCall records one Open invocation.
type OpenCall struct {
	Title         string
	Width, Height uint32
	Scale         int32
}

// Fake records calls and delivers queued key events from Update and
// ShouldClose, the way the native event pump does.
type Fake struct {
	mu sync.Mutex

	// FailOpen makes Open return a zero handle.
	FailOpen bool
	// Screen is returned packed from ScreenSize.
	ScreenWidth, ScreenHeight uint16
	// Table is returned from KeyTable; nil selects keys.MacOS.
	Table keys.Table

	next    native.Handle
	open    map[native.Handle]bool
	target  map[native.Handle]uintptr
	queue   []Event
	closeRq bool

	Opens      []OpenCall
	Closes     []native.Handle
	Frames     int
	LastFrame  []uint32
	Positions  [][2]int32
	Registered []uintptr
}

var _ native.Surface = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		open:         make(map[native.Handle]bool),
		target:       make(map[native.Handle]uintptr),
	}
}

func (f *Fake) Open(title string, width, height uint32, scale int32) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Opens = append(f.Opens, OpenCall{Title: title, Width: width, Height: height, Scale: scale})
	if f.FailOpen {
		return 0
	}
	f.next++
	f.open[f.next] = true
	return f.next
}

func (f *Fake) Close(h native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closes = append(f.Closes, h)
	delete(f.open, h)
}

func (f *Fake) Update(h native.Handle, pixels []uint32) {
	f.mu.Lock()
	f.Frames++
	f.LastFrame = append(f.LastFrame[:0], pixels...)
	f.mu.Unlock()

	f.pump(h)
}

func (f *Fake) SetPosition(h native.Handle, x, y int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Positions = append(f.Positions, [2]int32{x, y})
}

func (f *Fake) SetKeyCallback(h native.Handle, target uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.target[h] = target
	f.Registered = append(f.Registered, target)
}

func (f *Fake) ShouldClose(h native.Handle) bool {
	f.pump(h)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeRq || !f.open[h]
}

func (f *Fake) ScreenSize() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint32(f.ScreenWidth)<<16 | uint32(f.ScreenHeight)
}

func (f *Fake) KeyTable() keys.Table {
	if f.Table != nil {
		return f.Table
	}
	return keys.MacOS
}

// Press queues a key down event.
func (f *Fake) Press(raw int32) { f.Queue(Event{Raw: raw, State: native.KeyPressed}) }

// Release queues a key up event.
func (f *Fake) Release(raw int32) { f.Queue(Event{Raw: raw, State: native.KeyReleased}) }

func (f *Fake) Queue(events ...Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, events...)
}

// RequestClose makes ShouldClose report true, as when the user closes the
// window.
func (f *Fake) RequestClose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeRq = true
}

// Target returns the callback target last installed for h.
func (f *Fake) Target(h native.Handle) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target[h]
}

// IsOpen reports whether h has been opened and not closed.
func (f *Fake) IsOpen(h native.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open[h]
}

func (f *Fake) pump(h native.Handle) {
	f.mu.Lock()
	events := f.queue
	f.queue = nil
	target := f.target[h]
	f.mu.Unlock()

	// Deliver without holding the lock; the callback may take its own.
	for _, ev := range events {
		native.Dispatch(target, ev.Raw, ev.State)
	}
}
