// Package native is the boundary to the platform window layer. A Surface
// exposes the small set of calls a framebuffer window needs; Library binds
// them to the minifb shared library at run time without cgo.
//
// Raw key codes are only translated on macOS. On other platforms Library
// returns a nil key table, so every native key event is reported as
// keys.KeyUnknown; the terminal surface has its own table and is unaffected.
package native

import (
	"github.com/tinyrange/minifb/internal/keys"
)

// Handle identifies one open native window. Zero is never a valid handle.
type Handle uintptr

// Key event states passed to the key callback.
const (
	KeyReleased int32 = 0
	KeyPressed  int32 = 1
)

// Surface is the native window service.
//
// Key events are delivered by calling Dispatch with the target registered
// through SetKeyCallback. Implementations may do so from any thread, but
// only while Update or ShouldClose is pumping events.
type Surface interface {
	// Open creates a window of width x height pixels shown at scale.
	// It returns 0 if the window could not be created.
	Open(title string, width, height uint32, scale int32) Handle
	Close(h Handle)
	// Update presents pixels (width*height packed 0RGB values) and pumps
	// pending native events.
	Update(h Handle, pixels []uint32)
	SetPosition(h Handle, x, y int32)
	SetKeyCallback(h Handle, target uintptr)
	ShouldClose(h Handle) bool
	// ScreenSize returns the screen size packed as width<<16 | height.
	ScreenSize() uint32
	// KeyTable translates the raw key codes this surface reports.
	KeyTable() keys.Table
}
