// Package minifb opens small framebuffer windows and reads the keyboard.
//
// A Window shows a width x height buffer of packed 0RGB pixels, optionally
// scaled up by an integer factor. Keyboard state is sampled once per Update,
// so every query made between two updates sees the same answer.
//
//	w, err := minifb.Open("demo", 320, 240, minifb.WithScale(minifb.ScaleX2))
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	pixels := make([]uint32, 320*240)
//	for w.IsOpen() && !w.IsKeyDown(minifb.KeyEscape) {
//		if err := w.Update(pixels); err != nil {
//			return err
//		}
//	}
//
// The native backend loads the minifb shared library at run time. Use
// WithSurface(NewTerminal(os.Stdin, os.Stdout)) to draw into a terminal
// instead.
package minifb

import (
	"io"
	"log/slog"
	"time"

	"github.com/tinyrange/minifb/internal/bridge"
	"github.com/tinyrange/minifb/internal/keys"
	"github.com/tinyrange/minifb/internal/keystate"
	"github.com/tinyrange/minifb/internal/native"
	"github.com/tinyrange/minifb/internal/scale"
	"github.com/tinyrange/minifb/internal/termfb"
)

// -----------------------------------------------------------------------------
// Type Aliases - These re-export types from internal packages
// -----------------------------------------------------------------------------

// Window is an open framebuffer window.
type Window = bridge.Window

// Option configures a Window.
type Option = bridge.Option

// Error describes a failed window operation.
type Error = bridge.Error

// Key is a keyboard key.
type Key = keys.Key

// Repeat selects how held keys are reported by KeysPressed and IsKeyPressed.
type Repeat = keystate.Repeat

// RepeatPolicy holds the key repeat delay and rate.
type RepeatPolicy = keystate.RepeatPolicy

// HeldKey is a key that is down and the time it went down.
type HeldKey = keystate.Held

// ScaleMode is a window scaling policy.
type ScaleMode = scale.Mode

// Surface is the platform window service behind a Window.
type Surface = native.Surface

// Terminal is a Surface that draws into a terminal.
type Terminal = termfb.Terminal

// Scale modes.
const (
	ScaleX1        = scale.X1
	ScaleX2        = scale.X2
	ScaleX4        = scale.X4
	ScaleX8        = scale.X8
	ScaleX16       = scale.X16
	ScaleX32       = scale.X32
	ScaleFitScreen = scale.FitScreen
)

// Repeat modes.
const (
	RepeatNone     = keystate.RepeatNone
	RepeatEnabled  = keystate.RepeatEnabled
	RepeatDisabled = keystate.RepeatDisabled
)

// Default key repeat timing.
const (
	DefaultRepeatDelay = keystate.DefaultRepeatDelay
	DefaultRepeatRate  = keystate.DefaultRepeatRate
)

// MaxDimension is the largest accepted window width or height.
const MaxDimension = bridge.MaxDimension

// Common sentinel errors.
var (
	ErrTitleEncoding = bridge.ErrTitleEncoding
	ErrInvalidSize   = bridge.ErrInvalidSize
	ErrOpen          = bridge.ErrOpen
	ErrBufferSize    = bridge.ErrBufferSize
	ErrClosed        = bridge.ErrClosed
)

// -----------------------------------------------------------------------------
// Keys
// -----------------------------------------------------------------------------

const (
	KeyUnknown = keys.KeyUnknown

	// Letters
	KeyA = keys.KeyA
	KeyB = keys.KeyB
	KeyC = keys.KeyC
	KeyD = keys.KeyD
	KeyE = keys.KeyE
	KeyF = keys.KeyF
	KeyG = keys.KeyG
	KeyH = keys.KeyH
	KeyI = keys.KeyI
	KeyJ = keys.KeyJ
	KeyK = keys.KeyK
	KeyL = keys.KeyL
	KeyM = keys.KeyM
	KeyN = keys.KeyN
	KeyO = keys.KeyO
	KeyP = keys.KeyP
	KeyQ = keys.KeyQ
	KeyR = keys.KeyR
	KeyS = keys.KeyS
	KeyT = keys.KeyT
	KeyU = keys.KeyU
	KeyV = keys.KeyV
	KeyW = keys.KeyW
	KeyX = keys.KeyX
	KeyY = keys.KeyY
	KeyZ = keys.KeyZ

	// Numbers
	Key0 = keys.Key0
	Key1 = keys.Key1
	Key2 = keys.Key2
	Key3 = keys.Key3
	Key4 = keys.Key4
	Key5 = keys.Key5
	Key6 = keys.Key6
	Key7 = keys.Key7
	Key8 = keys.Key8
	Key9 = keys.Key9

	// Function keys
	KeyF1  = keys.KeyF1
	KeyF2  = keys.KeyF2
	KeyF3  = keys.KeyF3
	KeyF4  = keys.KeyF4
	KeyF5  = keys.KeyF5
	KeyF6  = keys.KeyF6
	KeyF7  = keys.KeyF7
	KeyF8  = keys.KeyF8
	KeyF9  = keys.KeyF9
	KeyF10 = keys.KeyF10
	KeyF11 = keys.KeyF11
	KeyF12 = keys.KeyF12
	KeyF13 = keys.KeyF13
	KeyF14 = keys.KeyF14
	KeyF15 = keys.KeyF15

	// Modifier keys
	KeyLeftShift    = keys.KeyLeftShift
	KeyRightShift   = keys.KeyRightShift
	KeyLeftControl  = keys.KeyLeftControl
	KeyRightControl = keys.KeyRightControl
	KeyLeftAlt      = keys.KeyLeftAlt
	KeyRightAlt     = keys.KeyRightAlt
	KeyLeftSuper    = keys.KeyLeftSuper
	KeyRightSuper   = keys.KeyRightSuper

	// Special keys
	KeySpace      = keys.KeySpace
	KeyEnter      = keys.KeyEnter
	KeyEscape     = keys.KeyEscape
	KeyBackspace  = keys.KeyBackspace
	KeyDelete     = keys.KeyDelete
	KeyTab        = keys.KeyTab
	KeyCapsLock   = keys.KeyCapsLock
	KeyScrollLock = keys.KeyScrollLock
	KeyNumLock    = keys.KeyNumLock
	KeyPause      = keys.KeyPause
	KeyMenu       = keys.KeyMenu

	// Arrow keys
	KeyUp    = keys.KeyUp
	KeyDown  = keys.KeyDown
	KeyLeft  = keys.KeyLeft
	KeyRight = keys.KeyRight

	// Navigation keys
	KeyHome     = keys.KeyHome
	KeyEnd      = keys.KeyEnd
	KeyPageUp   = keys.KeyPageUp
	KeyPageDown = keys.KeyPageDown
	KeyInsert   = keys.KeyInsert

	// Punctuation and symbols
	KeyGraveAccent  = keys.KeyGraveAccent
	KeyMinus        = keys.KeyMinus
	KeyEqual        = keys.KeyEqual
	KeyLeftBracket  = keys.KeyLeftBracket
	KeyRightBracket = keys.KeyRightBracket
	KeyBackslash    = keys.KeyBackslash
	KeySemicolon    = keys.KeySemicolon
	KeyApostrophe   = keys.KeyApostrophe
	KeyComma        = keys.KeyComma
	KeyPeriod       = keys.KeyPeriod
	KeySlash        = keys.KeySlash

	// Numpad keys
	KeyNumpad0        = keys.KeyNumpad0
	KeyNumpad1        = keys.KeyNumpad1
	KeyNumpad2        = keys.KeyNumpad2
	KeyNumpad3        = keys.KeyNumpad3
	KeyNumpad4        = keys.KeyNumpad4
	KeyNumpad5        = keys.KeyNumpad5
	KeyNumpad6        = keys.KeyNumpad6
	KeyNumpad7        = keys.KeyNumpad7
	KeyNumpad8        = keys.KeyNumpad8
	KeyNumpad9        = keys.KeyNumpad9
	KeyNumpadDecimal  = keys.KeyNumpadDecimal
	KeyNumpadDivide   = keys.KeyNumpadDivide
	KeyNumpadMultiply = keys.KeyNumpadMultiply
	KeyNumpadSubtract = keys.KeyNumpadSubtract
	KeyNumpadAdd      = keys.KeyNumpadAdd
	KeyNumpadEnter    = keys.KeyNumpadEnter
)

// ParseKey returns the key with the given name, as printed by Key.String.
func ParseKey(name string) (Key, bool) {
	return keys.Parse(name)
}

// ParseScaleMode parses "x1" through "x32", a bare factor, or "fit".
func ParseScaleMode(s string) (ScaleMode, error) {
	return scale.ParseMode(s)
}

// -----------------------------------------------------------------------------
// Window Options
// -----------------------------------------------------------------------------

// WithScale sets the scaling policy. The default is ScaleX1.
func WithScale(m ScaleMode) Option {
	return bridge.WithScale(m)
}

// WithSurface opens the window on s instead of the native library.
func WithSurface(s Surface) Option {
	return bridge.WithSurface(s)
}

// WithLibrary loads the native library from path.
func WithLibrary(path string) Option {
	return bridge.WithLibrary(path)
}

// WithLogger sets the logger used for window diagnostics.
func WithLogger(l *slog.Logger) Option {
	return bridge.WithLogger(l)
}

// WithClock replaces time.Now for key repeat timing.
func WithClock(now func() time.Time) Option {
	return bridge.WithClock(now)
}

// WithRepeatPolicy sets the initial key repeat delay and rate.
func WithRepeatPolicy(p RepeatPolicy) Option {
	return bridge.WithRepeatPolicy(p)
}

// WithTrace records frame and key events to w in the frametrace format.
func WithTrace(w io.Writer) Option {
	return bridge.WithTrace(w)
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// Open creates a window of width x height pixels.
//
// The caller must call Close when finished. A window that becomes
// unreachable without being closed is closed by the garbage collector.
func Open(title string, width, height int, opts ...Option) (*Window, error) {
	return bridge.Open(title, width, height, opts...)
}

// NewTerminal returns a Surface that reads keys from in and draws to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return termfb.New(in, out)
}

// DefaultRepeatPolicy returns the default key repeat timing.
func DefaultRepeatPolicy() RepeatPolicy {
	return keystate.DefaultRepeatPolicy()
}
