// Package scale picks the integer pixel scale a window is opened with.
package scale

import (
	"fmt"
	"strings"
)

// Mode is a scaling policy. Fixed modes name their factor; FitScreen
// derives one from the screen size.
type Mode int

const (
	X1 Mode = iota
	X2
	X4
	X8
	X16
	X32
	FitScreen
)

var modeNames = [...]string{
	X1:        "x1",
	X2:        "x2",
	X4:        "x4",
	X8:        "x8",
	X16:       "x16",
	X32:       "x32",
	FitScreen: "fit",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the names returned by Mode.String, plain factors such
// as "4", and "fitscreen".
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "fitscreen", "fit-screen":
		return FitScreen, nil
	}
	for m, name := range modeNames {
		if v == name || "x"+v == name {
			return Mode(m), nil
		}
	}
	return X1, fmt.Errorf("unknown scale mode %q", s)
}

// ScreenSizer reports the current screen size in pixels.
type ScreenSizer interface {
	ScreenSize() (width, height int)
}

// ScreenSizeFunc adapts a function to ScreenSizer.
type ScreenSizeFunc func() (width, height int)

func (f ScreenSizeFunc) ScreenSize() (int, int) { return f() }

// UnpackScreenSize splits the packed native screen size: width in the high
// 16 bits, height in the low 16 bits.
func UnpackScreenSize(packed uint32) (width, height int) {
	return int(packed >> 16), int(packed & 0xffff)
}

// Resolve returns the scale factor for a width x height framebuffer.
//
// Fixed modes return their factor unconditionally. FitScreen starts at 1 and
// doubles while a framebuffer at (scale+1) still fits the screen in both
// dimensions. That is a greedy doubling search, not the largest integer
// scale that fits, and is kept for compatibility with existing callers.
//
// The screen is only queried for FitScreen. The result is always >= 1.
func Resolve(width, height int, mode Mode, screen ScreenSizer) int {
	switch mode {
	case X1:
		return 1
	case X2:
		return 2
	case X4:
		return 4
	case X8:
		return 8
	case X16:
		return 16
	case X32:
		return 32
	case FitScreen:
	default:
		return 1
	}

	if screen == nil || width <= 0 || height <= 0 {
		return 1
	}
	sw, sh := screen.ScreenSize()

	s := 1
	for width*(s+1) <= sw && height*(s+1) <= sh {
		s *= 2
	}
	return s
}
