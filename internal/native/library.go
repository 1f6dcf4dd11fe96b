package native

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/tinyrange/minifb/internal/keys"
)

// Library is a Surface backed by the minifb C library.
type Library struct {
	path string

	mfbOpen           func(name string, width, height uint32, scale int32) uintptr
	mfbClose          func(window uintptr)
	mfbUpdate         func(window uintptr, buffer unsafe.Pointer)
	mfbSetPosition    func(window uintptr, x, y int32)
	mfbSetKeyCallback func(window, target, cb uintptr)
	mfbShouldClose    func(window uintptr) int32
	mfbGetScreenSize  func() uint32
}

var _ Surface = (*Library)(nil)

var (
	libsMu sync.Mutex
	libs   = make(map[string]*Library)
)

// Load binds the minifb library at path. An empty path selects the
// platform's default library name. Libraries are loaded once per path.
func Load(path string) (*Library, error) {
	if path == "" {
		path = DefaultLibraryName()
	}

	libsMu.Lock()
	defer libsMu.Unlock()

	if lib, ok := libs[path]; ok {
		return lib, nil
	}

	lib := &Library{path: path}
	if err := lib.load(); err != nil {
		return nil, fmt.Errorf("minifb: load %s: %w", path, err)
	}
	libs[path] = lib
	return lib, nil
}

// DefaultLibraryName is the file name the loader looks for when no path is
// configured.
func DefaultLibraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libminifb.dylib"
	case "windows":
		return "minifb.dll"
	default:
		return "libminifb.so"
	}
}

func (l *Library) symbols() []struct {
	fptr any
	name string
} {
	return []struct {
		fptr any
		name string
	}{
		{&l.mfbOpen, "mfb_open"},
		{&l.mfbClose, "mfb_close"},
		{&l.mfbUpdate, "mfb_update"},
		{&l.mfbSetPosition, "mfb_set_position"},
		{&l.mfbSetKeyCallback, "mfb_set_key_callback"},
		{&l.mfbShouldClose, "mfb_should_close"},
		{&l.mfbGetScreenSize, "mfb_get_screen_size"},
	}
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string { return l.path }

func (l *Library) Open(title string, width, height uint32, scale int32) Handle {
	return Handle(l.mfbOpen(title, width, height, scale))
}

func (l *Library) Close(h Handle) {
	l.mfbClose(uintptr(h))
}

func (l *Library) Update(h Handle, pixels []uint32) {
	if len(pixels) == 0 {
		return
	}
	l.mfbUpdate(uintptr(h), unsafe.Pointer(&pixels[0]))
	runtime.KeepAlive(pixels)
}

func (l *Library) SetPosition(h Handle, x, y int32) {
	l.mfbSetPosition(uintptr(h), x, y)
}

func (l *Library) SetKeyCallback(h Handle, target uintptr) {
	l.mfbSetKeyCallback(uintptr(h), target, keyCallback())
}

func (l *Library) ShouldClose(h Handle) bool {
	return l.mfbShouldClose(uintptr(h)) != 0
}

func (l *Library) ScreenSize() uint32 {
	return l.mfbGetScreenSize()
}

// KeyTable returns the raw key code table for the host platform. minifb
// forwards Cocoa virtual key codes on macOS; other platforms have no table
// yet and report every key as unknown.
func (l *Library) KeyTable() keys.Table {
	if runtime.GOOS == "darwin" {
		return keys.MacOS
	}
	return nil
}
