//go:build windows

package native

import (
	"sync"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

func (l *Library) load() error {
	dll, err := windows.LoadDLL(l.path)
	if err != nil {
		return err
	}
	for _, sym := range l.symbols() {
		proc, err := dll.FindProc(sym.name)
		if err != nil {
			_ = dll.Release()
			return err
		}
		purego.RegisterFunc(sym.fptr, proc.Addr())
	}
	return nil
}

// Windows callbacks must return a value.
var keyCallback = sync.OnceValue(func() uintptr {
	return purego.NewCallback(func(target uintptr, key, state int32) uintptr {
		Dispatch(target, key, state)
		return 0
	})
})
