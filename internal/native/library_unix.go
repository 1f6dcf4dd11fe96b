//go:build darwin || linux || freebsd || netbsd

package native

import (
	"sync"

	"github.com/ebitengine/purego"
)

func (l *Library) load() error {
	handle, err := purego.Dlopen(l.path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}
	for _, sym := range l.symbols() {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return err
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	return nil
}

// keyCallback is the single C entry point shared by every window. purego
// callbacks are never freed, so it is created once.
var keyCallback = sync.OnceValue(func() uintptr {
	return purego.NewCallback(func(target uintptr, key, state int32) {
		Dispatch(target, key, state)
	})
})
