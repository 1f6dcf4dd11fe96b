//go:build !(darwin || linux || freebsd || netbsd || windows)

package native

import (
	"errors"
	"runtime"
)

func (l *Library) load() error {
	return errors.New("native windows are not supported on " + runtime.GOOS)
}

func keyCallback() uintptr { return 0 }
