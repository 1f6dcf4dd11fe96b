package native

import "sync"

// KeyFunc receives a raw key code and one of KeyReleased/KeyPressed.
type KeyFunc func(raw, state int32)

// The native callback only carries an opaque target value. Instead of
// handing native code a pointer to Go memory, targets are tokens into this
// table; a token that has been unregistered simply drops its events.
var registry = struct {
	mu   sync.RWMutex
	next uintptr
	fns  map[uintptr]KeyFunc
}{
	fns: make(map[uintptr]KeyFunc),
}

// Register installs fn and returns the non-zero token to pass as the
// callback target.
func Register(fn KeyFunc) uintptr {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.next++
	token := registry.next
	registry.fns[token] = fn
	return token
}

// Unregister removes a token. Once it returns, no call to the token's
// function is in flight and none will start.
func Unregister(token uintptr) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.fns, token)
}

// Dispatch delivers one key event to the function registered for token.
// Unknown tokens are ignored.
func Dispatch(token uintptr, raw, state int32) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	if fn, ok := registry.fns[token]; ok {
		fn(raw, state)
	}
}
