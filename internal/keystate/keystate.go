// Package keystate turns asynchronous key up/down events into frame-stable
// queries with text-input style auto-repeat.
//
// Events may be delivered from any goroutine or native thread. Queries see
// a consistent picture per frame: a key that went down between two calls to
// Advance reports as pressed for every query made after the second call and
// before the next one.
package keystate

import (
	"sync"
	"time"

	"github.com/tinyrange/minifb/internal/keys"
)

// Repeat selects whether held keys report as pressed again.
type Repeat int

const (
	// RepeatNone reports a press only on the frame the key went down.
	RepeatNone Repeat = iota
	// RepeatEnabled reports a press on the first frame and then, after the
	// repeat delay, once per repeat interval while the key stays down.
	RepeatEnabled
	// RepeatDisabled behaves like RepeatNone.
	RepeatDisabled
)

func (r Repeat) String() string {
	switch r {
	case RepeatNone:
		return "none"
	case RepeatEnabled:
		return "enabled"
	case RepeatDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

const (
	DefaultRepeatDelay = 250 * time.Millisecond
	DefaultRepeatRate  = 50 * time.Millisecond
)

// RepeatPolicy controls the auto-repeat cadence.
type RepeatPolicy struct {
	// Delay is how long a key must be held before the first repeat.
	Delay time.Duration
	// Rate is the interval between repeats after the first one.
	Rate time.Duration
}

// DefaultRepeatPolicy returns the default repeat cadence.
func DefaultRepeatPolicy() RepeatPolicy {
	return RepeatPolicy{Delay: DefaultRepeatDelay, Rate: DefaultRepeatRate}
}

type keyState struct {
	down       bool
	downSince  time.Time
	lastRepeat time.Time

	// pending is set when the key goes down and moved into fresh by the
	// next Advance.
	pending bool
	fresh   bool

	// repeatFrame is the frame in which the last repeat was reported, so
	// that every query within that frame agrees.
	repeatFrame uint64
}

// Tracker owns the per-key state. The zero value is not usable; call New.
type Tracker struct {
	mu     sync.Mutex
	keys   [keys.KeyCount]keyState
	policy RepeatPolicy
	now    time.Time
	frame  uint64
}

func New(policy RepeatPolicy) *Tracker {
	return &Tracker{
		policy: policy,
		frame:  1,
	}
}

func valid(key keys.Key) bool {
	return key >= 0 && key < keys.KeyCount
}

// SetKeyState records a key transition observed at now. Repeating the
// current state is a no-op.
func (t *Tracker) SetKeyState(key keys.Key, down bool, now time.Time) {
	if !valid(key) {
		key = keys.KeyUnknown
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	k := &t.keys[key]
	if k.down == down {
		return
	}
	k.down = down
	if down {
		k.downSince = now
		k.pending = true
	} else {
		k.downSince = time.Time{}
		k.lastRepeat = time.Time{}
	}
}

// Advance starts a new frame. Presses recorded since the previous Advance
// become visible and now becomes the reference time for repeat checks.
func (t *Tracker) Advance(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.now = now
	t.frame++
	for i := range t.keys {
		k := &t.keys[i]
		k.fresh = k.pending
		k.pending = false
	}
}

// Down returns every key that is currently held, in ascending key order.
func (t *Tracker) Down() []keys.Key {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []keys.Key
	for i := range t.keys {
		if t.keys[i].down {
			out = append(out, keys.Key(i))
		}
	}
	return out
}

// Pressed returns every key that counts as pressed this frame.
func (t *Tracker) Pressed(mode Repeat) []keys.Key {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []keys.Key
	for i := range t.keys {
		if t.pressedLocked(keys.Key(i), mode) {
			out = append(out, keys.Key(i))
		}
	}
	return out
}

func (t *Tracker) IsDown(key keys.Key) bool {
	if !valid(key) {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[key].down
}

func (t *Tracker) IsPressed(key keys.Key, mode Repeat) bool {
	if !valid(key) {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressedLocked(key, mode)
}

func (t *Tracker) pressedLocked(key keys.Key, mode Repeat) bool {
	k := &t.keys[key]
	if k.fresh {
		return true
	}
	if mode != RepeatEnabled || !k.down {
		return false
	}
	if k.repeatFrame == t.frame {
		return true
	}

	var due time.Time
	if k.lastRepeat.IsZero() {
		due = k.downSince.Add(t.policy.Delay)
	} else {
		due = k.lastRepeat.Add(t.policy.Rate)
	}
	if t.now.Before(due) {
		return false
	}
	k.lastRepeat = t.now
	k.repeatFrame = t.frame
	return true
}

// SetRepeatDelay changes the hold time before the first repeat. It applies
// from the next query.
func (t *Tracker) SetRepeatDelay(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.policy.Delay = max(d, 0)
}

// SetRepeatRate changes the interval between repeats.
func (t *Tracker) SetRepeatRate(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.policy.Rate = max(d, 0)
}

func (t *Tracker) Policy() RepeatPolicy {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.policy
}

// Snapshot reports the held keys and when each went down, in ascending
// key order.
func (t *Tracker) Snapshot() []Held {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Held
	for i := range t.keys {
		if k := t.keys[i]; k.down {
			out = append(out, Held{Key: keys.Key(i), Since: k.downSince})
		}
	}
	return out
}

// Held describes a key that is currently down.
type Held struct {
	Key   keys.Key
	Since time.Time
}
