// Package termfb draws a framebuffer window into a terminal.
//
// Each cell shows two vertically stacked pixels using the upper half block
// with 24-bit foreground and background colors. Input is read from the tty in
// raw mode and decoded into the raw codes of keys.Terminal.
package termfb

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/tinyrange/minifb/internal/keys"
	"github.com/tinyrange/minifb/internal/native"
)

const (
	upperHalfBlock = "▀"

	// Used when the output is not a terminal.
	fallbackColumns = 80
	fallbackRows    = 24

	ctrlC = 0x03

	// Incomplete escape sequences longer than this are discarded.
	maxPending = 64
)

// Terminal is a native.Surface backed by a terminal. Only one window can be
// open at a time.
type Terminal struct {
	in  io.Reader
	out io.Writer
	log *slog.Logger

	mu         sync.Mutex
	handle     native.Handle
	title      string
	width      int
	height     int
	scale      int
	target     uintptr
	input      []byte
	held       []int32
	closeReq   bool
	escWaiting bool
	readErr    error
	reading    bool
	restore    func() error

	parser *ansi.Parser
	frame  bytes.Buffer
}

var _ native.Surface = (*Terminal)(nil)

// New returns a terminal surface reading keys from in and drawing to out.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		log:    slog.Default(),
		parser: ansi.NewParser(),
	}
}

// Stdio returns a terminal surface on os.Stdin and os.Stdout.
func Stdio() *Terminal {
	return New(os.Stdin, os.Stdout)
}

// SetLogger replaces the logger used for terminal errors.
func (t *Terminal) SetLogger(l *slog.Logger) {
	if l != nil {
		t.log = l
	}
}

// Open implements native.Surface.
func (t *Terminal) Open(title string, width, height uint32, scale int32) native.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handle != 0 || width == 0 || height == 0 {
		return 0
	}
	if scale < 1 {
		scale = 1
	}

	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		old, err := term.MakeRaw(fd)
		if err != nil {
			t.log.Error("termfb: enable raw mode", "error", err)
			return 0
		}
		t.restore = func() error { return term.Restore(fd, old) }
	}

	t.handle = 1
	t.title = title
	t.width = int(width)
	t.height = int(height)
	t.scale = int(scale)
	t.closeReq = false
	t.escWaiting = false
	t.held = t.held[:0]

	if _, err := io.WriteString(t.out, ansi.SetModeAltScreenSaveCursor+
		ansi.HideCursor+
		ansi.SetWindowTitle(title)+
		ansi.EraseEntireScreen); err != nil {
		t.log.Warn("termfb: write", "error", err)
	}

	if !t.reading {
		t.reading = true
		go t.readLoop()
	}

	return t.handle
}

// readLoop copies tty input into the pending buffer. A blocked Read cannot
// be interrupted, so the loop outlives Close and is reused by the next Open.
func (t *Terminal) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.in.Read(buf)

		t.mu.Lock()
		if n > 0 && t.handle != 0 {
			t.input = append(t.input, buf[:n]...)
		}
		if err != nil {
			t.readErr = err
			t.reading = false
		}
		t.mu.Unlock()

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				t.log.Warn("termfb: read", "error", err)
			}
			return
		}
	}
}

// Close implements native.Surface.
func (t *Terminal) Close(h native.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h == 0 || h != t.handle {
		return
	}
	t.handle = 0
	t.target = 0
	t.input = nil
	t.escWaiting = false
	t.held = t.held[:0]

	if _, err := io.WriteString(t.out, ansi.ResetStyle+
		ansi.ShowCursor+
		ansi.ResetModeAltScreenSaveCursor); err != nil {
		t.log.Warn("termfb: write", "error", err)
	}

	if t.restore != nil {
		if err := t.restore(); err != nil {
			t.log.Warn("termfb: restore terminal", "error", err)
		}
		t.restore = nil
	}
}

// Update implements native.Surface.
func (t *Terminal) Update(h native.Handle, pixels []uint32) {
	t.mu.Lock()
	if h == 0 || h != t.handle {
		t.mu.Unlock()
		return
	}
	t.render(pixels)
	_, err := t.out.Write(t.frame.Bytes())
	t.mu.Unlock()

	if err != nil {
		t.log.Warn("termfb: write frame", "error", err)
	}

	t.pump(h)
}

// render draws pixels into t.frame. Callers hold t.mu.
func (t *Terminal) render(pixels []uint32) {
	t.frame.Reset()

	w, h, s := t.width, t.height, t.scale
	if len(pixels) < w*h {
		return
	}

	outW, outH := w*s, h*s
	pixel := func(x, y int) uint32 {
		if y >= outH {
			return 0
		}
		return pixels[(y/s)*w+x/s] & 0xffffff
	}

	for y := 0; y < outH; y += 2 {
		t.frame.WriteString(ansi.CursorPosition(1, y/2+1))

		var lastTop, lastBottom uint32
		first := true
		for x := range outW {
			top, bottom := pixel(x, y), pixel(x, y+1)
			if first || top != lastTop || bottom != lastBottom {
				t.frame.WriteString(ansi.Style{}.
					ForegroundColor(rgb(top)).
					BackgroundColor(rgb(bottom)).
					String())
				lastTop, lastBottom, first = top, bottom, false
			}
			t.frame.WriteString(upperHalfBlock)
		}
		t.frame.WriteString(ansi.ResetStyle)
	}
}

func rgb(v uint32) ansi.RGBColor {
	return ansi.RGBColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// pump delivers the input read since the last pump. Terminals report no key
// releases, so keys delivered by the previous pump are released here unless
// they were typed again.
func (t *Terminal) pump(h native.Handle) {
	t.mu.Lock()
	if h == 0 || h != t.handle {
		t.mu.Unlock()
		return
	}

	// An ESC left alone for a whole pump is the Escape key.
	flushEsc := t.escWaiting && len(t.input) == 1
	codes, rest, interrupt := decode(t.input, t.parser, flushEsc)
	t.input = append(t.input[:0], rest...)
	t.escWaiting = len(rest) == 1 && rest[0] == ansi.ESC
	if interrupt {
		t.closeReq = true
	}

	var events []event
	for _, raw := range t.held {
		if !slices.Contains(codes, raw) {
			events = append(events, event{raw, native.KeyReleased})
		}
	}
	for _, raw := range codes {
		if !slices.Contains(t.held, raw) {
			events = append(events, event{raw, native.KeyPressed})
		}
	}
	t.held = append(t.held[:0], codes...)
	target := t.target
	t.mu.Unlock()

	if target == 0 {
		return
	}
	for _, ev := range events {
		native.Dispatch(target, ev.raw, ev.state)
	}
}

type event struct {
	raw   int32
	state int32
}

// SetPosition implements native.Surface. The terminal owns the placement,
// so it is ignored.
func (t *Terminal) SetPosition(native.Handle, int32, int32) {}

// SetKeyCallback implements native.Surface.
func (t *Terminal) SetKeyCallback(h native.Handle, target uintptr) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h != 0 && h == t.handle {
		t.target = target
	}
}

// ShouldClose implements native.Surface. Ctrl-C and end of input both
// request close.
func (t *Terminal) ShouldClose(h native.Handle) bool {
	t.pump(h)

	t.mu.Lock()
	defer t.mu.Unlock()

	if h == 0 || h != t.handle {
		return true
	}
	return t.closeReq || t.readErr != nil
}

// ScreenSize implements native.Surface. Each text row holds two pixels.
func (t *Terminal) ScreenSize() uint32 {
	cols, rows := fallbackColumns, fallbackRows
	if f, ok := t.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			cols, rows = w, h
		}
	}
	return uint32(min(cols, 0xffff))<<16 | uint32(min(rows*2, 0xffff))
}

// KeyTable implements native.Surface.
func (t *Terminal) KeyTable() keys.Table {
	return keys.Terminal
}

// decode splits input into raw key codes. It returns the unconsumed tail of
// an incomplete escape sequence and whether Ctrl-C was seen. A lone trailing
// ESC may be the start of a sequence split across reads; it is returned as
// rest unless flushEsc is set.
func decode(b []byte, p *ansi.Parser, flushEsc bool) (codes []int32, rest []byte, interrupt bool) {
	var state byte
	for len(b) > 0 {
		seq, _, n, newState := ansi.DecodeSequence(b, state, p)
		if n == 0 {
			break
		}
		if newState != ansi.NormalState {
			if len(b) == 1 && b[0] == ansi.ESC && flushEsc {
				codes = append(codes, int32(ansi.ESC))
			} else if len(b) <= maxPending {
				rest = b
			}
			break
		}
		b = b[n:]

		switch {
		case len(seq) == 1 && seq[0] == ctrlC:
			interrupt = true
		case len(seq) == 1 && seq[0] < 0x80:
			codes = append(codes, int32(seq[0]))
		case len(seq) == 2 && seq[0] == ansi.ESC && seq[1] == 'O':
			// SS3: the key is the next byte.
			if len(b) == 0 {
				rest = append(seq, b...)
				return codes, rest, interrupt
			}
			if raw, ok := ss3Keys[b[0]]; ok {
				codes = append(codes, raw)
			}
			b = b[1:]
		case len(seq) == 2 && seq[0] == ansi.ESC && seq[1] < 0x80:
			// Alt+key.
			codes = append(codes, int32(seq[1]))
		case len(seq) > 2 && seq[0] == ansi.ESC && seq[1] == '[':
			if raw, ok := csiKey(p); ok {
				codes = append(codes, raw)
			}
		}
	}
	return codes, rest, interrupt
}

var ss3Keys = map[byte]int32{
	'A': keys.TermUp,
	'B': keys.TermDown,
	'C': keys.TermRight,
	'D': keys.TermLeft,
	'H': keys.TermHome,
	'F': keys.TermEnd,
	'P': keys.TermF1,
	'Q': keys.TermF2,
	'R': keys.TermF3,
	'S': keys.TermF4,
}

// Parameters of CSI n ~ sequences.
var tildeKeys = map[int]int32{
	1:  keys.TermHome,
	2:  keys.TermInsert,
	3:  keys.TermDelete,
	4:  keys.TermEnd,
	5:  keys.TermPageUp,
	6:  keys.TermPageDown,
	7:  keys.TermHome,
	8:  keys.TermEnd,
	11: keys.TermF1,
	12: keys.TermF2,
	13: keys.TermF3,
	14: keys.TermF4,
	15: keys.TermF5,
	17: keys.TermF6,
	18: keys.TermF7,
	19: keys.TermF8,
	20: keys.TermF9,
	21: keys.TermF10,
	23: keys.TermF11,
	24: keys.TermF12,
}

func csiKey(p *ansi.Parser) (int32, bool) {
	cmd := ansi.Cmd(p.Command())
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return 0, false
	}
	if cmd.Final() == '~' {
		n, _ := p.Param(0, 0)
		raw, ok := tildeKeys[n]
		return raw, ok
	}
	raw, ok := ss3Keys[cmd.Final()]
	return raw, ok
}
