package termfb

import (
	"bytes"
	"image/color"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/vt"

	"github.com/tinyrange/minifb/internal/keys"
	"github.com/tinyrange/minifb/internal/native"
)

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) onKey(raw, state int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{raw, state})
}

func (r *recorder) take() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev := r.events
	r.events = nil
	return ev
}

func openTerminal(t *testing.T, out io.Writer, w, h uint32, scale int32) (*Terminal, native.Handle, *recorder) {
	t.Helper()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	term := New(pr, out)
	h0 := term.Open("test", w, h, scale)
	if h0 == 0 {
		t.Fatalf("Open returned zero handle")
	}
	t.Cleanup(func() { term.Close(h0) })

	rec := &recorder{}
	token := native.Register(rec.onKey)
	t.Cleanup(func() { native.Unregister(token) })
	term.SetKeyCallback(h0, token)

	return term, h0, rec
}

func feed(term *Terminal, s string) {
	term.mu.Lock()
	defer term.mu.Unlock()
	term.input = append(term.input, s...)
}

func TestDecode(t *testing.T) {
	p := ansi.NewParser()
	tests := []struct {
		name string
		in   string
		want []int32
		rest  string
		intr  bool
		flush bool
	}{
		{name: "printable", in: "aZ1 ", want: []int32{'a', 'Z', '1', ' '}},
		{name: "controls", in: "\r\t\x7f", want: []int32{'\r', '\t', 0x7f}},
		{name: "lone escape waits", in: "\x1b", rest: "\x1b"},
		{name: "lone escape flushed", in: "\x1b", flush: true, want: []int32{0x1b}},
		{name: "double escape", in: "\x1b\x1b", want: []int32{0x1b}, rest: "\x1b"},
		{name: "arrows", in: "\x1b[A\x1b[B\x1b[C\x1b[D", want: []int32{keys.TermUp, keys.TermDown, keys.TermRight, keys.TermLeft}},
		{name: "ss3 arrows", in: "\x1bOA\x1bOP", want: []int32{keys.TermUp, keys.TermF1}},
		{name: "tilde keys", in: "\x1b[3~\x1b[5~\x1b[24~", want: []int32{keys.TermDelete, keys.TermPageUp, keys.TermF12}},
		{name: "home end", in: "\x1b[H\x1b[F\x1b[1~\x1b[4~", want: []int32{keys.TermHome, keys.TermEnd, keys.TermHome, keys.TermEnd}},
		{name: "alt key", in: "\x1bx", want: []int32{'x'}},
		{name: "incomplete csi", in: "q\x1b[1", want: []int32{'q'}, rest: "\x1b[1"},
		{name: "incomplete ss3", in: "\x1bO", rest: "\x1bO"},
		{name: "ctrl c", in: "a\x03", want: []int32{'a'}, intr: true},
		{name: "unknown csi", in: "\x1b[?25h", want: nil},
		{name: "utf8 ignored", in: "é", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, rest, intr := decode([]byte(tc.in), p, tc.flush)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("codes = %v, want %v", got, tc.want)
			}
			if string(rest) != tc.rest {
				t.Fatalf("rest = %q, want %q", rest, tc.rest)
			}
			if intr != tc.intr {
				t.Fatalf("interrupt = %v, want %v", intr, tc.intr)
			}
		})
	}
}

func TestDecodedCodesAreMapped(t *testing.T) {
	p := ansi.NewParser()
	got, _, _ := decode([]byte("w\x1b[D\x1b[15~\x1b"), p, true)
	want := []keys.Key{keys.KeyW, keys.KeyLeft, keys.KeyF5, keys.KeyEscape}
	if len(got) != len(want) {
		t.Fatalf("codes = %v", got)
	}
	for i, raw := range got {
		if k := keys.Terminal.Translate(raw); k != want[i] {
			t.Fatalf("code %#x = %v, want %v", raw, k, want[i])
		}
	}
}

func TestOpenWritesSetupAndCloseRestores(t *testing.T) {
	var out bytes.Buffer
	term := New(bytes.NewReader(nil), &out)

	h := term.Open("demo", 2, 2, 1)
	if h == 0 {
		t.Fatalf("Open returned zero handle")
	}
	if h2 := term.Open("again", 2, 2, 1); h2 != 0 {
		t.Fatalf("second Open returned %v, want 0", h2)
	}

	setup := out.String()
	for _, seq := range []string{ansi.SetModeAltScreenSaveCursor, ansi.HideCursor, ansi.SetWindowTitle("demo")} {
		if !strings.Contains(setup, seq) {
			t.Fatalf("setup output %q missing %q", setup, seq)
		}
	}

	out.Reset()
	term.Close(h)
	teardown := out.String()
	for _, seq := range []string{ansi.ShowCursor, ansi.ResetModeAltScreenSaveCursor} {
		if !strings.Contains(teardown, seq) {
			t.Fatalf("teardown output %q missing %q", teardown, seq)
		}
	}

	out.Reset()
	term.Close(h)
	if out.Len() != 0 {
		t.Fatalf("second Close wrote %q", out.String())
	}
}

func TestOpenRejectsEmptySize(t *testing.T) {
	term := New(bytes.NewReader(nil), io.Discard)
	if h := term.Open("x", 0, 10, 1); h != 0 {
		t.Fatalf("Open(0x10) = %v, want 0", h)
	}
}

func colorOf(t *testing.T, c color.Color) uint32 {
	t.Helper()
	if c == nil {
		t.Fatalf("nil color")
	}
	r, g, b, _ := c.RGBA()
	return (r>>8)<<16 | (g>>8)<<8 | b>>8
}

func TestRenderHalfBlocks(t *testing.T) {
	emu := vt.NewSafeEmulator(20, 10)
	defer emu.Close()

	var out bytes.Buffer
	term, h, _ := openTerminal(t, &out, 2, 3, 2)

	pixels := []uint32{
		0xff0000, 0x00ff00,
		0x0000ff, 0xffffff,
		0x123456, 0xff000000,
	}
	out.Reset()
	term.Update(h, pixels)
	if _, err := emu.Write(out.Bytes()); err != nil {
		t.Fatalf("emulator write: %v", err)
	}

	// Scale 2: 4x6 pixels in 4x3 cells.
	tests := []struct {
		x, y     int
		fg, bg   uint32
		wantText string
	}{
		{0, 0, 0xff0000, 0xff0000, upperHalfBlock},
		{3, 0, 0x00ff00, 0x00ff00, upperHalfBlock},
		{1, 1, 0x0000ff, 0x0000ff, upperHalfBlock},
		{2, 1, 0xffffff, 0xffffff, upperHalfBlock},
		{0, 2, 0x123456, 0x123456, upperHalfBlock},
		{3, 2, 0x000000, 0x000000, upperHalfBlock},
	}
	for _, tc := range tests {
		cell := emu.CellAt(tc.x, tc.y)
		if cell == nil {
			t.Fatalf("no cell at %d,%d", tc.x, tc.y)
		}
		if cell.Content != tc.wantText {
			t.Fatalf("cell %d,%d content = %q, want %q", tc.x, tc.y, cell.Content, tc.wantText)
		}
		if got := colorOf(t, cell.Style.Fg); got != tc.fg {
			t.Fatalf("cell %d,%d fg = %06x, want %06x", tc.x, tc.y, got, tc.fg)
		}
		if got := colorOf(t, cell.Style.Bg); got != tc.bg {
			t.Fatalf("cell %d,%d bg = %06x, want %06x", tc.x, tc.y, got, tc.bg)
		}
	}
	if cell := emu.CellAt(4, 0); cell != nil && cell.Content == upperHalfBlock {
		t.Fatalf("rendered past the framebuffer width")
	}
}

func TestRenderOddHeight(t *testing.T) {
	emu := vt.NewSafeEmulator(10, 5)
	defer emu.Close()

	var out bytes.Buffer
	term, h, _ := openTerminal(t, &out, 1, 3, 1)

	out.Reset()
	term.Update(h, []uint32{0x111111, 0x222222, 0x333333})
	if _, err := emu.Write(out.Bytes()); err != nil {
		t.Fatalf("emulator write: %v", err)
	}

	first := emu.CellAt(0, 0)
	last := emu.CellAt(0, 1)
	if first == nil || last == nil {
		t.Fatalf("missing cells")
	}
	if got := colorOf(t, first.Style.Bg); got != 0x222222 {
		t.Fatalf("first row bg = %06x", got)
	}
	if got := colorOf(t, last.Style.Fg); got != 0x333333 {
		t.Fatalf("last row fg = %06x", got)
	}
	if got := colorOf(t, last.Style.Bg); got != 0 {
		t.Fatalf("last row bg = %06x, want black", got)
	}
}

func TestRenderSkipsRepeatedStyles(t *testing.T) {
	var out bytes.Buffer
	term, h, _ := openTerminal(t, &out, 8, 2, 1)

	pixels := make([]uint32, 16)
	for i := range pixels {
		pixels[i] = 0xabcdef
	}
	out.Reset()
	term.Update(h, pixels)

	if n := strings.Count(out.String(), "38;2;171;205;239"); n != 1 {
		t.Fatalf("style emitted %d times, want 1", n)
	}
	if n := strings.Count(out.String(), upperHalfBlock); n != 8 {
		t.Fatalf("drew %d cells, want 8", n)
	}
}

func TestShortBufferDrawsNothing(t *testing.T) {
	var out bytes.Buffer
	term, h, _ := openTerminal(t, &out, 4, 4, 1)

	out.Reset()
	term.Update(h, make([]uint32, 3))
	if strings.Contains(out.String(), upperHalfBlock) {
		t.Fatalf("short buffer was drawn")
	}
}

func TestPumpSynthesizesRelease(t *testing.T) {
	term, h, rec := openTerminal(t, io.Discard, 1, 1, 1)

	feed(term, "a")
	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{'a', native.KeyPressed}}) {
		t.Fatalf("first pump = %v", got)
	}

	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{'a', native.KeyReleased}}) {
		t.Fatalf("second pump = %v", got)
	}

	term.ShouldClose(h)
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("idle pump = %v", got)
	}
}

func TestPumpKeepsRetypedKeyHeld(t *testing.T) {
	term, h, rec := openTerminal(t, io.Discard, 1, 1, 1)

	feed(term, "\x1b[A")
	term.ShouldClose(h)
	rec.take()

	feed(term, "\x1b[Ab")
	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{'b', native.KeyPressed}}) {
		t.Fatalf("retyped pump = %v", got)
	}

	term.ShouldClose(h)
	want := []event{{keys.TermUp, native.KeyReleased}, {'b', native.KeyReleased}}
	if got := rec.take(); !slices.Equal(got, want) {
		t.Fatalf("release pump = %v, want %v", got, want)
	}
}

func TestPumpWaitsForSplitSequence(t *testing.T) {
	term, h, rec := openTerminal(t, io.Discard, 1, 1, 1)

	feed(term, "\x1b[2")
	term.ShouldClose(h)
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("partial sequence delivered %v", got)
	}

	feed(term, "~")
	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{keys.TermInsert, native.KeyPressed}}) {
		t.Fatalf("completed sequence = %v", got)
	}
}

func TestPumpJoinsEscapeSplitAcrossReads(t *testing.T) {
	term, h, rec := openTerminal(t, io.Discard, 1, 1, 1)

	feed(term, "\x1b")
	term.ShouldClose(h)
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("lone escape delivered %v before the next pump", got)
	}

	feed(term, "[A")
	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{keys.TermUp, native.KeyPressed}}) {
		t.Fatalf("joined sequence = %v, want TermUp press", got)
	}
}

func TestPumpFlushesLoneEscape(t *testing.T) {
	term, h, rec := openTerminal(t, io.Discard, 1, 1, 1)

	feed(term, "\x1b")
	term.ShouldClose(h)
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("first pump = %v", got)
	}

	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{0x1b, native.KeyPressed}}) {
		t.Fatalf("second pump = %v, want escape press", got)
	}

	term.ShouldClose(h)
	if got := rec.take(); !slices.Equal(got, []event{{0x1b, native.KeyReleased}}) {
		t.Fatalf("third pump = %v, want escape release", got)
	}
}

func TestCtrlCRequestsClose(t *testing.T) {
	term, h, rec := openTerminal(t, io.Discard, 1, 1, 1)

	if term.ShouldClose(h) {
		t.Fatalf("ShouldClose before input")
	}
	feed(term, "\x03")
	if !term.ShouldClose(h) {
		t.Fatalf("ShouldClose after Ctrl-C = false")
	}
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("Ctrl-C delivered %v", got)
	}
}

func TestEndOfInputRequestsClose(t *testing.T) {
	term := New(bytes.NewReader([]byte("x")), io.Discard)
	h := term.Open("eof", 1, 1, 1)
	defer term.Close(h)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		term.mu.Lock()
		done := term.readErr != nil
		term.mu.Unlock()
		if done {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !term.ShouldClose(h) {
		t.Fatalf("ShouldClose after EOF = false")
	}
}

func TestScreenSizeFallback(t *testing.T) {
	term := New(bytes.NewReader(nil), io.Discard)
	packed := term.ScreenSize()
	if w, h := packed>>16, packed&0xffff; w != fallbackColumns || h != fallbackRows*2 {
		t.Fatalf("ScreenSize = %dx%d", w, h)
	}
	if term.KeyTable() == nil {
		t.Fatalf("KeyTable = nil")
	}
}
