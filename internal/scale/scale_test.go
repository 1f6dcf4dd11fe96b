package scale

import "testing"

type fixedScreen struct {
	w, h  int
	calls int
}

func (s *fixedScreen) ScreenSize() (int, int) {
	s.calls++
	return s.w, s.h
}

func TestResolveFixed(t *testing.T) {
	tests := []struct {
		mode Mode
		want int
	}{
		{X1, 1}, {X2, 2}, {X4, 4}, {X8, 8}, {X16, 16}, {X32, 32},
	}
	for _, tc := range tests {
		screen := &fixedScreen{w: 10, h: 10}
		if got := Resolve(100, 100, tc.mode, screen); got != tc.want {
			t.Errorf("Resolve(100, 100, %v) = %d, want %d", tc.mode, got, tc.want)
		}
		if screen.calls != 0 {
			t.Errorf("%v queried the screen", tc.mode)
		}
	}
}

func TestResolveFitScreen(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		screenW, scrH int
		want          int
	}{
		{"doubling trace", 100, 50, 1000, 1000, 16},
		{"does not fit at all", 2000, 2000, 1920, 1080, 1},
		{"exactly two", 100, 100, 200, 200, 2},
		{"height limited", 320, 240, 2560, 600, 2},
		// 640*(2+1)=1920 fits so the search doubles to 4 even though 4x
		// overflows the screen; largest-fit would pick 3.
		{"greedy overshoot", 640, 360, 1920, 1080, 4},
		{"zero screen", 10, 10, 0, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen := &fixedScreen{w: tc.screenW, h: tc.scrH}
			got := Resolve(tc.w, tc.h, FitScreen, screen)
			if got != tc.want {
				t.Fatalf("Resolve(%d, %d, fit, %dx%d) = %d, want %d",
					tc.w, tc.h, tc.screenW, tc.scrH, got, tc.want)
			}
			if screen.calls != 1 {
				t.Fatalf("screen queried %d times", screen.calls)
			}
		})
	}
}

func TestResolveNeverBelowOne(t *testing.T) {
	for _, mode := range []Mode{X1, X32, FitScreen, Mode(99), Mode(-1)} {
		for _, size := range []int{-5, 0, 1, 1 << 20} {
			if got := Resolve(size, size, mode, ScreenSizeFunc(func() (int, int) { return 4096, 4096 })); got < 1 {
				t.Fatalf("Resolve(%d, %d, %v) = %d", size, size, mode, got)
			}
		}
	}
	if got := Resolve(10, 10, FitScreen, nil); got != 1 {
		t.Fatalf("nil screen: got %d", got)
	}
}

func TestUnpackScreenSize(t *testing.T) {
	w, h := UnpackScreenSize(1920<<16 | 1080)
	if w != 1920 || h != 1080 {
		t.Fatalf("UnpackScreenSize = %dx%d", w, h)
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"x1":        X1,
		"2":         X2,
		"X4":        X4,
		" x32 ":     X32,
		"fit":       FitScreen,
		"FitScreen": FitScreen,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("x3"); err == nil {
		t.Errorf("ParseMode(x3) succeeded")
	}
	if got := Mode(42).String(); got != "Mode(42)" {
		t.Errorf("Mode(42).String() = %q", got)
	}
}
