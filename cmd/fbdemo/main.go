package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tinyrange/minifb/internal/bridge"
	"github.com/tinyrange/minifb/internal/config"
	"github.com/tinyrange/minifb/internal/keys"
	"github.com/tinyrange/minifb/internal/keystate"
	"github.com/tinyrange/minifb/internal/termfb"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fbdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	configPath := fs.String("config", "", "YAML window config to load")
	writeConfig := fs.String("write-config", "", "Write the effective config to this path and exit")
	title := fs.String("title", "", "Window title")
	width := fs.Int("width", 0, "Framebuffer width in pixels")
	height := fs.Int("height", 0, "Framebuffer height in pixels")
	scaleFlag := fs.String("scale", "", "Scale mode (x1, x2, x4, x8, x16, x32, fit)")
	backend := fs.String("backend", "", "Backend (native, terminal)")
	library := fs.String("library", "", "Path to the minifb shared library")
	tracePath := fs.String("trace", "", "Record frame and key events to this file")
	logPath := fs.String("log", "", "Write logs to this file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Open a framebuffer window and draw an animated test pattern.\n")
		fmt.Fprintf(os.Stderr, "Arrow keys move the cursor block, space changes its color, escape quits.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Title = *title
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "scale":
			cfg.Scale = *scaleFlag
		case "backend":
			cfg.Backend = *backend
		case "library":
			cfg.Library = *library
		case "trace":
			cfg.Trace = *tracePath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *writeConfig != "" {
		return config.Save(*writeConfig, cfg)
	}

	logger, closeLog, err := newLogger(*logPath, *debug, cfg.Backend)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []bridge.Option{
		bridge.WithScale(cfg.ScaleMode()),
		bridge.WithRepeatPolicy(cfg.RepeatPolicy()),
		bridge.WithLogger(logger),
	}
	if cfg.Library != "" {
		opts = append(opts, bridge.WithLibrary(cfg.Library))
	}
	if cfg.Backend == config.BackendTerminal {
		surface := termfb.Stdio()
		surface.SetLogger(logger)
		opts = append(opts, bridge.WithSurface(surface))
	}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		opts = append(opts, bridge.WithTrace(f))
	}

	w, err := bridge.Open(cfg.Title, cfg.Width, cfg.Height, opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("window open",
		"title", cfg.Title,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"scale", w.Scale(),
		"backend", cfg.Backend)

	return loop(w, cfg.Width, cfg.Height, logger)
}

// newLogger writes to path when set. Without a path it logs to stderr,
// except when the terminal backend owns a tty stderr.
func newLogger(path string, debug bool, backend string) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create log: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case backend == config.BackendTerminal && term.IsTerminal(int(os.Stderr.Fd())):
		out = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

var palette = []uint32{0xffffff, 0xff5050, 0x50ff50, 0x5080ff, 0xffd040}

func loop(w *bridge.Window, width, height int, logger *slog.Logger) error {
	pixels := make([]uint32, width*height)
	block := max(min(width, height)/8, 1)
	x, y := (width-block)/2, (height-block)/2
	color := 0
	start := time.Now()
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for w.IsOpen() {
		for _, k := range w.KeysPressed(keystate.RepeatEnabled) {
			logger.Debug("key pressed", "key", k)
			switch k {
			case keys.KeyEscape:
				return nil
			case keys.KeyLeft:
				x = max(x-1, 0)
			case keys.KeyRight:
				x = min(x+1, width-block)
			case keys.KeyUp:
				y = max(y-1, 0)
			case keys.KeyDown:
				y = min(y+1, height-block)
			}
		}
		if w.IsKeyPressed(keys.KeySpace, keystate.RepeatDisabled) {
			color = (color + 1) % len(palette)
			logger.Info("color changed", "color", fmt.Sprintf("%06x", palette[color]))
		}

		draw(pixels, width, height, time.Since(start))
		for by := y; by < y+block; by++ {
			for bx := x; bx < x+block; bx++ {
				pixels[by*width+bx] = palette[color]
			}
		}

		if err := w.Update(pixels); err != nil {
			if errors.Is(err, bridge.ErrClosed) {
				return nil
			}
			return err
		}
		<-ticker.C
	}
	return nil
}

func draw(pixels []uint32, width, height int, t time.Duration) {
	shift := int(t.Milliseconds() / 16)
	for py := range height {
		for px := range width {
			r := uint32((px + shift) * 255 / max(width, 1) & 0xff)
			g := uint32(py * 255 / max(height, 1) & 0xff)
			b := uint32((px + py + shift) & 0xff)
			pixels[py*width+px] = r<<16 | g<<8 | b
		}
	}
}
