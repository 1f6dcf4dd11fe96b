package bridge

import (
	"io"
	"log/slog"
	"time"

	"github.com/tinyrange/minifb/internal/keystate"
	"github.com/tinyrange/minifb/internal/native"
	"github.com/tinyrange/minifb/internal/scale"
)

// Option configures a Window.
type Option interface {
	IsOption()
}

// windowConfig holds parsed window options.
type windowConfig struct {
	scale   scale.Mode
	surface native.Surface
	library string
	logger  *slog.Logger
	clock   func() time.Time
	repeat  keystate.RepeatPolicy
	trace   io.Writer
}

func defaultWindowConfig() windowConfig {
	return windowConfig{
		scale:  scale.X1,
		repeat: keystate.DefaultRepeatPolicy(),
		clock:  time.Now,
	}
}

// option implements Option.
type option struct {
	apply func(*windowConfig)
}

func (o *option) IsOption() {}

// WithScale selects how the framebuffer is scaled on screen.
func WithScale(m scale.Mode) Option {
	return &option{apply: func(c *windowConfig) { c.scale = m }}
}

// WithSurface opens the window on s instead of the minifb library.
func WithSurface(s native.Surface) Option {
	return &option{apply: func(c *windowConfig) { c.surface = s }}
}

// WithLibrary sets the path of the minifb shared library. Ignored when
// WithSurface is given.
func WithLibrary(path string) Option {
	return &option{apply: func(c *windowConfig) { c.library = path }}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return &option{apply: func(c *windowConfig) { c.logger = l }}
}

// WithClock replaces time.Now for key timestamps and frame times.
func WithClock(now func() time.Time) Option {
	return &option{apply: func(c *windowConfig) { c.clock = now }}
}

// WithRepeatPolicy sets the initial key repeat delay and rate.
func WithRepeatPolicy(p keystate.RepeatPolicy) Option {
	return &option{apply: func(c *windowConfig) { c.repeat = p }}
}

// WithTrace records frame timings and key events to w. The window owns the
// recorder and flushes it on Close; w itself is not closed.
func WithTrace(w io.Writer) Option {
	return &option{apply: func(c *windowConfig) { c.trace = w }}
}

func parseOptions(opts []Option) windowConfig {
	cfg := defaultWindowConfig()
	for _, opt := range opts {
		if o, ok := opt.(*option); ok {
			o.apply(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	return cfg
}
