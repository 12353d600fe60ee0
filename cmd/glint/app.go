package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/kungfusheep/glint"
	"github.com/kungfusheep/glint/internal/config"
	"github.com/kungfusheep/glint/internal/logging"
	"github.com/kungfusheep/glint/internal/termsize"
	"github.com/kungfusheep/glint/internal/treefile"
)

// Screen size used when neither flags nor the terminal give one.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	opts *config.Options

	log      logr.Logger
	tpl      *treefile.Template
	resolver glint.Resolver
	frame    *glint.Frame
	engine   *glint.Engine
}

func newApp() *app {
	return &app{opts: config.NewOptions(), log: logr.Discard()}
}

func (a *app) setup(fs *pflag.FlagSet) error {
	if err := a.opts.Load(config.NewViper(a.opts.ConfigFile), fs); err != nil {
		return err
	}
	if err := a.opts.Validate(); err != nil {
		return err
	}
	log, err := logging.New(a.opts.LogLevel)
	if err != nil {
		return err
	}
	a.log = log

	switch a.opts.ColorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	if err := a.load(); err != nil {
		return err
	}
	a.frame = glint.NewFrame(glint.WithFrameLogger(log.WithName("frame")))
	a.engine = glint.NewEngine(glint.WithLogger(log.WithName("layout")))
	if a.opts.Skeleton {
		a.resolver = glint.NewDeferring(glint.WithResolverLogger(log.WithName("resolve")))
	} else {
		a.resolver = glint.NewImmediate(glint.WithResolverLogger(log.WithName("resolve")))
	}
	return nil
}

// load reads the tree file named by the options.
func (a *app) load() error {
	chars, err := treefile.BorderStyleByName(a.opts.Border)
	if err != nil {
		return err
	}
	tpl, err := treefile.Load(a.opts.TreeFile,
		treefile.WithDefaultBorder(chars),
		treefile.WithLogger(a.log.WithName("treefile")),
	)
	if err != nil {
		return err
	}
	a.tpl = tpl
	a.log.V(1).Info("loaded tree file", "path", a.opts.TreeFile)
	return nil
}

// size returns the screen size from the options, filling unset dimensions
// from the terminal on stdout.
func (a *app) size() (int, int) {
	w, h := termsize.Fallback(int(os.Stdout.Fd()), fallbackWidth, fallbackHeight)
	if a.opts.Width > 0 {
		w = a.opts.Width
	}
	if a.opts.Height > 0 {
		h = a.opts.Height
	}
	return w, h
}

// draw builds the tree for a fresh frame and renders it at w x h. The
// screen size is visible to expressions as cols and rows.
func (a *app) draw(w, h int) (*glint.Buffer, error) {
	var buf *glint.Buffer
	err := a.frame.Scope(func(f *glint.Frame) error {
		var st glint.State = a.tpl.State()
		st = glint.NewScope(st, "cols", glint.OwnedRef(glint.Signed(w)))
		st = glint.NewScope(st, "rows", glint.OwnedRef(glint.Signed(h)))
		root, err := a.tpl.Build(f, a.resolver, st)
		if err != nil {
			return errors.WithMessage(err, a.opts.TreeFile)
		}
		buf, err = a.engine.Render(root, w, h)
		return err
	})
	if err != nil {
		return nil, err
	}
	a.log.V(1).Info("drew frame", "generation", a.frame.Generation(), "width", w, "height", h)
	return buf, nil
}

// output returns buf as text, with ANSI styling unless color is off.
func (a *app) output(buf *glint.Buffer) string {
	if color.NoColor {
		return buf.String()
	}
	return buf.Render()
}
