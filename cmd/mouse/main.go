package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/vedantwpatil/mouse"
	"github.com/vedantwpatil/mouse/internal/config"
	"github.com/vedantwpatil/mouse/internal/platform"
	"github.com/vedantwpatil/mouse/internal/tracking"
)

type opener func(backend string, opts ...mouse.Option) (*mouse.Mouse, error)

type Application struct {
	config  *config.Config
	log     *logrus.Logger
	open    opener
	profile interface{ Stop() }
}

func NewApplication(open opener) *Application {
	return &Application{open: open}
}

func (app *Application) CLI() *cli.App {
	return &cli.App{
		Name:  "mouse",
		Usage: "query and drive the mouse cursor",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML config file"},
			&cli.StringFlag{Name: "backend", Usage: "pointer backend: " + strings.Join([]string{platform.Native, platform.Robotgo}, ", ")},
			&cli.StringFlag{Name: "log-level", Usage: "panic, fatal, error, warn, info, debug or trace"},
			&cli.StringFlag{Name: "cpuprofile", Usage: "write a CPU profile into `DIR`"},
		},
		Before: app.setup,
		After:  app.teardown,
		Commands: []*cli.Command{
			{
				Name:   "position",
				Usage:  "print the cursor position",
				Action: app.position,
			},
			{
				Name:      "move",
				Usage:     "move the cursor to X Y",
				ArgsUsage: "[--] X Y",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: "spread the motion over this long"},
					&cli.StringFlag{Name: "abort-key", Usage: "stop the motion when this key is pressed"},
				},
				Action: app.move,
			},
			{
				Name:      "drag",
				Usage:     "drag with the left button to X Y",
				ArgsUsage: "[--] X Y",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: "spread the drag over this long"},
					&cli.StringFlag{Name: "abort-key", Usage: "stop the drag when this key is pressed"},
				},
				Action: app.drag,
			},
			{
				Name:      "click",
				Usage:     "click at the cursor, or at X Y",
				ArgsUsage: "[--] [X Y]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "button", Aliases: []string{"b"}, Value: "left", Usage: "left, right, middle or buttonN"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "click count for left clicks"},
				},
				Action: app.click,
			},
			{
				Name:      "scroll",
				Usage:     "scroll by AMOUNT lines or pixels, positive is up",
				ArgsUsage: "[--] AMOUNT",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "horizontal", Usage: "scroll along the x axis"},
					&cli.StringFlag{Name: "unit", Usage: "line or pixel"},
					&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: "spread the scroll over this long"},
				},
				Action: app.scroll,
			},
			{
				Name:  "watch",
				Usage: "print the cursor position whenever it changes",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "rate", Usage: "samples per second"},
				},
				Action: app.watch,
			},
		},
	}
}

func (app *Application) setup(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return err
	}
	if cCtx.IsSet("backend") {
		cfg.Backend = cCtx.String("backend")
	}
	if cCtx.IsSet("log-level") {
		cfg.Log.Level = cCtx.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.config = cfg

	if app.log, err = cfg.Logger(); err != nil {
		return err
	}
	if dir := cCtx.String("cpuprofile"); dir != "" {
		app.profile = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
		app.log.WithField("dir", dir).Info("CPU profiling enabled")
	}
	return nil
}

func (app *Application) teardown(*cli.Context) error {
	if app.profile != nil {
		app.profile.Stop()
	}
	return nil
}

func (app *Application) mouse() (*mouse.Mouse, error) {
	return app.open(app.config.Backend,
		mouse.WithRate(app.config.Motion.Rate),
		mouse.WithHold(app.config.Click.Hold),
		mouse.WithLogger(app.log),
	)
}

func (app *Application) position(cCtx *cli.Context) error {
	m, err := app.mouse()
	if err != nil {
		return err
	}
	p, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, p)
	return nil
}

func (app *Application) move(cCtx *cli.Context) error {
	target, err := pointArgs(cCtx.Args())
	if err != nil {
		return err
	}
	m, err := app.mouse()
	if err != nil {
		return err
	}
	ctx, cancel := tracking.AbortOnKey(cCtx.Context, cCtx.String("abort-key"), app.log)
	defer cancel()

	if err := m.MoveTo(ctx, target, cCtx.Duration("duration")); err != nil {
		return err
	}
	return app.report(cCtx, m)
}

func (app *Application) drag(cCtx *cli.Context) error {
	target, err := pointArgs(cCtx.Args())
	if err != nil {
		return err
	}
	d := app.config.Drag.Duration
	if cCtx.IsSet("duration") {
		d = cCtx.Duration("duration")
	}
	m, err := app.mouse()
	if err != nil {
		return err
	}
	ctx, cancel := tracking.AbortOnKey(cCtx.Context, cCtx.String("abort-key"), app.log)
	defer cancel()

	if err := m.DragTo(ctx, target, d); err != nil {
		return err
	}
	return app.report(cCtx, m)
}

func (app *Application) click(cCtx *cli.Context) error {
	b, err := platform.ParseButton(cCtx.String("button"))
	if err != nil {
		return err
	}
	count := cCtx.Int("count")
	if count < 1 {
		return fmt.Errorf("%w: --count must be at least 1", mouse.ErrInvalidArgument)
	}
	if count > 1 && b != mouse.Left {
		return fmt.Errorf("%w: --count only applies to the left button", mouse.ErrInvalidArgument)
	}

	var target mouse.Coercible
	if cCtx.NArg() > 0 {
		if target, err = pointArgs(cCtx.Args()); err != nil {
			return err
		}
	}

	m, err := app.mouse()
	if err != nil {
		return err
	}
	ctx := cCtx.Context

	if count == 1 {
		if target != nil {
			return m.ClickAt(ctx, b, target)
		}
		return m.Click(ctx, b)
	}
	if target != nil {
		if err := m.MoveTo(ctx, target, 0); err != nil {
			return err
		}
	}
	switch count {
	case 2:
		return m.DoubleClick()
	case 3:
		return m.TripleClick()
	default:
		return m.MultiClick(count)
	}
}

func (app *Application) scroll(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return fmt.Errorf("%w: scroll takes one AMOUNT", mouse.ErrInvalidArgument)
	}
	amount, err := strconv.Atoi(cCtx.Args().First())
	if err != nil {
		return fmt.Errorf("%w: amount %q: %v", mouse.ErrInvalidArgument, cCtx.Args().First(), err)
	}
	unitName := app.config.Scroll.Unit
	if cCtx.IsSet("unit") {
		unitName = cCtx.String("unit")
	}
	unit, err := platform.ParseScrollUnit(unitName)
	if err != nil {
		return err
	}
	d := app.config.Scroll.Duration
	if cCtx.IsSet("duration") {
		d = cCtx.Duration("duration")
	}

	m, err := app.mouse()
	if err != nil {
		return err
	}
	if cCtx.Bool("horizontal") {
		return m.HorizontalScroll(cCtx.Context, amount, unit, d)
	}
	return m.Scroll(cCtx.Context, amount, unit, d)
}

func (app *Application) watch(cCtx *cli.Context) error {
	rate := app.config.Watch.Rate
	if cCtx.IsSet("rate") {
		rate = cCtx.Float64("rate")
	}
	m, err := app.mouse()
	if err != nil {
		return err
	}

	out := cCtx.App.Writer
	inPlace := isTerminal(out)
	err = tracking.Watch(cCtx.Context, positioner{m}, rate, func(s tracking.Sample) {
		p := mouse.Point{X: s.X, Y: s.Y}
		if inPlace {
			fmt.Fprintf(out, "\r\033[K%v", p)
		} else {
			fmt.Fprintf(out, "%.3f %v\n", s.Elapsed.Seconds(), p)
		}
	})
	if inPlace {
		fmt.Fprintln(out)
	}
	return err
}

func (app *Application) report(cCtx *cli.Context, m *mouse.Mouse) error {
	p, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	app.log.WithField("position", p).Debug("done")
	fmt.Fprintln(cCtx.App.Writer, p)
	return nil
}

// positioner adapts a Mouse to tracking.Positioner.
type positioner struct{ m *mouse.Mouse }

func (p positioner) Position() (float64, float64, error) {
	pt, err := p.m.CurrentPosition()
	return pt.X, pt.Y, err
}

func pointArgs(args cli.Args) (mouse.Pair, error) {
	if args.Len() != 2 {
		return nil, fmt.Errorf("%w: want X Y, got %d arguments", mouse.ErrInvalidCoercion, args.Len())
	}
	pair := make(mouse.Pair, 2)
	for i := range pair {
		v, err := strconv.ParseFloat(args.Get(i), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", mouse.ErrInvalidCoercion, args.Get(i))
		}
		pair[i] = v
	}
	return pair, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var negativeNumber = regexp.MustCompile(`^-(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// separateNegatives inserts "--" ahead of the first positional argument when
// it is a negative number, so "move -1920 40" and "scroll -3" do not parse as
// flags. Flag values such as "--duration -1s" are left alone.
func separateNegatives(c *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}
	valued := valueFlags(c.Flags)
	var cmd *cli.Command
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case negativeNumber.MatchString(arg):
			if cmd == nil {
				return args
			}
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case strings.HasPrefix(arg, "-"):
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") {
				continue
			}
			if valued[name] {
				i++
			}
		case cmd == nil:
			if cmd = c.Command(arg); cmd == nil {
				return args
			}
			valued = valueFlags(cmd.Flags)
		default:
			return args
		}
	}
	return args
}

func valueFlags(flags []cli.Flag) map[string]bool {
	valued := make(map[string]bool)
	for _, f := range flags {
		tv, ok := f.(interface{ TakesValue() bool })
		if !ok || !tv.TakesValue() {
			continue
		}
		for _, name := range f.Names() {
			valued[name] = true
		}
	}
	return valued
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := NewApplication(mouse.Open).CLI()
	if err := c.RunContext(ctx, separateNegatives(c, os.Args)); err != nil {
		fmt.Fprintf(os.Stderr, "mouse: %v\n", err)
		stop()
		os.Exit(1)
	}
}
