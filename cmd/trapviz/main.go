// Command trapviz builds the trapezoidal map of a set of segments, prints a summary and
// optionally writes the construction trace and one picture per trace event.
//
// Usage:
//
//	trapviz [flags]
//
// Input is read from -in, or standard input, either as a JSON document
//
//	{"width": 800, "height": 600, "points": [{"x": 100, "y": 100, "label": "A"}, ...]}
//
// or as WKT line strings, one per line. Consecutive points form segments.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"honnef.co/go/trapmap"
	"honnef.co/go/trapmap/input"
	"honnef.co/go/trapmap/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, chalk.Red.Color("trapviz: "+err.Error()))
		os.Exit(1)
	}
}

// pointsFlag collects repeated -locate x,y flags.
type pointsFlag []trapmap.Point

func (pf *pointsFlag) String() string {
	parts := make([]string, len(*pf))
	for i, p := range *pf {
		parts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (pf *pointsFlag) Set(s string) error {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return errors.Errorf("%q is not of the form x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return errors.Wrapf(err, "parsing x of %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return errors.Wrapf(err, "parsing y of %q", s)
	}
	*pf = append(*pf, trapmap.Pt(x, y))
	return nil
}

type config struct {
	in      string
	format  string
	width   float64
	height  float64
	seed    uint64
	probe   float64
	margin  float64
	check   bool
	verify  bool
	trace   string
	frames  string
	image   string
	scale   float64
	labels  bool
	locate  pointsFlag
	verbose bool
}

func newApp(stdout, stderr io.Writer, action func(*config) error) *cli.App {
	app := cli.NewApp()
	app.Name = "trapviz"
	app.Usage = "build the trapezoidal map of a set of segments"
	app.HideVersion = true
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "in", Value: "-", Usage: "input `file`; - reads standard input"},
		cli.StringFlag{Name: "format", Usage: "input format, json or wkt (default: from the file extension, else json)"},
		cli.Float64Flag{Name: "width", Usage: "viewport width (default: from the JSON document, else 800)"},
		cli.Float64Flag{Name: "height", Usage: "viewport height (default: from the JSON document, else 600)"},
		cli.Uint64Flag{Name: "seed", Usage: "seed for the insertion order; 0 picks a random order"},
		cli.Float64Flag{Name: "probe", Usage: "probe distance for shared left endpoints (default: scaled to the bounding box)"},
		cli.Float64Flag{Name: "margin", Usage: "margin between viewport and bounding box (default: 5% of the larger side)"},
		cli.BoolFlag{Name: "check", Usage: "reject inputs with crossing segments or shared x coordinates before building"},
		cli.BoolFlag{Name: "verify", Usage: "verify the map's invariants after every insertion"},
		cli.StringFlag{Name: "trace", Usage: "write the construction trace as JSON to `file`"},
		cli.StringFlag{Name: "frames", Usage: "write one picture per trace event to `dir`"},
		cli.StringFlag{Name: "image", Value: "svg", Usage: "picture format, svg or png"},
		cli.Float64Flag{Name: "scale", Value: 1, Usage: "pixels per map unit in pictures"},
		cli.BoolTFlag{Name: "labels", Usage: "draw labels in SVG pictures"},
		cli.GenericFlag{Name: "locate", Value: &pointsFlag{}, Usage: "locate the point `x,y` in the finished map; may be repeated"},
		cli.BoolFlag{Name: "v", Usage: "log debug output"},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := configFrom(c)
		if err != nil {
			return err
		}
		return action(cfg)
	}
	return app
}

func configFrom(c *cli.Context) (*config, error) {
	if c.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments %q", []string(c.Args()))
	}
	cfg := &config{
		in:      c.String("in"),
		format:  c.String("format"),
		width:   c.Float64("width"),
		height:  c.Float64("height"),
		seed:    c.Uint64("seed"),
		probe:   c.Float64("probe"),
		margin:  c.Float64("margin"),
		check:   c.Bool("check"),
		verify:  c.Bool("verify"),
		trace:   c.String("trace"),
		frames:  c.String("frames"),
		image:   c.String("image"),
		scale:   c.Float64("scale"),
		labels:  c.BoolT("labels"),
		verbose: c.Bool("v"),
	}
	if pf, ok := c.Generic("locate").(*pointsFlag); ok {
		cfg.locate = *pf
	}
	if cfg.format == "" {
		cfg.format = "json"
		if strings.EqualFold(filepath.Ext(cfg.in), ".wkt") {
			cfg.format = "wkt"
		}
	}
	switch cfg.format {
	case "json", "wkt":
	default:
		return nil, errors.Errorf("unknown input format %q", cfg.format)
	}
	switch cfg.image {
	case "svg", "png":
	default:
		return nil, errors.Errorf("unknown picture format %q", cfg.image)
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := newApp(stdout, stderr, func(cfg *config) error {
		return build(cfg, stdin, stdout, stderr)
	})
	return app.Run(append([]string{"trapviz"}, args...))
}

func build(cfg *config, stdin io.Reader, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	trapmap.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer trapmap.SetLogger(nil)

	points, size, err := readInput(cfg, stdin)
	if err != nil {
		return err
	}
	points = input.Labeled(points)

	if cfg.check {
		if err := input.CheckArrangement(points); err != nil {
			return err
		}
	}

	opts := []trapmap.Option{trapmap.WithCheck(cfg.verify)}
	if cfg.seed != 0 {
		opts = append(opts, trapmap.WithRand(rand.New(rand.NewPCG(cfg.seed, cfg.seed))))
	}
	if cfg.probe != 0 {
		opts = append(opts, trapmap.WithProbeDistance(cfg.probe))
	}
	if cfg.margin != 0 {
		opts = append(opts, trapmap.WithMargin(cfg.margin))
	}
	if cfg.trace == "" && cfg.frames == "" {
		opts = append(opts, trapmap.WithoutTrace())
	}

	m, err := trapmap.Build(points, size, opts...)
	if err != nil {
		return err
	}

	if cfg.trace != "" {
		if err := writeTrace(cfg.trace, m.Trace()); err != nil {
			return err
		}
	}
	if cfg.frames != "" {
		if err := writeFrames(cfg, m.Trace()); err != nil {
			return err
		}
	}

	summarize(stdout, m, cfg.locate)
	return nil
}

func readInput(cfg *config, stdin io.Reader) ([]trapmap.LabeledPoint, trapmap.Size, error) {
	r := stdin
	if cfg.in != "-" {
		f, err := os.Open(cfg.in)
		if err != nil {
			return nil, trapmap.Size{}, errors.Wrap(err, "opening input")
		}
		defer f.Close()
		r = f
	}

	size := trapmap.Sz(800, 600)
	var points []trapmap.LabeledPoint
	switch cfg.format {
	case "json":
		doc, err := input.ReadJSON(r)
		if err != nil {
			return nil, trapmap.Size{}, err
		}
		if doc.Width != 0 || doc.Height != 0 {
			size = doc.Size()
		}
		points = doc.LabeledPoints()
	case "wkt":
		var err error
		points, err = input.ReadWKT(r)
		if err != nil {
			return nil, trapmap.Size{}, err
		}
	}
	if cfg.width != 0 {
		size.Width = cfg.width
	}
	if cfg.height != 0 {
		size.Height = cfg.height
	}
	return points, size, nil
}

func writeTrace(path string, events []trapmap.Event) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating trace file")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "closing trace file")
		}
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(events), "writing trace")
}

func writeFrames(cfg *config, events []trapmap.Event) error {
	if err := os.MkdirAll(cfg.frames, 0o755); err != nil {
		return errors.Wrap(err, "creating frame directory")
	}
	opts := render.Options{Scale: cfg.scale, Labels: cfg.labels}
	write := render.WriteSVG
	if cfg.image == "png" {
		write = render.WritePNG
	}
	for _, frame := range render.Replay(events) {
		name := filepath.Join(cfg.frames, fmt.Sprintf("%04d-%s.%s", frame.Index, frame.Kind, cfg.image))
		if err := writeFrame(name, frame, opts, write); err != nil {
			return err
		}
	}
	trapmap.Logger().Debug("trapviz: wrote frames", "dir", cfg.frames, "count", len(events))
	return nil
}

func writeFrame(name string, frame render.Frame, opts render.Options, write func(io.Writer, render.Frame, render.Options) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating frame")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrapf(cerr, "closing %s", name)
		}
	}()
	return write(f, frame, opts)
}

func summarize(w io.Writer, m *trapmap.Map, queries []trapmap.Point) {
	fmt.Fprintf(w, "%s %d segments, %d trapezoids, search depth %d, %d search nodes\n",
		chalk.Green.Color("ok"),
		len(m.Segments()), m.NumTrapezoids(), m.Depth(), len(m.Snapshot().Nodes))
	for _, q := range queries {
		n := m.Locate(q)
		if n.Kind != trapmap.TrapezoidNode {
			fmt.Fprintf(w, "%v %s on %v\n", q, chalk.Yellow.Color("boundary"), n)
			continue
		}
		t := m.Trapezoid(n.Trapezoid)
		fmt.Fprintf(w, "%v %s (top %s, bottom %s, left %v, right %v)\n",
			q, chalk.Cyan.Color(t.Label()), t.Top.Label, t.Bottom.Label, t.LeftP, t.RightP)
	}
}
