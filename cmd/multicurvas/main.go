package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/zephyrtronium/multicurvas"
	"github.com/zephyrtronium/multicurvas/inspect"
	"github.com/zephyrtronium/multicurvas/plot"
)

const usage = `usage: multicurvas [-l locale] [-x value] [-d] [expr ...]
       multicurvas -p [-l locale] [-n samples] [-j workers] [plot ...]
       multicurvas -b
       multicurvas -i [-l locale] [-x value]

Evaluates each expression at the given value of its variable, or each line of
standard input if there are no expressions. With -p, the arguments are plot
definitions like "Y=sin(x):-3,3:" and the output is one "x y ok" row per
sample.

  -l locale   decimal convention: point, comma, or a locale name like pt_BR
  -x value    value of the variable (default 0)
  -d          dump tokens, postfix, and bytecode of each expression
  -p          sample plot definitions
  -n samples  samples per plot, overriding the definition
  -j workers  goroutines sampling each plot (default 1)
  -b          benchmark evaluation against native code
  -i          interactive mode
  -h          show this help
`

// config is the parsed command line.
type config struct {
	loc     multicurvas.Locale
	x       float64
	dump    bool
	plot    bool
	samples int
	workers int
	bench   bool
	repl    bool
	args    []string
}

// localeVars are the environment variables consulted for the default locale,
// in order.
var localeVars = []string{"MULTICURVAS_LOCALE", "LC_ALL", "LC_NUMERIC", "LANG"}

func defaultLocale(getenv func(string) string) multicurvas.Locale {
	for _, v := range localeVars {
		s := getenv(v)
		if s == "" {
			continue
		}
		if loc, err := multicurvas.ParseLocale(s); err == nil {
			return loc
		}
	}
	return multicurvas.Point
}

func parseArgs(args []string, getenv func(string) string) (*config, error) {
	opts, optind, err := getopt.Getopts(args, "l:x:dpn:j:bih")
	if err != nil {
		return nil, err
	}
	cfg := config{loc: defaultLocale(getenv), workers: 1}
	var (
		xs   string
		hasX bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'l':
			if cfg.loc, err = multicurvas.ParseLocale(opt.Value); err != nil {
				return nil, err
			}
		case 'x':
			xs = opt.Value
			hasX = true
		case 'd':
			cfg.dump = true
		case 'p':
			cfg.plot = true
		case 'n':
			cfg.samples, err = strconv.Atoi(opt.Value)
			if err != nil || cfg.samples < 1 || cfg.samples > plot.MaxSamples {
				return nil, fmt.Errorf("invalid -n parameter %q", opt.Value)
			}
		case 'j':
			cfg.workers, err = strconv.Atoi(opt.Value)
			if err != nil || cfg.workers < 1 {
				return nil, fmt.Errorf("invalid -j parameter %q", opt.Value)
			}
		case 'b':
			cfg.bench = true
		case 'i':
			cfg.repl = true
		case 'h':
			return nil, errUsage
		}
	}
	if hasX {
		// The value is itself an expression in the final locale, so -x pi/2
		// works wherever -l appears.
		if cfg.x, err = constant(xs, cfg.loc); err != nil {
			return nil, fmt.Errorf("-x %s: %w", xs, err)
		}
	}
	cfg.args = args[optind:]
	return &cfg, nil
}

var errNotConstant = errors.New("value must not refer to a variable")

// constant evaluates an expression that must not use a variable.
func constant(src string, loc multicurvas.Locale) (float64, error) {
	rpn, err := multicurvas.Compile(src, loc)
	if err != nil {
		return 0, err
	}
	defer rpn.Release()
	for _, tok := range rpn.Tokens() {
		if tok.Type.IsVariable() {
			return 0, errNotConstant
		}
	}
	return multicurvas.EvalRPN(rpn, 0)
}

var errUsage = errors.New("usage requested")

var errColor = color.New(color.FgRed, color.Bold)

func main() {
	log.SetFlags(0)
	cfg, err := parseArgs(os.Args, os.Getenv)
	if err == errUsage {
		fmt.Print(usage)
		return
	}
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		log.Fatal(strings.SplitN(usage, "\n", 2)[0])
	}
	switch {
	case cfg.repl:
		if err := runREPL(cfg.loc, cfg.x); err != nil {
			log.Fatal(err)
		}
	case cfg.bench:
		bench(os.Stdout)
	case cfg.plot:
		if !plots(context.Background(), os.Stdout, os.Stderr, cfg) {
			os.Exit(1)
		}
	default:
		in := cfg.args
		if len(in) == 0 {
			lines, err := readLines(os.Stdin)
			if err != nil {
				log.Fatal(err)
			}
			in = lines
		}
		if !evalAll(os.Stdout, os.Stderr, cfg, in) {
			os.Exit(1)
		}
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, sc.Err()
}

// evalAll evaluates each expression and prints its result. It reports
// whether all succeeded.
func evalAll(stdout, stderr io.Writer, cfg *config, exprs []string) bool {
	ok := true
	for _, src := range exprs {
		if cfg.dump {
			if err := dump(stdout, src, cfg.loc); err != nil {
				errColor.Fprintf(stderr, "%s: %v\n", src, err)
				ok = false
				continue
			}
		}
		r, err := multicurvas.Eval(src, cfg.loc, cfg.x)
		if err != nil {
			errColor.Fprintf(stderr, "%s: %v\n", src, err)
			ok = false
			continue
		}
		fmt.Fprintln(stdout, strconv.FormatFloat(r, 'g', -1, 64))
	}
	return ok
}

func dump(w io.Writer, src string, loc multicurvas.Locale) error {
	infix, err := multicurvas.Tokenize(src, loc)
	if err != nil {
		return err
	}
	defer infix.Release()
	rpn, err := multicurvas.ToRPN(infix)
	if err != nil {
		return err
	}
	defer rpn.Release()
	fmt.Fprintf(w, "expression: %s\n\ninfix ", src)
	if err := inspect.WriteTokens(w, infix); err != nil {
		return err
	}
	io.WriteString(w, "\npostfix ")
	if err := inspect.WriteTokens(w, rpn); err != nil {
		return err
	}
	io.WriteString(w, "\n")
	if err := inspect.WriteBytecode(w, rpn); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nstack depth %d, fingerprint %016x\n\n", rpn.Depth(), inspect.Fingerprint(rpn))
	return err
}

// plots samples each plot definition and prints its points.
func plots(ctx context.Context, stdout, stderr io.Writer, cfg *config) bool {
	ok := true
	w := bufio.NewWriter(stdout)
	defer w.Flush()
	opts := []plot.Option{plot.Workers(cfg.workers)}
	if cfg.samples > 0 {
		opts = append(opts, plot.Samples(cfg.samples))
	}
	for _, def := range cfg.args {
		d, err := samplePlot(ctx, def, cfg.loc, opts)
		if err != nil {
			errColor.Fprintln(stderr, err)
			ok = false
			continue
		}
		fmt.Fprintf(w, "# %s\n", def)
		for i := range d.T {
			fmt.Fprintf(w, "%g\t%g\t%t\n", d.X[i], d.Y[i], d.OK[i])
		}
		if n := d.Failures(); n > 0 {
			log.Printf("%s: %d of %d points failed", def, n, d.Len())
		}
	}
	return ok
}

func samplePlot(ctx context.Context, def string, loc multicurvas.Locale, opts []plot.Option) (*plot.Data, error) {
	p, err := plot.Parse(def, loc)
	if err != nil {
		return nil, err
	}
	c, err := p.Compile()
	if err != nil {
		return nil, err
	}
	defer c.Release()
	return c.Sample(ctx, opts...)
}

// benchIntervals is the number of trapezoids in the benchmark integral.
const benchIntervals = 1000000

// bench integrates x*x+1 over [0, 1] using the evaluator and native code and
// compares the two.
func bench(w io.Writer) {
	rpn, err := multicurvas.Compile("x*x+1", multicurvas.Point)
	if err != nil {
		log.Fatal(err)
	}
	defer rpn.Release()

	start := time.Now()
	parsed, err := plot.Trapezoid(rpn, 0, 1, benchIntervals)
	if err != nil {
		log.Fatal(err)
	}
	pt := time.Since(start)

	start = time.Now()
	native := nativeTrapezoid(func(x float64) float64 { return x*x + 1 }, 0, 1, benchIntervals)
	nt := time.Since(start)

	fmt.Fprintf(w, "integral of x*x+1 over [0, 1] with %d intervals (exact 4/3)\n", benchIntervals)
	fmt.Fprintf(w, "parsed: %.15f in %v\n", parsed, pt)
	fmt.Fprintf(w, "native: %.15f in %v\n", native, nt)
	if nt > 0 {
		fmt.Fprintf(w, "ratio:  %.1fx\n", float64(pt)/float64(nt))
	}
}

func nativeTrapezoid(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}
