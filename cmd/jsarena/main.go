// Command jsarena parses JavaScript and TypeScript files and reports their
// syntax errors.
//
// Usage:
//
//	jsarena [flags] file|glob ...
//
// A single "-" reads the source from standard input. With -dump the tree
// of each file is written to standard output as YAML; with -emit it is
// printed back as source text.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
	"github.com/t14raptor/jsarena/internal/astdump"
	"github.com/t14raptor/jsarena/internal/driver"
	"github.com/t14raptor/jsarena/internal/printer"
	"github.com/t14raptor/jsarena/parser"
)

const (
	exitOK = iota
	exitSyntax
	exitFailure
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsarena", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: jsarena [flags] file|glob ...")
		fs.PrintDefaults()
	}
	var (
		configPath = fs.String("config", "", "read settings from a YAML `file`")
		workers    = fs.Int("workers", 0, "files parsed at once (0 means GOMAXPROCS)")
		fixedSize  = fs.Uint64("fixed-size", 0, "per worker arena in `bytes`, a power of two (0 parses on the heap)")
		sourceType = fs.String("type", "", "parse every file as this `extension` (js, cjs, ts, tsx, d.ts...)")
		allowRet   = fs.Bool("allow-return", false, "accept return outside functions")
		parens     = fs.Bool("parens", false, "keep parenthesized expressions in the tree")
		dump       = fs.Bool("dump", false, "write each tree as YAML")
		spans      = fs.Bool("spans", false, "include spans in -dump output")
		comments   = fs.Bool("comments", false, "include comments in -dump output")
		emit       = fs.Bool("emit", false, "print each tree back as source text")
		watch      = fs.Bool("watch", false, "parse again whenever a file changes")
		verbose    = fs.Bool("v", false, "log debug output")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	cfg := defaultConfig()
	if *configPath != "" {
		if err := cfg.loadFile(*configPath); err != nil {
			fmt.Fprintf(stderr, "jsarena: %v\n", err)
			return exitFailure
		}
	}
	cfg.loadEnv()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "fixed-size":
			cfg.FixedSize = *fixedSize
		case "type":
			cfg.SourceType = *sourceType
		case "allow-return":
			cfg.AllowReturn = *allowRet
		case "parens":
			cfg.PreserveParens = *parens
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})

	level, err := cfg.level()
	if err != nil {
		fmt.Fprintf(stderr, "jsarena: %v\n", err)
		return exitFailure
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	st, err := cfg.sourceType()
	if err != nil {
		log.Error("invalid configuration", slog.Any("error", err))
		return exitFailure
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitFailure
	}

	d, err := driver.New(driver.Config{
		Workers:    cfg.Workers,
		FixedSize:  uintptr(cfg.FixedSize),
		SourceType: st,
		Options: parser.Options{
			AllowReturnOutsideFunction: cfg.AllowReturn,
			PreserveParens:             cfg.PreserveParens,
		},
		Logger: log,
	})
	if err != nil {
		log.Error("creating driver", slog.Any("error", err))
		return exitFailure
	}
	defer d.Close()

	out := &output{
		stdout: stdout,
		stderr: stderr,
		dump:   *dump,
		emit:   *emit,
		opts:   astdump.Options{Spans: *spans, Comments: *comments},
		log:    log,
	}

	if fs.NArg() == 1 && fs.Arg(0) == "-" {
		if *watch {
			log.Error("cannot watch standard input")
			return exitFailure
		}
		err = parseStdin(ctx, d, stdin, st, cfg, out.handle)
	} else {
		var paths []string
		paths, err = driver.Expand(fs.Args())
		switch {
		case err != nil:
		case len(paths) == 0:
			err = errors.New("no input files")
		case *watch:
			err = d.Watch(ctx, paths, out.handle)
		default:
			err = d.Run(ctx, paths, out.handle)
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return exitFailure
		}
		log.Error("parse failed", slog.Any("error", err))
		return exitFailure
	}
	if out.failed > 0 && !*watch {
		return exitSyntax
	}
	return exitOK
}

func parseStdin(ctx context.Context, d *driver.Driver, r io.Reader, st *ast.SourceType, cfg config, h driver.Handler) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	src, err := driver.Decode(data)
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	opts := parser.Options{
		SourceType:                 ast.SourceType{Module: true},
		AllowReturnOutsideFunction: cfg.AllowReturn,
		PreserveParens:             cfg.PreserveParens,
	}
	if st != nil {
		opts.SourceType = *st
	}
	return d.ParseSource(ctx, "<stdin>", src, opts, h)
}

// output writes the results of every file. Handlers run concurrently;
// each file's output is written as a whole.
type output struct {
	stdout, stderr io.Writer
	dump, emit     bool
	opts           astdump.Options
	log            *slog.Logger

	mu     sync.Mutex
	failed int
}

func (o *output) handle(_ context.Context, f *driver.File) error {
	var tree []byte
	if o.dump {
		var err error
		if tree, err = astdump.Marshal(f.Result.Program, o.opts); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	var src string
	if o.emit {
		src = printer.Generate(f.Result.Program)
		if src != "" && !strings.HasSuffix(src, "\n") {
			src += "\n"
		}
	}

	o.log.Debug("parsed",
		slog.String("path", f.Path),
		slog.Int("arena", f.Arena),
		slog.Uint64("used", uint64(f.Used)),
		slog.Int("diagnostics", len(f.Result.Diagnostics)),
		slog.Bool("panicked", f.Result.Panicked))

	o.mu.Lock()
	defer o.mu.Unlock()
	if f.Result.Diagnostics.HasErrors() {
		o.failed++
	}
	if err := diagnostics.NewRenderer(f.Path, f.Source).Render(o.stderr, f.Result.Diagnostics); err != nil {
		return err
	}
	if o.dump {
		if _, err := fmt.Fprintf(o.stdout, "--- # %s\n%s", f.Path, tree); err != nil {
			return err
		}
	}
	if o.emit {
		if _, err := io.WriteString(o.stdout, src); err != nil {
			return err
		}
	}
	return nil
}
