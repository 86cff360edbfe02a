// Package driver parses many files in parallel, one arena per worker.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/t14raptor/jsarena/allocator"
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/parser"
)

// Config configures a Driver.
type Config struct {
	// Workers bounds the number of files parsed at once. Zero means
	// GOMAXPROCS.
	Workers int
	// FixedSize is the arena size of each worker, a power of two. Zero
	// parses every file in a fresh growing allocator instead.
	FixedSize uintptr
	// SourceType, when set, is used for every file instead of the one
	// derived from its extension.
	SourceType *ast.SourceType
	// Options are passed to the parser. SourceType and Logger are set per
	// file.
	Options parser.Options
	Logger  *slog.Logger
}

// File is a parsed file handed to a Handler.
type File struct {
	Path   string
	Source string
	Result parser.Result
	// Arena is the id of the pooled allocator holding the tree, or -1 when
	// the tree lives in a heap allocator.
	Arena int
	// Used is the number of arena bytes the tree occupies.
	Used uintptr
}

// Handler consumes a parsed file. The tree is only valid until the
// handler returns: the arena is reset and reused afterwards.
type Handler func(ctx context.Context, f *File) error

type Driver struct {
	cfg  Config
	pool *allocator.Pool
	log  *slog.Logger
}

func New(cfg Config) (*Driver, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Driver{cfg: cfg, log: log.With(slog.String("component", "driver"))}
	if cfg.FixedSize > 0 {
		pool, err := allocator.NewPool(cfg.Workers, cfg.FixedSize)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
		d.pool = pool
	}
	return d, nil
}

// Close releases the worker arenas.
func (d *Driver) Close() error {
	if d.pool == nil {
		return nil
	}
	return d.pool.Close()
}

// Run parses paths and calls h for each of them, at most Workers at a
// time. It stops at the first error; files not yet started are dropped
// once ctx is done.
func (d *Driver) Run(ctx context.Context, paths []string, h Handler) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error { return d.process(gctx, path, h) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (d *Driver) process(ctx context.Context, path string, h Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := ReadSource(path)
	if err != nil {
		return err
	}
	st, err := d.sourceType(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	opts := d.cfg.Options
	opts.SourceType = st
	opts.Logger = d.log.With(slog.String("path", path))
	return d.ParseSource(ctx, path, src, opts, h)
}

func (d *Driver) sourceType(path string) (ast.SourceType, error) {
	if d.cfg.SourceType != nil {
		return *d.cfg.SourceType, nil
	}
	return ast.SourceTypeFromPath(path)
}

// ParseSource parses src in a worker arena and calls h with the result.
// A file too large for the arena is parsed again in a heap allocator.
func (d *Driver) ParseSource(ctx context.Context, path, src string, opts parser.Options, h Handler) error {
	f := &File{Path: path, Source: src, Arena: -1}
	if d.pool == nil {
		a := allocator.NewAllocator()
		f.Result = parser.Parse(a, src, opts)
		f.Used = a.Used()
		return h(ctx, f)
	}

	fixed, err := d.pool.Get(ctx)
	if err != nil {
		return err
	}
	defer d.pool.Put(fixed)

	if res, ok := parseInto(fixed.Allocator, src, opts); ok {
		f.Result, f.Arena, f.Used = res, int(fixed.ID()), fixed.Used()
	} else {
		d.log.Warn("arena exhausted, parsing on the heap",
			slog.String("path", path),
			slog.Int("arena", int(fixed.ID())),
			slog.Uint64("size", uint64(fixed.Size())))
		fixed.Reset()
		a := allocator.NewAllocator()
		f.Result = parser.Parse(a, src, opts)
		f.Used = a.Used()
	}
	return h(ctx, f)
}

// parseInto parses in a, reporting false if a ran out of memory.
func parseInto(a *allocator.Allocator, src string, opts parser.Options) (res parser.Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if err, isErr := r.(error); isErr && errors.Is(err, allocator.ErrExhausted) {
				ok = false
				return
			}
			panic(r)
		}
	}()
	return parser.Parse(a, src, opts), true
}
