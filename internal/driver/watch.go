package driver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch parses paths once, then again each time one of them is written,
// until ctx is done. Directories are watched rather than files so that
// editors replacing a file by renaming are noticed.
func (d *Driver) Watch(ctx context.Context, paths []string, h Handler) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("driver: watch: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		path = filepath.Clean(path)
		watched[path] = true
		if dir := filepath.Dir(path); !dirs[dir] {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("driver: watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	if err := d.Run(ctx, paths, h); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(ev.Name)
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !watched[path] {
				continue
			}
			d.log.Debug("file changed", slog.String("path", path), slog.String("op", ev.Op.String()))
			if err := d.Run(ctx, []string{path}, h); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("driver: watch: %w", err)
		}
	}
}
