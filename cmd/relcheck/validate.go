package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
	"github.com/syssam/relcheck/schemafile"
	"github.com/syssam/relcheck/validate"
)

func validateCmd() *cobra.Command {
	var (
		strict bool
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "validate <snapshot>...",
		Short: "validate one or more model snapshots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if !watch {
				return validatePaths(ctx, args, strict)
			}
			return watchPaths(ctx, args, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	cmd.Flags().BoolVar(&watch, "watch", false, "revalidate whenever a snapshot file changes")
	return cmd
}

func validatePaths(ctx context.Context, paths []string, strict bool) error {
	models := make([]*model.Model, 0, len(paths))
	for _, path := range paths {
		snap, err := schemafile.Load(path)
		if err != nil {
			return err
		}
		m, err := snap.Decode()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		models = append(models, m)
	}
	var sink diag.Sink = diag.NewLogger(slog.Default())
	if strict {
		sink = diag.NewStrict(sink)
	}
	if err := validate.All(ctx, sink, models...); err != nil {
		return err
	}
	slog.Info("models are valid", "snapshots", len(paths))
	return nil
}

// watchPaths validates once, then revalidates on every change to one of
// the snapshot files until the context is cancelled. Validation errors
// are logged rather than returned so that a broken intermediate state
// does not stop the watch.
func watchPaths(ctx context.Context, paths []string, strict bool) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	run := func() {
		if err := validatePaths(ctx, paths, strict); err != nil {
			slog.Error("validation failed", "err", err)
		}
	}
	run()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				slog.Debug("snapshot changed", "path", ev.Name)
				run()
			}
			// Editors often replace files on save. Re-add so that
			// subsequent writes keep arriving.
			if ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove) {
				_ = w.Add(ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "err", err)
		}
	}
}
