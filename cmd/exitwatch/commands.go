package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/exitwatch/exitwatch/internal/config"
	"github.com/exitwatch/exitwatch/internal/logger"
	"github.com/exitwatch/exitwatch/internal/notifier"
	"github.com/exitwatch/exitwatch/internal/watcher"
)

// version is stamped at build time via -ldflags.
var version = "dev"

type command struct {
	out io.Writer
}

// Watch validates the request, resolves the webhook target unless this is
// a dry run, blocks until the named process exits, then notifies. Failing
// URL resolution short-circuits before the watch begins.
func (c *command) Watch(ctx context.Context, f WatchFlags, name string, intervalSet bool) error {
	fc, fromFile, err := config.ProbeFile()
	if err != nil {
		return err
	}
	if fc.NoColor {
		useColor = false
	}

	interval := f.IntervalSecs
	if !intervalSet && fc.IntervalSecs > 0 {
		interval = fc.IntervalSecs
	}
	spec := watcher.Spec{Name: name, Interval: time.Duration(interval) * time.Second}
	if err := spec.Validate(); err != nil {
		return err
	}

	logFile := f.LogFile
	if logFile == "" {
		logFile = fc.Log.File
	}
	logger.Setup(logger.Options{
		Verbose:    f.Verbose || fc.Verbose,
		NoColor:    !useColor,
		File:       logFile,
		MaxSizeMB:  fc.Log.MaxSizeMB,
		MaxBackups: fc.Log.MaxBackups,
		MaxAgeDays: fc.Log.MaxAgeDays,
		Compress:   fc.Log.Compress,
	})
	if fromFile {
		slog.Debug("loaded config file defaults", "interval", fc.IntervalSecs, "has_url", fc.NotifyURL != "")
	}

	var hook *notifier.Webhook
	if !f.DryRun {
		if err := config.LoadEnvFiles(); err != nil {
			return err
		}
		url, err := config.ResolveURL(fc.NotifyURL)
		if err != nil {
			return err
		}
		hook = notifier.New(url, f.Timeout)
	}

	w := watcher.New(spec)
	if err := w.Find(); err != nil {
		return err
	}
	slog.Debug("watching process", "name", name, "pid", w.PID(), "interval", spec.Interval)

	if err := w.Wait(ctx); err != nil {
		return err
	}

	if hook == nil {
		_, _ = fmt.Fprintf(c.out, "Process stopped: %s\n", name)
		return nil
	}
	_, _ = fmt.Fprintf(c.out, "Process stopped, sending notification: %s\n", name)
	if err := hook.Notify(ctx); err != nil {
		return err
	}
	slog.Debug("notification delivered", "url", hook.URL())
	return nil
}

// Find prints PID and name for processes matching the pattern.
func (c *command) Find(pattern string) error {
	infos, err := watcher.Search(pattern)
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}
	slices.SortFunc(infos, func(a, b watcher.Info) int {
		return int(a.PID - b.PID)
	})
	for _, in := range infos {
		_, _ = fmt.Fprintf(c.out, "%8d  %s\n", in.PID, in.Name)
	}
	return nil
}

func (c *command) Version() {
	_, _ = fmt.Fprintf(c.out, "exitwatch %s\n", version)
}
