// Package exitwatch watches for a named OS process to stop running, then
// fires a one-shot webhook notification. This file is the public facade
// for embedding; the CLI in cmd/exitwatch is a thin layer over it.
package exitwatch

import (
	"context"
	"errors"
	"time"

	"github.com/exitwatch/exitwatch/internal/notifier"
	"github.com/exitwatch/exitwatch/internal/watcher"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Spec = watcher.Spec

type ProcessInfo = watcher.Info

// ErrNotRunning reports that no matching process existed at watch start.
var ErrNotRunning = watcher.ErrNotRunning

// Watcher is a thin facade over internal/watcher.Watcher.
type Watcher struct{ inner *watcher.Watcher }

func New(spec Spec) *Watcher { return &Watcher{inner: watcher.New(spec)} }

func (w *Watcher) Find() error { return w.inner.Find() }

func (w *Watcher) Wait(ctx context.Context) error { return w.inner.Wait(ctx) }

func (w *Watcher) PID() int32 { return w.inner.PID() }

// WaitForExit is the one-call form of the watch: it resolves the first
// process matching name exactly, then blocks until it exits, re-checking
// every interval. Returns false when the process was not running at all.
func WaitForExit(ctx context.Context, name string, interval time.Duration) (bool, error) {
	w := watcher.New(watcher.Spec{Name: name, Interval: interval})
	if err := w.Find(); err != nil {
		if errors.Is(err, watcher.ErrNotRunning) {
			return false, nil
		}
		return false, err
	}
	if err := w.Wait(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Find lists running processes whose name contains pattern.
func Find(pattern string) ([]ProcessInfo, error) { return watcher.Search(pattern) }

// Webhook facade

type Webhook = notifier.Webhook

// NewWebhook builds a notifier for url; timeout <= 0 uses the default.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return notifier.New(url, timeout)
}
