package watcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// ErrNotRunning is returned by Find when no process with the requested
// name exists at snapshot time.
var ErrNotRunning = errors.New("process isn't running")

// MinInterval is the smallest poll interval Validate accepts.
const MinInterval = time.Second

// Spec describes a single watch: the exact OS process name to match and
// how often to re-check liveness. It is validated once and immutable after.
type Spec struct {
	Name     string
	Interval time.Duration
}

func (s Spec) Validate() error {
	if s.Name == "" {
		return errors.New("process name can't be empty")
	}
	if s.Interval < MinInterval {
		return errors.New("interval is too short (must be at least 1 second)")
	}
	return nil
}

// Watcher blocks until a named process exits. The target PID is resolved
// once by Find; if several processes share the name the first one returned
// by the process table snapshot wins, and only that PID is followed.
type Watcher struct {
	spec Spec
	pid  int32
}

func New(spec Spec) *Watcher {
	return &Watcher{spec: spec}
}

// Spec returns the watch spec this watcher was built from.
func (w *Watcher) Spec() Spec { return w.spec }

// PID returns the process ID recorded by Find, or 0 before Find succeeds.
func (w *Watcher) PID() int32 { return w.pid }

// Find takes one snapshot of the process table and records the PID of the
// first process whose name matches the spec exactly (case-sensitive).
// Returns ErrNotRunning when nothing matches.
func (w *Watcher) Find() error {
	pid, ok, err := FindByName(w.spec.Name)
	if err != nil {
		return fmt.Errorf("snapshot process table: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, w.spec.Name)
	}
	w.pid = pid
	return nil
}

// Wait blocks until the PID recorded by Find no longer resolves to a live
// process, sleeping for the spec interval between checks. The check is
// PID-only: a fresh process reusing the name is not picked up.
func (w *Watcher) Wait(ctx context.Context) error {
	if w.pid == 0 {
		return errors.New("watcher: Wait called before Find")
	}
	for {
		alive, err := pidAlive(w.pid)
		if err != nil {
			return fmt.Errorf("check pid %d: %w", w.pid, err)
		}
		if !alive {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.spec.Interval):
		}
	}
}

// FindByName scans the process table for an exact, case-sensitive name
// match and returns the first matching PID. Processes whose name cannot be
// read (already gone, or not visible to this user) are skipped.
func FindByName(name string) (int32, bool, error) {
	procs, err := gopsproc.Processes()
	if err != nil {
		return 0, false, err
	}
	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			continue
		}
		if n == name {
			return p.Pid, true, nil
		}
	}
	return 0, false, nil
}

// Info is one row of a Search result.
type Info struct {
	PID  int32
	Name string
}

// Search lists processes whose name contains pattern (case-insensitive).
// An empty pattern matches everything.
func Search(pattern string) ([]Info, error) {
	procs, err := gopsproc.Processes()
	if err != nil {
		return nil, err
	}
	pat := strings.ToLower(pattern)
	out := make([]Info, 0, len(procs))
	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			continue
		}
		if pat == "" || strings.Contains(strings.ToLower(n), pat) {
			out = append(out, Info{PID: p.Pid, Name: n})
		}
	}
	return out, nil
}

func pidAlive(pid int32) (bool, error) {
	return gopsproc.PidExists(pid)
}
