package watcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix-like environment")
	}
}

func selfName(t *testing.T) string {
	t.Helper()
	p, err := gopsproc.NewProcess(int32(os.Getpid()))
	if err != nil {
		t.Fatalf("own process: %v", err)
	}
	n, err := p.Name()
	if err != nil {
		t.Fatalf("own name: %v", err)
	}
	return n
}

func TestSpecValidate(t *testing.T) {
	cases := []struct {
		spec    Spec
		wantErr string
	}{
		{Spec{Name: "", Interval: 10 * time.Second}, "process name can't be empty"},
		{Spec{Name: "app", Interval: 0}, "interval is too short (must be at least 1 second)"},
		{Spec{Name: "app", Interval: 500 * time.Millisecond}, "interval is too short (must be at least 1 second)"},
		{Spec{Name: "app", Interval: time.Second}, ""},
		{Spec{Name: "app", Interval: 10 * time.Second}, ""},
	}
	for _, c := range cases {
		err := c.spec.Validate()
		if c.wantErr == "" {
			if err != nil {
				t.Fatalf("Validate(%+v): unexpected error %v", c.spec, err)
			}
			continue
		}
		if err == nil || err.Error() != c.wantErr {
			t.Fatalf("Validate(%+v): got %v, want %q", c.spec, err, c.wantErr)
		}
	}
}

func TestFindByNameSelf(t *testing.T) {
	name := selfName(t)
	pid, ok, err := FindByName(name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find own process %q", name)
	}
	if pid <= 0 {
		t.Fatalf("bad pid %d", pid)
	}
}

func TestFindByNameAbsent(t *testing.T) {
	_, ok, err := FindByName("__exitwatch_no_such_process__")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if ok {
		t.Fatalf("found a process that should not exist")
	}
}

func TestFindRecordsPIDAndErrNotRunning(t *testing.T) {
	w := New(Spec{Name: selfName(t), Interval: time.Second})
	if err := w.Find(); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if w.PID() <= 0 {
		t.Fatalf("PID not recorded")
	}

	w = New(Spec{Name: "__exitwatch_no_such_process__", Interval: time.Second})
	err := w.Find()
	if !errors.Is(err, ErrNotRunning) {
		t.Fatalf("want ErrNotRunning, got %v", err)
	}
	want := "process isn't running: __exitwatch_no_such_process__"
	if err.Error() != want {
		t.Fatalf("error text %q, want %q", err.Error(), want)
	}
}

func TestPidAlive(t *testing.T) {
	alive, err := pidAlive(int32(os.Getpid()))
	if err != nil {
		t.Fatalf("pidAlive(self): %v", err)
	}
	if !alive {
		t.Fatalf("own pid reported dead")
	}
	alive, err = pidAlive(1 << 30)
	if err != nil {
		t.Fatalf("pidAlive(bogus): %v", err)
	}
	if alive {
		t.Fatalf("bogus pid reported alive")
	}
}

func TestWaitBeforeFind(t *testing.T) {
	w := New(Spec{Name: "app", Interval: time.Second})
	if err := w.Wait(context.Background()); err == nil {
		t.Fatalf("expected error for Wait before Find")
	}
}

func TestWaitReturnsAfterExit(t *testing.T) {
	requireUnix(t)
	cmd := exec.Command("sleep", "1")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	// Reap the child so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()

	w := New(Spec{Name: "sleep", Interval: time.Second})
	w.pid = int32(cmd.Process.Pid)

	done := make(chan error, 1)
	go func() { done <- w.Wait(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Wait did not return after child exit")
	}
}

func TestWaitCancel(t *testing.T) {
	requireUnix(t)
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	w := New(Spec{Name: "sleep", Interval: time.Second})
	w.pid = int32(cmd.Process.Pid)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Wait(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Wait did not honor cancellation")
	}
}

func TestSearchFindsSelf(t *testing.T) {
	name := selfName(t)
	infos, err := Search(name)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	found := false
	for _, in := range infos {
		if in.PID == int32(os.Getpid()) {
			found = true
		}
	}
	if !found {
		t.Fatalf("Search(%q) did not list own process", name)
	}
}
