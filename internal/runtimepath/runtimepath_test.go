package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/keynav-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestLockPath_PerDisplay(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	def, err := LockPath("")
	if err != nil {
		t.Fatalf("LockPath() error: %v", err)
	}
	if def != filepath.Join(td, "keynav.lock") {
		t.Fatalf("LockPath(\"\") = %q", def)
	}

	got, err := LockPath(":1.0")
	if err != nil {
		t.Fatalf("LockPath() error: %v", err)
	}
	if got != filepath.Join(td, "keynav-_1.0.lock") {
		t.Fatalf("LockPath(\":1.0\") = %q", got)
	}
}

func TestAcquire_SecondHolderFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keynav.lock")

	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire() error = %v, want ErrLocked", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}

	again, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() after release error: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
}
