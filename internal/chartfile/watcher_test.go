package chartfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "natal.yaml", "name: First\n")
	other := filepath.Join(dir, "other.yaml")

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Writes to sibling files are ignored.
	if err := os.WriteFile(other, []byte("name: Other\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("name: Second\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Chart.Name != "Second" {
			t.Errorf("Name = %q, want Second", r.Chart.Name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReloadError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "natal.json", `{"name":"ok"}`)

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`{"name":`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err == nil {
			t.Error("Expected parse error on reload")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_StartFailsOnMissingDir(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "gone", "natal.yaml"), nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	if err := w.Start(); err == nil {
		t.Fatal("Expected Start to fail for a missing directory")
	}
	if err := w.watcher.Add(dir); !errors.Is(err, fsnotify.ErrClosed) {
		t.Errorf("fsnotify watcher still open after failed Start: %v", err)
	}
	if _, ok := <-w.Reloads; ok {
		t.Error("Reloads should be closed after failed Start")
	}
	w.Stop() // second stop is a no-op
}
