package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		kind ChangeKind
		ok   bool
	}{
		"prefabs/ball.yaml":           {ChangeConfig, true},
		"prefabs/arena.YML":           {ChangeConfig, true},
		"prefabs/scripts/drift.tengo": {ChangeScript, true},
		"prefabs/notes.txt":           {0, false},
		"prefabs/ball.yaml~":          {0, false},
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			kind, ok := classify(path)
			if kind != want.kind || ok != want.ok {
				t.Fatalf("classify(%q) = %v, %v", path, kind, ok)
			}
		})
	}
}

func TestFlushWaitsForQuietFile(t *testing.T) {
	w := &Watcher{}
	now := time.Now()
	dirty := map[string]time.Time{
		"a.yaml":  now.Add(-2 * settle),
		"b.tengo": now.Add(-settle / 4),
	}

	w.flush(dirty, now)
	got, err := w.Poll()
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(got) != 1 || got[0] != (Change{Path: "a.yaml", Kind: ChangeConfig}) {
		t.Fatalf("first flush = %+v", got)
	}
	if _, ok := dirty["b.tengo"]; !ok {
		t.Fatalf("unsettled file was dropped")
	}

	w.flush(dirty, now.Add(settle))
	got, _ = w.Poll()
	if len(got) != 1 || got[0].Kind != ChangeScript {
		t.Fatalf("second flush = %+v", got)
	}
	if got, _ := w.Poll(); len(got) != 0 {
		t.Fatalf("poll should drain, got %+v", got)
	}
}

func TestWatcherReportsSettledWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "ball.yaml")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("size: 30\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	var changes []Change
	for time.Now().Before(deadline) {
		got, _ := w.Poll()
		changes = append(changes, got...)
		if len(changes) > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if len(changes) == 0 {
		t.Fatalf("no change reported")
	}
	for _, c := range changes {
		if filepath.Base(c.Path) != "ball.yaml" || c.Kind != ChangeConfig {
			t.Fatalf("unexpected change %+v", c)
		}
	}
}

func TestNilWatcher(t *testing.T) {
	var w *Watcher
	if got, err := w.Poll(); got != nil || err != nil {
		t.Fatalf("nil poll = %v, %v", got, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
