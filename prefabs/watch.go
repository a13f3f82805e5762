package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its change is reported.
// Editors often write a file two or three times per save.
const settle = 100 * time.Millisecond

type ChangeKind int

const (
	ChangeConfig ChangeKind = iota
	ChangeScript
)

// Change is one settled edit to a watched prefab file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to yaml configs and tengo scripts under a set of
// directories. The frame loop drains it with Poll.
type Watcher struct {
	fs      *fsnotify.Watcher
	mu      sync.Mutex
	ready   []Change
	err     error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{fs: fs, closeCh: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

// Poll returns the changes settled since the last call and the most recent
// watch error, if any. It never blocks.
func (w *Watcher) Poll() ([]Change, error) {
	if w == nil {
		return nil, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	changes, err := w.ready, w.err
	w.ready, w.err = nil, nil
	return changes, err
}

func (w *Watcher) run() {
	dirty := make(map[string]time.Time)
	tick := time.NewTicker(settle / 2)
	defer tick.Stop()

	for {
		select {
		case <-w.closeCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if _, ok := classify(event.Name); ok {
				dirty[event.Name] = time.Now()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.err = err
			w.mu.Unlock()
		case now := <-tick.C:
			w.flush(dirty, now)
		}
	}
}

func (w *Watcher) flush(dirty map[string]time.Time, now time.Time) {
	var settled []Change
	for path, at := range dirty {
		if now.Sub(at) < settle {
			continue
		}
		kind, _ := classify(path)
		settled = append(settled, Change{Path: path, Kind: kind})
		delete(dirty, path)
	}
	if len(settled) == 0 {
		return
	}
	w.mu.Lock()
	w.ready = append(w.ready, settled...)
	w.mu.Unlock()
}

func classify(path string) (ChangeKind, bool) {
	switch {
	case isSpecFile(path):
		return ChangeConfig, true
	case isScriptFile(path):
		return ChangeScript, true
	}
	return 0, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
