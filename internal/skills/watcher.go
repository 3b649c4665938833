// ABOUTME: Polling watcher that reloads custom skills when SKILL.md files change
// ABOUTME: Compares file mtimes across the skill directories at a fixed interval

package skills

import (
	"context"
	"maps"
	"os"
	"sync"
	"time"

	"github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/types"
)

// DefaultWatchInterval is the polling interval used by NewWatcher.
const DefaultWatchInterval = 2 * time.Second

// Watcher keeps a Catalog's custom skills in sync with skill directories.
type Watcher struct {
	catalog  *Catalog
	dirs     []string
	interval time.Duration

	mu     sync.Mutex
	mtimes map[string]time.Time
}

// NewWatcher creates a watcher for dirs. The first Check only records state.
func NewWatcher(c *Catalog, dirs []string) *Watcher {
	return &Watcher{
		catalog:  c,
		dirs:     dirs,
		interval: DefaultWatchInterval,
	}
}

// SetInterval overrides the polling interval.
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check()

	w.mu.Lock()
	interval := w.interval
	w.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the skill files against the last snapshot and reloads the
// catalog when a file was added, removed or modified. It reports whether a
// reload happened.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	current := w.snapshot()
	if w.mtimes == nil {
		w.mtimes = current
		return false
	}
	if maps.Equal(current, w.mtimes) {
		return false
	}
	w.mtimes = current

	loaded := LoadDirs(w.dirs)
	defs := make([]types.SkillDefinition, 0, len(loaded))
	for _, l := range loaded {
		defs = append(defs, l.Definition)
	}
	n := w.catalog.ReplaceCustom(defs)
	log.Info("skill directories changed; %d custom skills loaded", n)
	return true
}

func (w *Watcher) snapshot() map[string]time.Time {
	out := make(map[string]time.Time)
	for _, dir := range w.dirs {
		paths, err := skillFiles(dir)
		if err != nil {
			continue
		}
		for _, p := range paths {
			if info, err := os.Stat(p); err == nil {
				out[p] = info.ModTime()
			}
		}
	}
	return out
}
