package linker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/wheelink/pkg/diagnostics"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// Locks is the state shared by every package extraction in one installation
// session.
//
// The directory lock map grows for the lifetime of the session and is never
// pruned. That is fine for one bounded install; a long-lived process reusing
// Locks should bound it.
type Locks struct {
	// dirLocks maps a destination directory to the *sync.Mutex guarding
	// copies into it.
	dirLocks sync.Map

	modulesMu sync.Mutex
	// modules maps a top level module to the last package that provided it.
	modules map[string]types.Identity

	preview types.Preview
	diag    *diagnostics.Collector
}

// NewLocks creates the state for one installation session. Warnings are
// reported to diag, which may be nil.
func NewLocks(diag *diagnostics.Collector, preview types.Preview) *Locks {
	return &Locks{
		modules: make(map[string]types.Identity),
		preview: preview,
		diag:    diag,
	}
}

// dirLock returns the mutex for dir, creating it on first use.
func (l *Locks) dirLock(dir string) *sync.Mutex {
	if mu, ok := l.dirLocks.Load(dir); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := l.dirLocks.LoadOrStore(dir, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// warnModuleConflict records that id provides module and warns if another
// package claimed it before. The latest claimant always wins the registry.
func (l *Locks) warnModuleConflict(module string, id types.Identity) {
	l.modulesMu.Lock()
	previous, existed := l.modules[module]
	l.modules[module] = id
	l.modulesMu.Unlock()

	if !existed {
		return
	}
	if !l.preview.IsEnabled(types.PreviewDetectModuleConflicts) {
		return
	}

	pair := []types.Identity{previous, id}
	sort.Slice(pair, func(i, j int) bool {
		if pair[i].Name != pair[j].Name {
			return pair[i].Name < pair[j].Name
		}
		return pair[i].Version < pair[j].Version
	})
	l.diag.Warn("module-conflict:"+module, fmt.Sprintf(
		"The module `%s` is provided by more than one package, which causes an install race condition and can result in a broken module. Consider removing your dependency on either `%s` (%s) or `%s` (%s).",
		module,
		pair[0].Name, pair[0].DisplayVersion(),
		pair[1].Name, pair[1].DisplayVersion(),
	))
}

func (l *Locks) warnFallback(op, operation string) {
	l.diag.Warn("fallback:"+op, fmt.Sprintf(
		"Failed to %s files; falling back to full copy. This may lead to degraded performance.\n"+
			"If the cache and target directories are on different filesystems, %s may not be supported.\n"+
			"If this is intentional, set `export WHEELINK_LINK_MODE=copy` or use `--link-mode=copy` to suppress this warning.",
		op, operation,
	))
}
