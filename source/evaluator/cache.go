package evaluator

import (
	"fmt"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/registry"
	"github.com/edipofederle/sri-sub002/source/settings"
)

// Each call site carries a small polymorphic cache of the resolutions it
// has seen, keyed by the receiver's class. Entries are stamped with the
// registry generation they were filled under: any definition bumps the
// generation, which makes every stale entry miss and get resolved afresh.
// A cache never serves a result that a full walk of the ancestor chain
// would not produce; it only skips the walk.
const cacheWays = 4

type cacheEntry struct {
	class      string
	method     *registry.Method
	owner      string
	generation uint64
}

func (e *Evaluator) lookup(id ast.NodeID, class, name string) (*registry.Method, string, bool) {
	entries := e.caches[id]
	for _, entry := range entries {
		if entry.class == class && entry.generation == e.reg.Generation {
			if settings.SHOW_CACHES {
				fmt.Printf("call site %d: hit for %s#%s\n", id, class, name)
			}
			return entry.method, entry.owner, true
		}
	}
	m, owner, ok := e.reg.Resolve(class, name)
	if !ok {
		return nil, "", false
	}
	e.fill(id, cacheEntry{class: class, method: m, owner: owner, generation: e.reg.Generation})
	if settings.SHOW_CACHES {
		fmt.Printf("call site %d: filled for %s#%s from %s\n", id, class, name, owner)
	}
	return m, owner, true
}

func (e *Evaluator) fill(id ast.NodeID, entry cacheEntry) {
	entries := e.caches[id]
	live := entries[:0]
	for _, old := range entries {
		if old.generation == entry.generation {
			live = append(live, old)
		}
	}
	if len(live) >= cacheWays {
		// Megamorphic site: keep the newest few rather than growing.
		live = live[1:]
	}
	e.caches[id] = append(live, entry)
}
