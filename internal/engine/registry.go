package engine

import (
	"github.com/dlogdev/dlog/internal/host"
)

// Registry is the insertion-ordered collection of tracepoints,
// addressable by position.
//
// The registry does not keep a tracepoint's effect alive - only the host
// binding does. Instead of weak references it stores the binding handle
// and asks the binder for liveness, so bindings destroyed out-of-band
// (unrelated host cleanup) are tolerated: dead entries are pruned
// silently on the next snapshot or removal, never surfaced as errors.
//
// Indices are positions among the live entries as of the current call.
// Removing an entry shifts all subsequent indices down by one.
//
// Thread-safety: none. The host serializes hit dispatch and command
// handling on a single control thread (see Engine), so the registry
// performs no locking.
type Registry struct {
	binder  host.Binder
	entries []*Tracepoint
}

// Entry is one row of a registry snapshot.
type Entry struct {
	Index    int
	Location string
	Template string
}

// NewRegistry creates an empty registry using binder for liveness checks
// and binding destruction. Re-creating the registry on a fresh session
// always yields an empty one.
func NewRegistry(binder host.Binder) *Registry {
	return &Registry{binder: binder}
}

// Add appends a tracepoint at the end of the registry. Never fails.
func (r *Registry) Add(tp *Tracepoint) {
	r.entries = append(r.entries, tp)
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.prune()
	return len(r.entries)
}

// List returns a snapshot of the live entries in registry order. Entries
// whose binding was destroyed out-of-band are omitted and do not occupy
// an index.
func (r *Registry) List() []Entry {
	r.prune()
	snapshot := make([]Entry, len(r.entries))
	for i, tp := range r.entries {
		snapshot[i] = Entry{Index: i, Location: tp.location, Template: tp.template}
	}
	return snapshot
}

// Live returns the live tracepoints in registry order. Used by the
// persistence layer to export full definitions.
func (r *Registry) Live() []*Tracepoint {
	r.prune()
	return append([]*Tracepoint(nil), r.entries...)
}

// RemoveAt destroys the binding of the live entry at index and removes
// its slot, shifting subsequent indices down by one. An index outside
// [0, Len()) fails with an INDEX_OUT_OF_RANGE error and mutates nothing.
func (r *Registry) RemoveAt(index int) error {
	r.prune()
	if index < 0 || index >= len(r.entries) {
		return NewIndexError(index, len(r.entries))
	}
	r.binder.Destroy(r.entries[index].handle)
	r.entries = append(r.entries[:index], r.entries[index+1:]...)
	return nil
}

// RemoveAll destroys every still-live binding and empties the registry.
// Idempotent: calling it on an empty registry succeeds trivially.
func (r *Registry) RemoveAll() {
	for _, tp := range r.entries {
		if r.binder.IsBound(tp.handle) {
			r.binder.Destroy(tp.handle)
		}
	}
	r.entries = nil
}

// prune drops entries whose binding is gone. Liveness can only be lost,
// never regained, so pruning before a snapshot or removal keeps indices
// stable for the duration of that call.
func (r *Registry) prune() {
	live := r.entries[:0]
	for _, tp := range r.entries {
		if r.binder.IsBound(tp.handle) {
			live = append(live, tp)
		}
	}
	r.entries = live
}
