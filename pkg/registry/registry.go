package registry

import (
	"log/slog"
	"sync"
)

// Source identifies where an entry came from.
type Source string

const (
	// SourceBuiltin marks content shipped with the application.
	SourceBuiltin Source = "builtin"

	// SourceMod marks content added at runtime by a mod or creator tool.
	SourceMod Source = "mod"
)

// Entry is one registered (id, payload, provenance) tuple.
type Entry[T any] struct {
	// ID is the entry's identity within its registry. Re-registering an
	// id overwrites the prior entry entirely (last-write-wins, no merge).
	ID string `json:"id"`

	// Data is the opaque payload. The registry never inspects it.
	Data T `json:"data"`

	// Source is the entry's provenance.
	Source Source `json:"source"`

	// ModID identifies the contributing mod. Empty unless Source is
	// SourceMod.
	ModID string `json:"modId,omitempty"`
}

// Option configures the provenance of a Register call.
type Option func(*entryMeta)

type entryMeta struct {
	source Source
	modID  string
}

// AsMod tags the entry as mod-contributed content owned by modID.
func AsMod(modID string) Option {
	return func(m *entryMeta) {
		m.source = SourceMod
		m.modID = modID
	}
}

// WithSource sets the provenance tag explicitly.
func WithSource(source Source) Option {
	return func(m *entryMeta) {
		m.source = source
	}
}

type subscriber struct {
	id uint64
	fn func()
}

// Registry is a mutable, observable store of entries for one content
// kind. The zero value is not usable; construct with New.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]

	// order holds ids in first-registration order. Overwriting an id
	// keeps its original position.
	order []string

	// snapshot is the cached List result. nil means dirty.
	snapshot []Entry[T]

	subs    []subscriber
	nextSub uint64
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		entries: make(map[string]Entry[T]),
	}
}

// Register inserts or replaces the entry for id and notifies every
// subscriber before returning. Provenance defaults to SourceBuiltin.
//
// No uniqueness constraint is enforced: overwriting is silent and
// discards the prior entry's payload and provenance. Validation of id
// (e.g. rejecting the empty string) is the caller's responsibility.
func (r *Registry[T]) Register(id string, data T, opts ...Option) {
	meta := entryMeta{source: SourceBuiltin}
	for _, opt := range opts {
		opt(&meta)
	}

	r.mu.Lock()
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = Entry[T]{ID: id, Data: data, Source: meta.source, ModID: meta.modID}
	r.snapshot = nil
	r.mu.Unlock()

	r.notify()
}

// Unregister removes the entry for id. It returns true and notifies
// subscribers if an entry existed; removing an absent id returns false
// and notifies nobody.
func (r *Registry[T]) Unregister(id string) bool {
	r.mu.Lock()
	if _, exists := r.entries[id]; !exists {
		r.mu.Unlock()
		return false
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	r.snapshot = nil
	r.mu.Unlock()

	r.notify()
	return true
}

// Get returns the payload for id.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e.Data, ok
}

// GetEntry returns the full entry for id, including provenance.
func (r *Registry[T]) GetEntry(id string) (Entry[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Has reports whether an entry exists for id.
func (r *Registry[T]) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// List returns all entries in first-registration order.
//
// The result is cached: calls with no intervening mutation return the
// same slice, and the first call after any mutation returns a new one.
// Callers must treat the slice as read-only.
func (r *Registry[T]) List() []Entry[T] {
	r.mu.RLock()
	snap := r.snapshot
	r.mu.RUnlock()
	if snap != nil {
		return snap
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		rebuilt := make([]Entry[T], 0, len(r.order))
		for _, id := range r.order {
			rebuilt = append(rebuilt, r.entries[id])
		}
		r.snapshot = rebuilt
	}
	return r.snapshot
}

// Snapshot is List under the name used by external-store bindings.
func (r *Registry[T]) Snapshot() []Entry[T] {
	return r.List()
}

// ListBySource returns the entries with the given provenance. Unlike
// List, the result is recomputed on every call; registries are small
// enough that filtering is cheap.
func (r *Registry[T]) ListBySource(source Source) []Entry[T] {
	all := r.List()
	filtered := make([]Entry[T], 0, len(all))
	for _, e := range all {
		if e.Source == source {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// IDs returns all entry ids in first-registration order.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the current entry count.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// RemoveMod unregisters every entry contributed by modID and returns
// the number removed. Each removal notifies subscribers individually.
func (r *Registry[T]) RemoveMod(modID string) int {
	r.mu.RLock()
	var ids []string
	for _, id := range r.order {
		if e := r.entries[id]; e.Source == SourceMod && e.ModID == modID {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	removed := 0
	for _, id := range ids {
		if r.Unregister(id) {
			removed++
		}
	}
	return removed
}

// Subscribe registers a listener invoked after every successful
// mutation. Listeners are invoked in subscription order. The returned
// function removes the listener and is safe to call more than once.
func (r *Registry[T]) Subscribe(fn func()) func() {
	r.mu.Lock()
	r.nextSub++
	id := r.nextSub
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// notify invokes all current subscribers. Uses copy-before-notify so
// listeners run without the lock and may call back into the registry.
// The mutation is committed before fan-out begins, so a panicking
// listener cannot roll it back; the panic is contained so remaining
// listeners still run.
func (r *Registry[T]) notify() {
	r.mu.RLock()
	subs := make([]subscriber, len(r.subs))
	copy(subs, r.subs)
	r.mu.RUnlock()

	for _, s := range subs {
		invoke(s.fn)
	}
}

func invoke(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("registry listener panicked", "panic", rec)
		}
	}()
	fn()
}
