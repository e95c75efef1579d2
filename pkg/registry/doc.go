// Package registry provides a generic, observable key-value store for
// runtime-extensible content.
//
// Each content kind (props, environments, blueprints) gets its own
// Registry instance. Built-in content registers itself during startup;
// user- and mod-generated content registers at arbitrary points through
// the exact same API, distinguished only by its provenance tag. There is
// no privileged code path.
//
// # Core Type
//
// Registry[T] maps string ids to entries carrying an opaque payload:
//
//	props := registry.New[Prop]()
//	props.Register("desk-small", desk)                      // builtin
//	props.Register("neon-sign", sign, registry.AsMod("neon-pack"))
//
//	p, ok := props.Get("desk-small")
//	all := props.List()
//	custom := props.ListBySource(registry.SourceMod)
//
// # Observation
//
// Subscribers are notified synchronously after every successful mutation,
// in subscription order, before the mutating call returns. Listeners
// receive no payload; they read back through the registry (pull model):
//
//	unsubscribe := props.Subscribe(func() {
//	    render(props.List())
//	})
//	defer unsubscribe()
//
// List returns a cached, identity-stable slice: two calls with no
// mutation in between return the same slice, and the first call after a
// mutation returns a fresh one. Consumers using reference equality for
// change detection never see spurious "changed" signals.
//
// # Thread Safety
//
// All operations are goroutine-safe. Listeners run without the registry
// lock held, so a listener may call back into the registry (including
// mutating it, which recursively notifies).
package registry
