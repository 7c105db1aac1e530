// Package guard toggles the presence of protected content based on the
// live permission set. A Binding is the structural form: it follows the
// store's change feed and mounts or unmounts a view region. The template
// helpers in FuncMap are the inline form for per-render checks.
package guard

import (
	"sync"

	"github.com/leadgrid/console/pkg/permission"
)

// Guard describes what a piece of content requires, in one of three
// shapes: an action/entity pair, a single permission string, or a list of
// permission strings. When more than one shape is filled the resolved
// lists concatenate; the check passes when ANY resolved permission is
// held.
type Guard struct {
	Action string
	Entity string

	Permission string

	AnyOf []string
}

// permissions resolves the guard into the flat permission list checked
// with OR semantics.
func (g Guard) permissions() []string {
	var out []string
	if g.Action != "" && g.Entity != "" {
		out = append(out, g.Entity+":"+g.Action)
	}
	if g.Permission != "" {
		out = append(out, g.Permission)
	}
	out = append(out, g.AnyOf...)
	return out
}

// allowed evaluates the guard against a permission set snapshot.
func (g Guard) allowed(set permission.Set) bool {
	for _, p := range g.permissions() {
		if set.Has(p) {
			return true
		}
	}
	return false
}

// Binding keeps one guarded region in sync with the permission store. The
// region is either absent or present; transitions are driven by store
// emissions and are idempotent, and the content is genuinely unmounted
// when unauthorized, not hidden.
type Binding struct {
	guard   Guard
	mount   func()
	unmount func()
	cancel  func()

	mu      sync.Mutex
	present bool
	closed  bool
}

// Bind subscribes a guarded region to the store. mount is called when the
// guard starts passing, unmount when it stops; the initial feed emission
// settles the starting state immediately, so a region guarded by an
// unheld permission never mounts at all. Close releases the subscription.
func Bind(store *permission.Store, g Guard, mount, unmount func()) *Binding {
	b := &Binding{guard: g, mount: mount, unmount: unmount}
	b.cancel = store.Subscribe(b.evaluate)
	return b
}

// Present reports whether the guarded content is currently mounted.
func (b *Binding) Present() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.present
}

// Close releases the feed subscription. A closed binding never reacts to
// later store emissions; the content is left in its current state.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()
	b.cancel()
}

func (b *Binding) evaluate(set permission.Set) {
	next := b.guard.allowed(set)

	b.mu.Lock()
	if b.closed || next == b.present {
		b.mu.Unlock()
		return
	}
	b.present = next
	b.mu.Unlock()

	if next {
		if b.mount != nil {
			b.mount()
		}
	} else if b.unmount != nil {
		b.unmount()
	}
}
