package permission

import "sync"

// Store holds the authoritative permission set for one session and fans
// out every replacement to its subscribers. Each session manager owns its
// own Store instance; there is no package-level global, so tests and
// independent sessions never share state.
//
// Only Replace mutates the current set. Subscribers are notified
// synchronously, in subscription order, once per Replace call, and a
// Current call immediately after Replace observes the just-replaced value.
type Store struct {
	mu      sync.Mutex
	current Set
	subs    []*subscription
	nextID  int
}

type subscription struct {
	id int
	fn func(Set)
}

// NewStore creates a store holding an empty permission set.
func NewStore() *Store {
	return &Store{current: NewSet(nil)}
}

// Current returns the latest permission set snapshot.
func (s *Store) Current() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Replace normalizes the raw permissions, installs them as the new current
// set and notifies every subscriber with the new value. A nil slice is
// treated as empty, so a failed decode still leaves the store in a
// well-defined state.
func (s *Store) Replace(raw []string) {
	next := NewSet(raw)

	s.mu.Lock()
	s.current = next
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

// Subscribe registers fn on the change feed and returns a cancel function
// releasing the subscription. fn is invoked immediately with the current
// set, so subscribers attached before any login observe a deterministic
// starting state, then once per subsequent Replace.
func (s *Store) Subscribe(fn func(Set)) (cancel func()) {
	s.mu.Lock()
	sub := &subscription{id: s.nextID, fn: fn}
	s.nextID++
	s.subs = append(s.subs, sub)
	current := s.current
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, candidate := range s.subs {
			if candidate.id == sub.id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
