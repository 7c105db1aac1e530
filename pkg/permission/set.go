package permission

import "sort"

// Set is an immutable snapshot of normalized permission strings. The zero
// value is an empty set and is safe to query.
type Set map[string]struct{}

// NewSet normalizes every raw permission and collects the results,
// collapsing duplicates that normalize to the same string. A nil slice
// yields an empty set.
func NewSet(raw []string) Set {
	s := make(Set, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		s[Normalize(p)] = struct{}{}
	}
	return s
}

// Has reports whether the normalized form of permission is a member.
func (s Set) Has(permission string) bool {
	if permission == "" {
		return false
	}
	_, ok := s[Normalize(permission)]
	return ok
}

// Len returns the number of permissions in the set.
func (s Set) Len() int { return len(s) }

// Values returns the members in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
