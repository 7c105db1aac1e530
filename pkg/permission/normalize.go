// Package permission holds the session permission set and the query
// primitives layered on top of it. A permission is a capability token of
// the form "entity:Action" (e.g. "customers:Create"): the entity part is
// case-insensitive, the action part is case-sensitive.
package permission

import "strings"

// Normalize maps a raw permission string to its canonical form: entity
// lowercased, action kept verbatim. Strings that are not exactly two
// colon-separated parts are ambiguous and pass through unchanged, so
// callers never crash on malformed claim data. Normalize is idempotent.
func Normalize(permission string) string {
	if permission == "" {
		return permission
	}
	parts := strings.Split(permission, ":")
	if len(parts) != 2 {
		return permission
	}
	return strings.ToLower(parts[0]) + ":" + parts[1]
}
