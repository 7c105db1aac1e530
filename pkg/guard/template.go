package guard

import (
	"html/template"

	"github.com/leadgrid/console/pkg/permission"
)

// FuncMap returns template helpers for inline permission checks:
//
//	{{ if hasPermission "leads:Create" }} ... {{ end }}
//	{{ if can "Update" "contracts" }} ... {{ end }}
//
// The funcs read the live store through the checker on every render, so a
// template re-rendered after a Replace reflects the new set with no
// cached result.
func FuncMap(checker *permission.Checker) template.FuncMap {
	return template.FuncMap{
		"hasPermission": checker.HasPermission,
		"can":           checker.Can,
		"canRead":       checker.CanRead,
		"canCreate":     checker.CanCreate,
		"canUpdate":     checker.CanUpdate,
		"canDelete":     checker.CanDelete,
	}
}
