package permission

// Action literals composed into "entity:Action" permission strings by the
// convenience checks.
const (
	ActionRead   = "Read"
	ActionCreate = "Create"
	ActionUpdate = "Update"
	ActionDelete = "Delete"
)

// Checker is the stateless query facade over a Store. Every method is a
// synchronous read of the store's current set; invalid arguments evaluate
// to false rather than panicking, so checks are safe to call with
// loosely-typed template data.
type Checker struct {
	store *Store
}

// NewChecker creates a checker reading from store.
func NewChecker(store *Store) *Checker {
	return &Checker{store: store}
}

// HasPermission reports whether the normalized permission is in the
// current set.
func (c *Checker) HasPermission(permission string) bool {
	if permission == "" {
		return false
	}
	return c.store.Current().Has(permission)
}

// Can reports whether the session holds the "entity:action" permission.
// Note the argument order: action first, entity second, while the composed
// permission string is always entity-first.
func (c *Checker) Can(action, entity string) bool {
	if action == "" || entity == "" {
		return false
	}
	return c.HasPermission(entity + ":" + action)
}

// CanRead reports whether the session may read the entity.
func (c *Checker) CanRead(entity string) bool { return c.Can(ActionRead, entity) }

// CanCreate reports whether the session may create the entity.
func (c *Checker) CanCreate(entity string) bool { return c.Can(ActionCreate, entity) }

// CanUpdate reports whether the session may update the entity.
func (c *Checker) CanUpdate(entity string) bool { return c.Can(ActionUpdate, entity) }

// CanDelete reports whether the session may delete the entity.
func (c *Checker) CanDelete(entity string) bool { return c.Can(ActionDelete, entity) }
