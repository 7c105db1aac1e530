package guard

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/console/pkg/permission"
)

func TestGuardPairShape(t *testing.T) {
	set := permission.NewSet([]string{"leads:Read"})

	assert.True(t, Guard{Action: "Read", Entity: "leads"}.allowed(set))
	assert.False(t, Guard{Action: "Delete", Entity: "leads"}.allowed(set))
	assert.False(t, Guard{Action: "Read", Entity: "customers"}.allowed(set))
}

func TestGuardAnyOfIsOrSemantics(t *testing.T) {
	set := permission.NewSet([]string{"contracts:Update"})

	g := Guard{AnyOf: []string{"leads:Read", "contracts:Update", "payments:Delete"}}
	assert.True(t, g.allowed(set), "one held permission is enough")

	g = Guard{AnyOf: []string{"leads:Read", "payments:Delete"}}
	assert.False(t, g.allowed(set))
}

func TestGuardShapesConcatenate(t *testing.T) {
	set := permission.NewSet([]string{"payments:Refund"})

	g := Guard{
		Action:     "Read",
		Entity:     "leads",
		Permission: "contracts:Update",
		AnyOf:      []string{"payments:Refund"},
	}
	assert.True(t, g.allowed(set))
}

func TestGuardEmptyDenies(t *testing.T) {
	set := permission.NewSet([]string{"leads:Read"})

	assert.False(t, Guard{}.allowed(set), "a guard resolving to no permissions never passes")
	assert.False(t, Guard{Action: "Read"}.allowed(set), "pair shape needs both halves")
	assert.False(t, Guard{Entity: "leads"}.allowed(set))
}

func TestBindingSettlesInitialState(t *testing.T) {
	store := permission.NewStore()
	store.Replace([]string{"leads:Read"})

	mounts, unmounts := 0, 0
	b := Bind(store, Guard{Permission: "leads:Read"},
		func() { mounts++ }, func() { unmounts++ })
	defer b.Close()

	assert.True(t, b.Present())
	assert.Equal(t, 1, mounts, "initial emission mounts immediately")
	assert.Equal(t, 0, unmounts)
}

func TestBindingUnheldGuardNeverMounts(t *testing.T) {
	store := permission.NewStore()

	mounts := 0
	b := Bind(store, Guard{Permission: "leads:Read"}, func() { mounts++ }, nil)
	defer b.Close()

	assert.False(t, b.Present())
	assert.Equal(t, 0, mounts)
}

func TestBindingReactsToGrantAndRevoke(t *testing.T) {
	store := permission.NewStore()

	var events []string
	b := Bind(store, Guard{Action: "Read", Entity: "leads"},
		func() { events = append(events, "mount") },
		func() { events = append(events, "unmount") })
	defer b.Close()

	store.Replace([]string{"Leads:Read"})
	require.True(t, b.Present())

	store.Replace(nil)
	assert.False(t, b.Present())
	assert.Equal(t, []string{"mount", "unmount"}, events)
}

func TestBindingTransitionsAreIdempotent(t *testing.T) {
	store := permission.NewStore()

	mounts, unmounts := 0, 0
	b := Bind(store, Guard{Permission: "leads:Read"},
		func() { mounts++ }, func() { unmounts++ })
	defer b.Close()

	store.Replace([]string{"leads:Read"})
	store.Replace([]string{"leads:Read", "leads:Update"})
	store.Replace([]string{"leads:Read"})

	assert.Equal(t, 1, mounts, "repeated passing emissions do not remount")
	assert.Equal(t, 0, unmounts)

	store.Replace(nil)
	store.Replace([]string{"customers:Read"})
	assert.Equal(t, 1, unmounts)
}

func TestBindingCloseStopsReactions(t *testing.T) {
	store := permission.NewStore()

	mounts := 0
	b := Bind(store, Guard{Permission: "leads:Read"}, func() { mounts++ }, nil)

	b.Close()
	b.Close()

	store.Replace([]string{"leads:Read"})
	assert.Equal(t, 0, mounts)
	assert.False(t, b.Present(), "closed binding keeps its last state")
}

func TestFuncMapReadsLiveStore(t *testing.T) {
	store := permission.NewStore()
	checker := permission.NewChecker(store)

	tmpl, err := template.New("toolbar").Funcs(FuncMap(checker)).Parse(
		`{{ if can "Create" "leads" }}new-lead{{ end }}{{ if hasPermission "contracts:Read" }} contracts{{ end }}`)
	require.NoError(t, err)

	render := func() string {
		var buf bytes.Buffer
		require.NoError(t, tmpl.Execute(&buf, nil))
		return buf.String()
	}

	assert.Equal(t, "", render())

	store.Replace([]string{"Leads:Create", "contracts:Read"})
	assert.Equal(t, "new-lead contracts", render())

	store.Replace([]string{"contracts:Read"})
	assert.Equal(t, " contracts", render(), "re-render reflects the revoked permission")
}
