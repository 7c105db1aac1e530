package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSetNormalizesAndDedupes(t *testing.T) {
	s := NewSet([]string{"Leads:Read", "leads:Read", "Customers:Create", ""})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"customers:Create", "leads:Read"}, s.Values())
}

func TestSetHasNormalizesLookup(t *testing.T) {
	s := NewSet([]string{"Leads:Read"})

	assert.True(t, s.Has("leads:Read"))
	assert.True(t, s.Has("LEADS:Read"))
	assert.False(t, s.Has("leads:read"), "action compare is case sensitive")
	assert.False(t, s.Has(""))
	assert.False(t, s.Has("leads:Delete"))
}

func TestSetHasPassthroughToken(t *testing.T) {
	s := NewSet([]string{"admin"})

	assert.True(t, s.Has("admin"))
	assert.False(t, s.Has("Admin"), "non entity:Action tokens compare verbatim")
}

func TestEmptySet(t *testing.T) {
	s := NewSet(nil)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Values())
	assert.False(t, s.Has("leads:Read"))
}
