package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/console/pkg/logger"
)

// makeToken builds an unsigned JWT with the given payload claims. The
// decoder never verifies signatures, so a fixed header and empty
// signature segment are enough for these tests.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]any{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "."
}

func TestDecodeTokenExtractsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := makeToken(t, map[string]any{
		"sub":         "agent-7",
		"tenant_id":   "acme",
		"role":        "Manager",
		"exp":         exp,
		"permissions": []any{"Leads:Read", "customers:Update"},
	})

	user := DecodeToken(token, logger.NewNop())

	assert.Equal(t, "agent-7", user.Subject)
	assert.Equal(t, "acme", user.TenantID)
	assert.Equal(t, "Manager", user.Role)
	assert.Equal(t, []string{"Leads:Read", "customers:Update"}, user.Permissions)
	assert.Equal(t, exp, user.ExpiresAt.Unix())
	assert.False(t, user.Expired())
}

func TestDecodeTokenEmptyInput(t *testing.T) {
	for _, token := range []string{"", "   "} {
		user := DecodeToken(token, logger.NewNop())
		assert.Empty(t, user.Permissions)
		assert.Empty(t, user.Subject)
	}
}

func TestDecodeTokenGarbageYieldsEmptyUser(t *testing.T) {
	for _, token := range []string{
		"not-a-token",
		"only.two",
		"a.b.c",
		"!!!.???.###",
	} {
		user := DecodeToken(token, logger.NewNop())
		assert.Empty(t, user.Permissions, "token %q", token)
		assert.Empty(t, user.Subject, "token %q", token)
	}
}

func TestDecodeTokenMissingPermissionsClaim(t *testing.T) {
	token := makeToken(t, map[string]any{"sub": "agent-7"})

	user := DecodeToken(token, logger.NewNop())

	assert.Equal(t, "agent-7", user.Subject)
	assert.Empty(t, user.Permissions)
}

func TestDecodeTokenNonArrayPermissionsClaim(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":         "agent-7",
		"permissions": map[string]any{"leads": true},
	})

	user := DecodeToken(token, logger.NewNop())

	assert.Empty(t, user.Permissions, "object-shaped claim is ignored")
}

func TestDecodeTokenSkipsNonStringPermissionEntries(t *testing.T) {
	token := makeToken(t, map[string]any{
		"permissions": []any{"leads:Read", 42, nil, "customers:Create"},
	})

	user := DecodeToken(token, logger.NewNop())

	assert.Equal(t, []string{"leads:Read", "customers:Create"}, user.Permissions)
}

func TestUserHasRole(t *testing.T) {
	user := User{Role: "Manager "}

	assert.True(t, user.HasRole("manager"))
	assert.True(t, user.HasRole("MANAGER"))
	assert.False(t, user.HasRole("admin"))
	assert.False(t, user.HasRole(""))
	assert.False(t, User{}.HasRole("manager"))
}

func TestUserExpired(t *testing.T) {
	assert.False(t, User{}.Expired(), "missing exp claim never expires")
	assert.True(t, User{ExpiresAt: time.Now().Add(-time.Minute)}.Expired())
	assert.False(t, User{ExpiresAt: time.Now().Add(time.Minute)}.Expired())
}
