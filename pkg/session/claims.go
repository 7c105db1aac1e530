// Package session owns the bearer credential for the active console
// session: acquisition via login, persistence, payload decode, and the
// projection of the permissions claim into the permission store.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leadgrid/console/pkg/logger"
)

// User is the identity decoded from the credential payload. Everything
// except Permissions is display/identity data; authorization decisions
// only ever consult the permission store.
type User struct {
	Subject     string
	TenantID    string
	Role        string
	ExpiresAt   time.Time
	Permissions []string
	Raw         map[string]any
}

// HasRole reports whether the decoded role claim matches role
// (case-insensitive).
func (u User) HasRole(role string) bool {
	return role != "" && strings.EqualFold(strings.TrimSpace(u.Role), strings.TrimSpace(role))
}

// Expired reports whether the credential carried an exp claim that has
// passed. A missing exp claim never counts as expired.
func (u User) Expired() bool {
	return !u.ExpiresAt.IsZero() && time.Now().After(u.ExpiresAt)
}

// DecodeToken decodes the payload segment of a bearer token without
// verifying its signature. This is UI convenience only, not a security
// boundary: the backend re-checks authorization on every request.
//
// Every failure mode converges to a User with an empty permission list
// and is logged, never returned as an error, so the store is always fed
// something well-defined after a login attempt.
func DecodeToken(token string, log logger.LogManager) User {
	if strings.TrimSpace(token) == "" {
		return User{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.WarnF("session: token decode failed: %v", err)
		return User{}
	}

	user := User{
		Subject:     stringClaim(claims, "sub"),
		TenantID:    stringClaim(claims, "tenant_id"),
		Role:        stringClaim(claims, "role"),
		Permissions: permissionsClaim(claims),
		Raw:         claims,
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		user.ExpiresAt = exp.Time
	}
	return user
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return strings.TrimSpace(s)
}

// permissionsClaim extracts the permissions claim. Only an array claim is
// accepted; an object keyed by module name is the legacy coarse-grained
// shape and is out of scope for this extractor.
func permissionsClaim(claims jwt.MapClaims) []string {
	arr, ok := claims["permissions"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
