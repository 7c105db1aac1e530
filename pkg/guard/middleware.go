package guard

import (
	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/apperr"
	"github.com/leadgrid/console/pkg/permission"
	"github.com/leadgrid/console/pkg/response"
)

// RequirePermission aborts with 403 unless the session holds the
// permission.
func RequirePermission(checker *permission.Checker, perm string) gin.HandlerFunc {
	return Require(checker, Guard{Permission: perm})
}

// RequireAny aborts with 403 unless the session holds at least one of the
// permissions.
func RequireAny(checker *permission.Checker, perms ...string) gin.HandlerFunc {
	return Require(checker, Guard{AnyOf: perms})
}

// RequireCan aborts with 403 unless the session holds the
// "entity:action" permission.
func RequireCan(checker *permission.Checker, action, entity string) gin.HandlerFunc {
	return Require(checker, Guard{Action: action, Entity: entity})
}

// Require evaluates the guard against the live permission set on every
// request.
func Require(checker *permission.Checker, g Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range g.permissions() {
			if checker.HasPermission(p) {
				c.Next()
				return
			}
		}
		response.JSONError(c, apperr.New(apperr.ErrorCodeForbidden))
		c.Abort()
	}
}
