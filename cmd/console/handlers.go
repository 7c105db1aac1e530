package main

import (
	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/apperr"
	"github.com/leadgrid/console/pkg/audit"
	"github.com/leadgrid/console/pkg/guard"
	"github.com/leadgrid/console/pkg/permission"
	"github.com/leadgrid/console/pkg/response"
	"github.com/leadgrid/console/pkg/session"
	"github.com/leadgrid/console/pkg/validator"
)

func loginHandler(mgr *session.Manager, publisher *audit.Publisher, vi *validator.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds, appErr := validator.BindJSON[session.Credentials](vi, c)
		if appErr != nil {
			response.JSONError(c, appErr)
			return
		}

		resp, err := mgr.Login(c.Request.Context(), *creds)
		if err != nil {
			response.JSONError(c, apperr.New(apperr.ErrorCodeUnauthorized).Wrap(err))
			return
		}

		user := mgr.CurrentUser()
		if publisher != nil && resp.Token != "" {
			publisher.Session(audit.EventLogin, user.Subject)
		}
		response.Success(c, gin.H{
			"user":        sessionView(user),
			"permissions": mgr.Store().Current().Values(),
		})
	}
}

func logoutHandler(mgr *session.Manager, publisher *audit.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := mgr.CurrentUser().Subject
		mgr.Logout(c.Request.Context())
		if publisher != nil {
			publisher.Session(audit.EventLogout, subject)
		}
		response.Success(c, gin.H{"logged_out": true})
	}
}

func sessionHandler(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, gin.H{
			"user":        sessionView(mgr.CurrentUser()),
			"permissions": mgr.Store().Current().Values(),
		})
	}
}

func sessionView(user session.User) gin.H {
	return gin.H{
		"subject":   user.Subject,
		"tenant_id": user.TenantID,
		"role":      user.Role,
		"expired":   user.Expired(),
	}
}

// registerEntityRoutes mounts the guarded CRUD surface for one entity.
// The handlers echo the authorized action; the actual entity workflows
// live in the upstream CRM API.
func registerEntityRoutes(api *gin.RouterGroup, checker *permission.Checker, entity string) {
	group := api.Group("/" + entity)
	group.GET("", guard.RequireCan(checker, permission.ActionRead, entity), echoAction(entity, permission.ActionRead))
	group.POST("", guard.RequireCan(checker, permission.ActionCreate, entity), echoAction(entity, permission.ActionCreate))
	group.PUT("/:id", guard.RequireCan(checker, permission.ActionUpdate, entity), echoAction(entity, permission.ActionUpdate))
	group.DELETE("/:id", guard.RequireCan(checker, permission.ActionDelete, entity), echoAction(entity, permission.ActionDelete))
}

func echoAction(entity, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, gin.H{"entity": entity, "action": action})
	}
}
