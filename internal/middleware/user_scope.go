package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/constants"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

const msgNoPermission = "You do not have permission to perform this action."

// RequireUserScope lets a request through when the :user_id path segment
// names the authenticated user, or when that user is an admin. The records
// the request acts on are owned by :user_id.
func RequireUserScope(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			apierrors.NotFound(c, "User not found")
			c.Abort()
			return
		}

		if targetID != user.ID {
			if !user.IsAdmin {
				apierrors.Forbidden(c, msgNoPermission)
				c.Abort()
				return
			}
			if _, err := authService.GetUser(c.Request.Context(), targetID); err != nil {
				apierrors.NotFound(c, "User not found")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyOwner, strconv.FormatUint(targetID, 10))
		c.Next()
	}
}

// GetOwner returns the owner key of the records the request acts on
func GetOwner(c *gin.Context) string {
	return c.GetString(constants.ContextKeyOwner)
}
