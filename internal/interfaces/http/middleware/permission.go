package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type PermissionMiddleware struct {
	checker permission.Checker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker permission.Checker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequireCapability rejects callers whose role lacks capability.
func (m *PermissionMiddleware) RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		if !m.checker.CanDo(actor.Role, capability) {
			m.logger.Warnw("permission denied", "user_id", actor.ID, "role", actor.Role, "capability", capability)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
