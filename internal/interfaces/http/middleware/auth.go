package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

const contextKeyActor = "actor"

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	users    user.Repository
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, users user.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// RequireAuth verifies the bearer token and loads the caller. The role comes
// from the user store, not from the token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusUnauthorized, "unknown user")
			} else {
				m.logger.Errorw("failed to load user for request", "user_id", claims.UserID, "error", err)
				utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set(constants.ContextKeyUserRole, u.Role())
		c.Set(contextKeyActor, common.Actor{
			ID:       u.ID(),
			Username: u.Username(),
			Fullname: u.Fullname(),
			Role:     u.Role(),
		})

		c.Next()
	}
}

// SetActor stores the caller on the context. Tests use it in place of
// RequireAuth.
func SetActor(c *gin.Context, actor common.Actor) {
	c.Set(constants.ContextKeyUserID, actor.ID)
	c.Set(constants.ContextKeyUserRole, actor.Role)
	c.Set(contextKeyActor, actor)
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(c *gin.Context) (common.Actor, bool) {
	v, ok := c.Get(contextKeyActor)
	if !ok {
		return common.Actor{}, false
	}
	actor, ok := v.(common.Actor)
	return actor, ok
}

// CurrentActor is ActorFrom for handlers: it writes the 401 itself when the
// request carries no caller.
func CurrentActor(c *gin.Context) (common.Actor, bool) {
	actor, ok := ActorFrom(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
	}
	return actor, ok
}
