package middleware

import (
	"strings"

	"github.com/Payphone-Digital/accounts/internal/constants"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/internal/model"
	"github.com/Payphone-Digital/accounts/internal/service"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/gin-gonic/gin"
)

type JWTMiddleware struct {
	access *service.AccessService
}

func NewJWTMiddleware(access *service.AccessService) *JWTMiddleware {
	return &JWTMiddleware{access: access}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return "", false
	}
	return tokenParts[1], true
}

// RequireAuth rejects the request with 401 unless it carries a valid token
// for an active user. The user is stored under constants.GinKeyCurrentUser.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authorize(c, false)
	}
}

// RequireAdmin is RequireAuth plus a 403 for callers without the admin role.
func (m *JWTMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authorize(c, true)
	}
}

func (m *JWTMiddleware) authorize(c *gin.Context, admin bool) {
	ctx := c.Request.Context()

	// Behind RequireAuth the user is already loaded; only the role is left.
	if current, ok := CurrentUser(c); ok && admin {
		if err := m.access.CheckAdmin(ctx, current); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
		return
	}

	token, ok := BearerToken(c)
	if !ok {
		logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
			String("path", c.Request.URL.Path).
			String("method", c.Request.Method).
			Log()
		abortWithError(c, apperrors.ErrUnauthorized)
		return
	}

	var (
		user *model.User
		err  error
	)
	if admin {
		user, err = m.access.RequireAdmin(ctx, token)
	} else {
		user, err = m.access.Authenticate(ctx, token)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Set(constants.GinKeyCurrentUser, user)
	c.Set(constants.GinKeyUserID, user.ID)
	c.Request = c.Request.WithContext(ctxutil.WithUserID(ctx, user.ID))

	c.Next()
}

// CurrentUser returns the user stored by RequireAuth or RequireAdmin.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(constants.GinKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(
		apperrors.ToHTTPStatus(err),
		constants.BuildErrorResponse(apperrors.GetErrorMessage(err, constants.MsgInternalError)),
	)
}
