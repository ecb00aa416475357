package handler

import (
	"net/http"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/dto"
	"github.com/Payphone-Digital/accounts/internal/middleware"
	"github.com/Payphone-Digital/accounts/internal/service"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/Payphone-Digital/accounts/pkg/validation"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService   *service.UserService
	accessService *service.AccessService
}

func NewAuthHandler(userService *service.UserService, accessService *service.AccessService) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		accessService: accessService,
	}
}

// Register handles account creation
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid registration request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.Message(err, constants.MsgInvalidRequest)))
		return
	}

	response, err := h.userService.Register(ctx, &req)
	if err != nil {
		respondError(ctx, c, err, constants.MsgRegistrationFailed)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgRegistered, response))
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgCredentialsRequired))
		return
	}

	response, err := h.userService.Login(ctx, &req)
	if err != nil {
		respondError(ctx, c, err, constants.MsgLoginFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgLoginSuccess, response))
}

// Verify returns the bare user object for a valid token. Every failure,
// including inactive accounts, is reported as "Invalid token".
func (h *AuthHandler) Verify(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Verify")

	token, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgInvalidToken))
		return
	}

	user, err := h.accessService.Authenticate(ctx, token)
	if err != nil {
		logger.DebugWithContext(ctx, "Token verification failed").
			Err(err).
			Log()
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgInvalidToken))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Logout only acknowledges; tokens are stateless and stay valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Logout")

	logger.LogAuth(ctxutil.GetUserID(ctx), "logout", true)

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedOut))
}
