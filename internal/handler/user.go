package handler

import (
	"net/http"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/dto"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/internal/middleware"
	"github.com/Payphone-Digital/accounts/internal/service"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/Payphone-Digital/accounts/pkg/validation"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{userService: service}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetProfile")

	current, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(ctx, c, apperrors.ErrUnauthorized, constants.MsgProfileFetchFailed)
		return
	}

	profile, err := h.userService.GetProfile(ctx, current.ID)
	if err != nil {
		respondError(ctx, c, err, constants.MsgProfileFetchFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", profile))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdateProfile")

	current, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(ctx, c, apperrors.ErrUnauthorized, constants.MsgProfileUpdateFailed)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid profile update request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.Message(err, constants.MsgInvalidRequest)))
		return
	}

	profile, err := h.userService.UpdateProfile(ctx, current.ID, &req)
	if err != nil {
		respondError(ctx, c, err, constants.MsgProfileUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgProfileUpdated, profile))
}

// GetAll lists users page by page with an optional search term.
func (h *UserHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetAll")

	params := constants.ParsePaginationParams(c)

	logger.DebugWithContext(ctx, "Get all users request").
		Int("page", params.Page).
		Int("limit", params.Limit).
		String("search", params.Search).
		Log()

	users, meta, err := h.userService.GetAll(ctx, params)
	if err != nil {
		respondError(ctx, c, err, constants.MsgUsersFetchFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(users, meta))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetByID")

	user, err := h.userService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, constants.MsgUserFetchFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", user))
}

// DeleteUser is mounted behind RequireAdmin.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "DeleteUser")

	id := c.Param("id")

	logger.InfoWithContext(ctx, "Delete user request").
		String("target_id", id).
		Log()

	if err := h.userService.DeleteUser(ctx, id); err != nil {
		respondError(ctx, c, err, constants.MsgUserDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUserDeleted))
}
