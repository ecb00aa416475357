package handler

import (
	"context"

	"github.com/Payphone-Digital/accounts/internal/constants"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope for err. Unexpected errors are
// logged and answered with fallback instead of their own text.
func respondError(ctx context.Context, c *gin.Context, err error, fallback string) {
	status := apperrors.ToHTTPStatus(err)

	if apperrors.IsInternal(err) {
		logger.ErrorWithContext(ctx, fallback).
			Int("http_status", status).
			Err(err).
			Log()
	} else {
		logger.DebugWithContext(ctx, "Request rejected").
			Int("http_status", status).
			Err(err).
			Log()
	}

	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err, fallback)))
}
